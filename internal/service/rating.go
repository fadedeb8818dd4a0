package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movielib/internal/console"
	"github.com/Clark-Hu/movielib/internal/domain"
	"github.com/Clark-Hu/movielib/internal/repository"
	"github.com/Clark-Hu/movielib/internal/validation"
)

// RatingService drives the Ratings menu.
type RatingService struct {
	ratings   repository.Ratings
	users     repository.Users
	movies    repository.Movies
	validator *validation.Validator
	ui        *console.UI
	logger    *zap.Logger
	now       func() time.Time
}

func NewRatingService(repo *repository.Repository, v *validation.Validator, ui *console.UI, logger *zap.Logger) *RatingService {
	return &RatingService{
		ratings:   repo.Ratings,
		users:     repo.Users,
		movies:    repo.Movies,
		validator: v,
		ui:        ui,
		logger:    nopIfNil(logger),
		now:       time.Now,
	}
}

func (s *RatingService) Run(ctx context.Context) error {
	return runMenu(ctx, s.ui, "Ratings", []menuAction{
		{label: "List ratings", run: s.List},
		{label: "Add rating", run: s.Add},
		{label: "Delete rating", run: s.Delete},
	}, "Back")
}

// List prints every rating. There is no paging.
func (s *RatingService) List(ctx context.Context) error {
	log := startAction(s.logger, "list_ratings")
	s.ui.Printer.Warning("Listing every rating in the database, this list is extremely long")
	log.Warn("service: listing the full ratings table")

	ratings, err := s.ratings.List(ctx)
	if err != nil {
		return fmt.Errorf("list ratings: %w", err)
	}
	if len(ratings) == 0 {
		s.ui.Printer.Info("There are no ratings in the database")
		return nil
	}
	rows := make([][]string, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, []string{
			formatID(r.ID),
			formatID(r.UserID),
			formatID(r.MovieID),
			strconv.Itoa(r.Value),
			r.RatedAt.UTC().Format(time.DateTime),
		})
	}
	s.ui.Printer.Table([]string{"Id", "User Id", "Movie Id", "Rating", "Rated At"}, rows)
	log.Info("service: ratings listed", zap.Int("count", len(ratings)))
	return nil
}

// Add records a rating for an existing user and movie. A user rates a movie
// at most once.
func (s *RatingService) Add(ctx context.Context) error {
	log := startAction(s.logger, "add_rating")
	p := s.ui.Prompter

	answer, err := p.Ask(ctx, "Enter the id of the user rating the movie", "User Id", console.ToneCreate)
	if err != nil {
		return err
	}
	userID, err := parseID(answer)
	if err != nil {
		s.ui.Printer.Error("User ID must be an integer")
		return nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		s.ui.Printer.Error("There is no user with the id %d", userID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	title, err := p.Ask(ctx, "Enter the title of the movie being rated", "Title", console.ToneCreate)
	if err != nil {
		return err
	}
	movie, err := s.movies.GetByTitle(ctx, title)
	if errors.Is(err, repository.ErrNotFound) {
		s.ui.Printer.Error("There is no movie titled %s", title)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}

	_, err = s.ratings.Get(ctx, user.ID, movie.ID)
	switch {
	case err == nil:
		s.alreadyRated(user, movie)
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("find rating: %w", err)
	}

	answer, err = p.Ask(ctx, fmt.Sprintf("Enter a rating from %d to %d", domain.MinRating, domain.MaxRating), "Rating", console.ToneCreate)
	if err != nil {
		return err
	}
	value, err := strconv.Atoi(answer)
	if err != nil {
		s.ui.Printer.Error("Rating must be an integer")
		return nil
	}

	params := repository.RatingCreateParams{
		UserID:  user.ID,
		MovieID: movie.ID,
		Value:   value,
		RatedAt: s.now().UTC(),
	}
	if err := s.validator.Struct(params); err != nil {
		s.ui.Printer.Error("%s", err)
		return nil
	}

	rating, err := s.ratings.Create(ctx, params)
	if errors.Is(err, repository.ErrConflict) {
		s.alreadyRated(user, movie)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	s.ui.Printer.Success("Rating added: %s", rating)
	log.Info("service: rating added",
		zap.Int64("rating_id", rating.ID),
		zap.Int64("user_id", user.ID),
		zap.Int64("movie_id", movie.ID),
	)
	return nil
}

// Delete removes the rating a user gave a movie. A missing user or movie only
// produces a warning; the lookup of the rating itself decides the outcome.
func (s *RatingService) Delete(ctx context.Context) error {
	log := startAction(s.logger, "delete_rating")
	p := s.ui.Prompter

	answer, err := p.Ask(ctx, "Enter the id of the user whose rating will be deleted", "User Id", console.ToneDestroy)
	if err != nil {
		return err
	}
	userID, err := parseID(answer)
	if err != nil {
		s.ui.Printer.Error("User ID must be an integer")
		return nil
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("find user: %w", err)
		}
		s.ui.Printer.Warning("Warning! There is no user with the id %d within the database", userID)
	}

	answer, err = p.Ask(ctx, "Enter the id of the movie the rating is for", "Movie Id", console.ToneDestroy)
	if err != nil {
		return err
	}
	movieID, err := parseID(answer)
	if err != nil {
		s.ui.Printer.Error("Movie ID must be an integer")
		return nil
	}
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("find movie: %w", err)
		}
		s.ui.Printer.Warning("Warning! There is no movie with the id %d within the database", movieID)
	}

	rating, err := s.ratings.Get(ctx, userID, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		s.ui.Printer.Error("The user with id %d has not rated the movie with id %d", userID, movieID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find rating: %w", err)
	}

	s.ui.Printer.Println(rating.String())
	if err := s.ratings.Delete(ctx, rating.ID); err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	s.ui.Printer.Success("This Rating has been deleted")
	log.Info("service: rating deleted", zap.Int64("rating_id", rating.ID))
	return nil
}

func (s *RatingService) alreadyRated(user domain.User, movie domain.Movie) {
	s.ui.Printer.Error("The user with id %d, has already rated the movie %s", user.ID, movie.Title)
}
