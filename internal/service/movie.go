package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movielib/internal/console"
	"github.com/Clark-Hu/movielib/internal/domain"
	"github.com/Clark-Hu/movielib/internal/repository"
)

// MovieService drives the Movies menu.
type MovieService struct {
	movies repository.Movies
	ui     *console.UI
	logger *zap.Logger
}

func NewMovieService(movies repository.Movies, ui *console.UI, logger *zap.Logger) *MovieService {
	return &MovieService{movies: movies, ui: ui, logger: nopIfNil(logger)}
}

func (s *MovieService) Run(ctx context.Context) error {
	return runMenu(ctx, s.ui, "Movies", []menuAction{
		{label: "List movies", run: s.List},
		{label: "Search movies", run: s.Search},
		{label: "Add movie", run: s.Add},
		{label: "Delete movie", run: s.Delete},
	}, "Back")
}

func (s *MovieService) List(ctx context.Context) error {
	log := startAction(s.logger, "list_movies")
	movies, err := s.movies.List(ctx)
	if err != nil {
		return fmt.Errorf("list movies: %w", err)
	}
	if len(movies) == 0 {
		s.ui.Printer.Info("There are no movies in the database")
		return nil
	}
	s.printMovies(movies)
	log.Info("service: movies listed", zap.Int("count", len(movies)))
	return nil
}

// Search lists the movies whose title contains the entered text, ignoring case.
func (s *MovieService) Search(ctx context.Context) error {
	log := startAction(s.logger, "search_movies")
	text, err := s.ui.Prompter.Ask(ctx, "Enter the text to search for in movie titles", "Search", console.ToneNeutral)
	if err != nil {
		return err
	}
	movies, err := s.movies.Search(ctx, text)
	if err != nil {
		return fmt.Errorf("search movies: %w", err)
	}
	if len(movies) == 0 {
		s.ui.Printer.Info("No movies matched %q", text)
		return nil
	}
	s.printMovies(movies)
	log.Info("service: movies searched", zap.String("text", text), zap.Int("count", len(movies)))
	return nil
}

func (s *MovieService) Add(ctx context.Context) error {
	log := startAction(s.logger, "add_movie")
	title, err := s.ui.Prompter.Ask(ctx, "Enter the title of the movie to add", "Title", console.ToneCreate)
	if err != nil {
		return err
	}
	if title == "" {
		s.ui.Printer.Error("The title cannot be empty")
		return nil
	}

	_, err = s.movies.GetByTitle(ctx, title)
	switch {
	case err == nil:
		s.ui.Printer.Error("A movie titled %s already exists in the database", title)
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("find movie: %w", err)
	}

	movie, err := s.movies.Create(ctx, title)
	if err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	s.ui.Printer.Success("Movie added: %s", movie)
	log.Info("service: movie added", zap.Int64("movie_id", movie.ID))
	return nil
}

func (s *MovieService) Delete(ctx context.Context) error {
	log := startAction(s.logger, "delete_movie")
	answer, err := s.ui.Prompter.Ask(ctx, "Enter the id of the movie to delete", "Id", console.ToneDestroy)
	if err != nil {
		return err
	}
	id, err := parseID(answer)
	if err != nil {
		s.ui.Printer.Error("Id must be an integer")
		return nil
	}

	movie, err := s.movies.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.ui.Printer.Error("A movie with id %d doesn't exist in the database", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}

	s.ui.Printer.Println(movie.String())
	if err := s.movies.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	s.ui.Printer.Success("This Movie has been deleted")
	log.Info("service: movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (s *MovieService) printMovies(movies []domain.Movie) {
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{formatID(m.ID), m.Title})
	}
	s.ui.Printer.Table([]string{"Id", "Title"}, rows)
}
