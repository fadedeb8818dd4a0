package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movielib/internal/console"
	"github.com/Clark-Hu/movielib/internal/repository"
	"github.com/Clark-Hu/movielib/internal/validation"
)

// MainService is the top level menu.
type MainService struct {
	ui      *console.UI
	logger  *zap.Logger
	Movies  *MovieService
	Users   *UserService
	Ratings *RatingService
	Files   *FileService
}

// NewMainService builds every workflow over repo.
func NewMainService(repo *repository.Repository, ui *console.UI, logger *zap.Logger) *MainService {
	logger = nopIfNil(logger)
	v := validation.New()
	return &MainService{
		ui:      ui,
		logger:  logger,
		Movies:  NewMovieService(repo.Movies, ui, logger),
		Users:   NewUserService(repo.Users, repo.Occupations, v, ui, logger),
		Ratings: NewRatingService(repo, v, ui, logger),
		Files:   NewFileService(repo, ui, logger),
	}
}

// Run shows the main menu until Exit is picked or the input ends.
func (s *MainService) Run(ctx context.Context) error {
	s.ui.Printer.Title("Movie Library")
	s.logger.Info("service: session started")

	err := runMenu(ctx, s.ui, "Main Menu", []menuAction{
		{label: "Movies", run: s.Movies.Run},
		{label: "Users", run: s.Users.Run},
		{label: "Ratings", run: s.Ratings.Run},
		{label: "Files", run: s.Files.Run},
	}, "Exit")

	s.logger.Info("service: session ended", zap.Error(err))
	s.ui.Printer.Muted("Goodbye")
	return err
}
