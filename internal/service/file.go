package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movielib/internal/console"
	"github.com/Clark-Hu/movielib/internal/repository"
)

// ErrNoTitleColumn is returned when an import file has no title column.
var ErrNoTitleColumn = errors.New("service: csv header has no title column")

// ImportResult counts the rows of an import.
type ImportResult struct {
	Imported int
	Skipped  int
}

// FileService moves movies and ratings between the catalog and CSV files.
type FileService struct {
	movies  repository.Movies
	ratings repository.Ratings
	ui      *console.UI
	logger  *zap.Logger
}

func NewFileService(repo *repository.Repository, ui *console.UI, logger *zap.Logger) *FileService {
	return &FileService{
		movies:  repo.Movies,
		ratings: repo.Ratings,
		ui:      ui,
		logger:  nopIfNil(logger),
	}
}

func (s *FileService) Run(ctx context.Context) error {
	return runMenu(ctx, s.ui, "Files", []menuAction{
		{label: "Import movies from CSV", run: s.ImportMovies},
		{label: "Export movies to CSV", run: s.ExportMovies},
		{label: "Export ratings to CSV", run: s.ExportRatings},
	}, "Back")
}

func (s *FileService) ImportMovies(ctx context.Context) error {
	path, err := s.ui.Prompter.Ask(ctx, "Enter the path of the CSV file to import", "File", console.ToneCreate)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		s.ui.Printer.Error("Could not open %s: %v", path, err)
		return nil
	}
	defer f.Close()

	result, err := s.ImportMoviesFrom(ctx, f)
	if err != nil {
		if errors.Is(err, ErrNoTitleColumn) || isCSVError(err) {
			s.ui.Printer.Error("Could not import %s: %v", path, err)
			return nil
		}
		return err
	}
	s.ui.Printer.Success("Imported %d movies, skipped %d", result.Imported, result.Skipped)
	return nil
}

// ImportMoviesFrom adds one movie per CSV row using the column named title.
// Blank titles and titles already in the catalog are skipped.
func (s *FileService) ImportMoviesFrom(ctx context.Context, r io.Reader) (ImportResult, error) {
	log := startAction(s.logger, "import_movies")
	var result ImportResult

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return result, ErrNoTitleColumn
	}
	if err != nil {
		return result, fmt.Errorf("read header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), "title") {
			col = i
			break
		}
	}
	if col < 0 {
		return result, ErrNoTitleColumn
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read row: %w", err)
		}
		if col >= len(record) {
			result.Skipped++
			continue
		}
		title := strings.TrimSpace(record[col])
		if title == "" {
			result.Skipped++
			continue
		}

		_, err = s.movies.GetByTitle(ctx, title)
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return result, fmt.Errorf("find movie: %w", err)
		}
		if _, err := s.movies.Create(ctx, title); err != nil {
			return result, fmt.Errorf("create movie %q: %w", title, err)
		}
		result.Imported++
	}

	log.Info("service: movies imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *FileService) ExportMovies(ctx context.Context) error {
	return s.exportToPath(ctx, "movies", s.ExportMoviesTo)
}

func (s *FileService) ExportRatings(ctx context.Context) error {
	return s.exportToPath(ctx, "ratings", s.ExportRatingsTo)
}

func (s *FileService) exportToPath(ctx context.Context, what string, export func(context.Context, io.Writer) (int, error)) error {
	path, err := s.ui.Prompter.Ask(ctx, "Enter the path of the CSV file to write the "+what+" to", "File", console.ToneCreate)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		s.ui.Printer.Error("Could not create %s: %v", path, err)
		return nil
	}
	n, err := export(ctx, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	s.ui.Printer.Success("Exported %d %s to %s", n, what, path)
	return nil
}

// ExportMoviesTo writes id,title rows and returns the number of movies.
func (s *FileService) ExportMoviesTo(ctx context.Context, w io.Writer) (int, error) {
	log := startAction(s.logger, "export_movies")
	movies, err := s.movies.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list movies: %w", err)
	}
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "title"})
	for _, m := range movies {
		_ = cw.Write([]string{formatID(m.ID), m.Title})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("write movies csv: %w", err)
	}
	log.Info("service: movies exported", zap.Int("count", len(movies)))
	return len(movies), nil
}

// ExportRatingsTo writes id,user_id,movie_id,rating,rated_at rows with
// RFC 3339 timestamps.
func (s *FileService) ExportRatingsTo(ctx context.Context, w io.Writer) (int, error) {
	log := startAction(s.logger, "export_ratings")
	ratings, err := s.ratings.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list ratings: %w", err)
	}
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "user_id", "movie_id", "rating", "rated_at"})
	for _, r := range ratings {
		_ = cw.Write([]string{
			formatID(r.ID),
			formatID(r.UserID),
			formatID(r.MovieID),
			fmt.Sprint(r.Value),
			r.RatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("write ratings csv: %w", err)
	}
	log.Info("service: ratings exported", zap.Int("count", len(ratings)))
	return len(ratings), nil
}

func isCSVError(err error) bool {
	var parseErr *csv.ParseError
	return errors.As(err, &parseErr)
}
