package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/movielib/internal/console"
	"github.com/Clark-Hu/movielib/internal/domain"
	"github.com/Clark-Hu/movielib/internal/repository"
	"github.com/Clark-Hu/movielib/internal/repository/sqlite"
)

type fixture struct {
	ctx  context.Context
	repo *repository.Repository
	out  *bytes.Buffer
	svc  *MainService

	user  domain.User
	movie domain.Movie
}

// newFixture seeds an in-memory catalog with one occupation, one user and
// the movies Star Wars and Terminator, and scripts the console with input.
func newFixture(t *testing.T, input string) *fixture {
	t.Helper()
	ctx := context.Background()
	db, repo, err := sqlite.Open(ctx, ":memory:", true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	occ, err := repo.Occupations.Create(ctx, "Engineer")
	require.NoError(t, err)
	user, err := repo.Users.Create(ctx, repository.UserCreateParams{
		Age: 31, Gender: "F", ZipCode: "12345", OccupationID: occ.ID,
	})
	require.NoError(t, err)
	movie, err := repo.Movies.Create(ctx, "Star Wars")
	require.NoError(t, err)
	_, err = repo.Movies.Create(ctx, "Terminator")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	ui := console.New(strings.NewReader(input), out, false, nil)
	return &fixture{
		ctx:   ctx,
		repo:  repo,
		out:   out,
		svc:   NewMainService(repo, ui, nil),
		user:  user,
		movie: movie,
	}
}

func (f *fixture) ratings(t *testing.T) []domain.Rating {
	t.Helper()
	ratings, err := f.repo.Ratings.List(f.ctx)
	require.NoError(t, err)
	return ratings
}

func (f *fixture) seedRating(t *testing.T, value int) domain.Rating {
	t.Helper()
	r, err := f.repo.Ratings.Create(f.ctx, repository.RatingCreateParams{
		UserID: f.user.ID, MovieID: f.movie.ID, Value: value, RatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return r
}

func TestRatingAdd_OutOfRangeCreatesNothing(t *testing.T) {
	for _, value := range []string{"0", "6", "-1", "100"} {
		t.Run(value, func(t *testing.T) {
			f := newFixture(t, "1\nStar Wars\n"+value+"\n")
			require.NoError(t, f.svc.Ratings.Add(f.ctx))
			assert.Contains(t, f.out.String(), "Rating must be from 1 to 5")
			assert.Empty(t, f.ratings(t))
		})
	}
}

func TestRatingAdd_NotAnInteger(t *testing.T) {
	f := newFixture(t, "one\n")
	require.NoError(t, f.svc.Ratings.Add(f.ctx))
	assert.Contains(t, f.out.String(), "User ID must be an integer")

	f = newFixture(t, "1\nStar Wars\nfour\n")
	require.NoError(t, f.svc.Ratings.Add(f.ctx))
	assert.Contains(t, f.out.String(), "Rating must be an integer")
	assert.Empty(t, f.ratings(t))
}

func TestRatingAdd_UnknownUserOrMovie(t *testing.T) {
	f := newFixture(t, "42\n")
	require.NoError(t, f.svc.Ratings.Add(f.ctx))
	assert.Contains(t, f.out.String(), "There is no user with the id 42")

	f = newFixture(t, "1\nstar wars\n")
	require.NoError(t, f.svc.Ratings.Add(f.ctx))
	assert.Contains(t, f.out.String(), "There is no movie titled star wars")
	assert.Empty(t, f.ratings(t))
}

func TestRatingAdd_Success(t *testing.T) {
	f := newFixture(t, "1\nStar Wars\n4\n")
	f.svc.Ratings.now = func() time.Time {
		return time.Date(2024, time.March, 9, 17, 4, 5, 0, time.FixedZone("EST", -5*3600))
	}
	require.NoError(t, f.svc.Ratings.Add(f.ctx))

	ratings := f.ratings(t)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4, ratings[0].Value)
	assert.Equal(t, f.user.ID, ratings[0].UserID)
	assert.Equal(t, f.movie.ID, ratings[0].MovieID)
	assert.Contains(t, f.out.String(), "rating: 4, user id: 1, movie id: 1, rating given: 2024-03-09 22:04:05")
}

func TestRatingAdd_DuplicateRejected(t *testing.T) {
	f := newFixture(t, "1\nStar Wars\n")
	f.seedRating(t, 2)

	require.NoError(t, f.svc.Ratings.Add(f.ctx))
	assert.Contains(t, f.out.String(), "The user with id 1, has already rated the movie Star Wars")
	ratings := f.ratings(t)
	require.Len(t, ratings, 1)
	assert.Equal(t, 2, ratings[0].Value)
}

func TestRatingDelete_MissingLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t, "99\n42\n")
	before := f.seedRating(t, 3)

	require.NoError(t, f.svc.Ratings.Delete(f.ctx))
	out := f.out.String()
	assert.Contains(t, out, "Warning! There is no user with the id 99 within the database")
	assert.Contains(t, out, "Warning! There is no movie with the id 42 within the database")
	assert.Contains(t, out, "The user with id 99 has not rated the movie with id 42")
	assert.Equal(t, []domain.Rating{before}, f.ratings(t))
}

func TestRatingDelete_Existing(t *testing.T) {
	f := newFixture(t, "1\n1\n")
	f.seedRating(t, 5)

	require.NoError(t, f.svc.Ratings.Delete(f.ctx))
	assert.Contains(t, f.out.String(), "rating: 5, user id: 1, movie id: 1")
	assert.Contains(t, f.out.String(), "This Rating has been deleted")
	assert.Empty(t, f.ratings(t))
}

func TestRatingList_WarnsAboutLength(t *testing.T) {
	f := newFixture(t, "")
	f.seedRating(t, 1)
	require.NoError(t, f.svc.Ratings.List(f.ctx))
	assert.Contains(t, f.out.String(), "extremely long")
	assert.Contains(t, f.out.String(), "Rated At")
}

func TestUserAdd_ZipCodes(t *testing.T) {
	tests := []struct {
		zip     string
		created bool
	}{
		{"12345", true},
		{"12345-6789", true},
		{"A1A 1A1", true},
		{"ABCDE", false},
		{"a1a 1a1", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			f := newFixture(t, "25\nM\n"+tt.zip+"\nEngineer\n")
			require.NoError(t, f.svc.Users.Add(f.ctx))

			users, err := f.repo.Users.List(f.ctx)
			require.NoError(t, err)
			if tt.created {
				require.Len(t, users, 2)
				assert.Equal(t, tt.zip, users[1].ZipCode)
				assert.Contains(t, f.out.String(), "User added:")
			} else {
				assert.Len(t, users, 1)
				assert.Contains(t, f.out.String(), "Not a valid Zip Code!")
			}
		})
	}
}

func TestUserAdd_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"age not integer", "old\n", "Age must be an integer"},
		{"negative age", "-3\n", "Age cannot be negative"},
		{"age overflows int32", "3000000000\n", "Age is too large"},
		{"unknown occupation", "25\nM\n12345\nAstronaut\n", msgNoOccupation},
		{"blank occupation", "25\nM\n12345\n\n", msgNoOccupation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.input)
			require.NoError(t, f.svc.Users.Add(f.ctx))
			assert.Contains(t, f.out.String(), tt.want)
			users, err := f.repo.Users.List(f.ctx)
			require.NoError(t, err)
			assert.Len(t, users, 1)
		})
	}
}

func TestUserDelete(t *testing.T) {
	f := newFixture(t, "7\nx\n1\n")
	require.NoError(t, f.svc.Users.Delete(f.ctx))
	assert.Contains(t, f.out.String(), "A user with id 7 doesn't exist in the database")
	require.NoError(t, f.svc.Users.Delete(f.ctx))
	assert.Contains(t, f.out.String(), "Id must be an integer")

	f.seedRating(t, 4)
	require.NoError(t, f.svc.Users.Delete(f.ctx))
	assert.Contains(t, f.out.String(), "This User has been deleted")
	assert.Empty(t, f.ratings(t))
}

func TestDeleteOccupation_ReferencedIsRejected(t *testing.T) {
	f := newFixture(t, "1\n1\n")
	for i := 0; i < 2; i++ {
		require.NoError(t, f.svc.Users.DeleteOccupation(f.ctx))
	}
	assert.Equal(t, 2, strings.Count(f.out.String(), "A user still has the occupation Engineer"))

	occupations, err := f.repo.Occupations.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, occupations, 1)
}

func TestDeleteOccupation_RejectedUntilLastHolderIsGone(t *testing.T) {
	f := newFixture(t, "1\n1\n1\n2\n1\n")
	second, err := f.repo.Users.Create(f.ctx, repository.UserCreateParams{
		Age: 44, Gender: "M", ZipCode: "54321", OccupationID: f.user.OccupationID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), second.ID)

	require.NoError(t, f.svc.Users.DeleteOccupation(f.ctx))
	require.NoError(t, f.svc.Users.Delete(f.ctx))
	require.NoError(t, f.svc.Users.DeleteOccupation(f.ctx))
	assert.Equal(t, 2, strings.Count(f.out.String(), "A user still has the occupation Engineer"))
	assert.NotContains(t, f.out.String(), "This Occupation has been deleted")

	require.NoError(t, f.svc.Users.Delete(f.ctx))
	require.NoError(t, f.svc.Users.DeleteOccupation(f.ctx))
	assert.Contains(t, f.out.String(), "This Occupation has been deleted")

	occupations, err := f.repo.Occupations.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, occupations)
}

func TestOccupation_AddListDelete(t *testing.T) {
	f := newFixture(t, "Librarian\nLibrarian\n2\n2\n")

	require.NoError(t, f.svc.Users.AddOccupation(f.ctx))
	assert.Contains(t, f.out.String(), "Occupation added: (2), Name: Librarian")

	require.NoError(t, f.svc.Users.AddOccupation(f.ctx))
	assert.Contains(t, f.out.String(), "An occupation with the name Librarian already exists in the database")

	occupations, err := f.repo.Occupations.List(f.ctx)
	require.NoError(t, err)
	count := 0
	for _, o := range occupations {
		if o.Name == "Librarian" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	f.out.Reset()
	require.NoError(t, f.svc.Users.ListOccupations(f.ctx))
	assert.Contains(t, f.out.String(), "Librarian")

	require.NoError(t, f.svc.Users.DeleteOccupation(f.ctx))
	assert.Contains(t, f.out.String(), "This Occupation has been deleted")

	require.NoError(t, f.svc.Users.DeleteOccupation(f.ctx))
	assert.Contains(t, f.out.String(), "An occupation with id 2 doesn't exist in the database")

	occupations, err = f.repo.Occupations.List(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Occupation{{ID: 1, Name: "Engineer"}}, occupations)
}

type missingOccupations struct {
	repository.Occupations
	lookups int
}

func (m *missingOccupations) GetByID(context.Context, int64) (domain.Occupation, error) {
	m.lookups++
	return domain.Occupation{}, repository.ErrNotFound
}

func TestListWithOccupationName(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, f.svc.Users.ListWithOccupationName(f.ctx))
	assert.Contains(t, f.out.String(), "Engineer")

	stub := &missingOccupations{}
	svc := NewUserService(f.repo.Users, stub, nil, f.svc.ui, nil)
	f.out.Reset()
	require.NoError(t, svc.ListWithOccupationName(f.ctx))
	assert.Contains(t, f.out.String(), "unknown")
	assert.Equal(t, 1, stub.lookups)
}

func TestMovieSearch(t *testing.T) {
	for _, text := range []string{"War", "war"} {
		t.Run(text, func(t *testing.T) {
			f := newFixture(t, text+"\n")
			require.NoError(t, f.svc.Movies.Search(f.ctx))
			assert.Contains(t, f.out.String(), "Star Wars")
			assert.NotContains(t, f.out.String(), "Terminator")
		})
	}

	f := newFixture(t, "zzz\n")
	require.NoError(t, f.svc.Movies.Search(f.ctx))
	assert.Contains(t, f.out.String(), `No movies matched "zzz"`)
}

func TestMovieAddAndDelete(t *testing.T) {
	f := newFixture(t, "Alien\nAlien\n\n3\n3\n")

	require.NoError(t, f.svc.Movies.Add(f.ctx))
	assert.Contains(t, f.out.String(), "Movie added: (3), title: Alien")
	require.NoError(t, f.svc.Movies.Add(f.ctx))
	assert.Contains(t, f.out.String(), "A movie titled Alien already exists in the database")
	require.NoError(t, f.svc.Movies.Add(f.ctx))
	assert.Contains(t, f.out.String(), "The title cannot be empty")

	require.NoError(t, f.svc.Movies.Delete(f.ctx))
	assert.Contains(t, f.out.String(), "This Movie has been deleted")
	require.NoError(t, f.svc.Movies.Delete(f.ctx))
	assert.Contains(t, f.out.String(), "A movie with id 3 doesn't exist in the database")

	movies, err := f.repo.Movies.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestMainMenu_NavigatesAndExits(t *testing.T) {
	// Movies > Search "War" > Back > Exit
	f := newFixture(t, "1\n2\nWar\n5\n5\n")
	require.NoError(t, f.svc.Run(f.ctx))
	out := f.out.String()
	assert.Contains(t, out, "Main Menu")
	assert.Contains(t, out, "Star Wars")
	assert.NotContains(t, out, "Terminator")
	assert.Contains(t, out, "Goodbye")
}

func TestMainMenu_EndOfInput(t *testing.T) {
	f := newFixture(t, "3\n")
	err := f.svc.Run(f.ctx)
	assert.ErrorIs(t, err, io.EOF)
}

type failingMovies struct {
	repository.Movies
}

func (failingMovies) List(context.Context) ([]domain.Movie, error) {
	return nil, io.ErrUnexpectedEOF
}

func TestMenu_ActionErrorReturnsToMenu(t *testing.T) {
	f := newFixture(t, "1\n5\n")
	svc := NewMovieService(failingMovies{}, f.svc.ui, nil)
	require.NoError(t, svc.Run(f.ctx))
	assert.Contains(t, f.out.String(), "list movies: unexpected EOF")
	assert.Contains(t, f.out.String(), "List movies")
}
