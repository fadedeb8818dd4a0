package httpserver

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movielib/internal/domain"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}

// handleListMovies lists every movie, or with ?q= the movies whose title
// contains q ignoring case.
func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	var (
		movies []domain.Movie
		err    error
	)
	if q, ok := r.URL.Query()["q"]; ok {
		movies, err = s.repo.Movies.Search(r.Context(), q[0])
	} else {
		movies, err = s.repo.Movies.List(r.Context())
	}
	if err != nil {
		s.logger.Error("http: list movies", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}
	s.respondJSON(w, http.StatusOK, newList(movies))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.Users.List(r.Context())
	if err != nil {
		s.logger.Error("http: list users", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}
	s.respondJSON(w, http.StatusOK, newList(users))
}

func (s *Server) handleListOccupations(w http.ResponseWriter, r *http.Request) {
	occupations, err := s.repo.Occupations.List(r.Context())
	if err != nil {
		s.logger.Error("http: list occupations", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list occupations")
		return
	}
	s.respondJSON(w, http.StatusOK, newList(occupations))
}

func (s *Server) handleListRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.repo.Ratings.List(r.Context())
	if err != nil {
		s.logger.Error("http: list ratings", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list ratings")
		return
	}
	s.respondJSON(w, http.StatusOK, newList(ratings))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("http: encode response", zap.Error(err))
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
