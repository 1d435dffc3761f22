package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/middleware"
)

// ListClosedDays handles GET /closed-days.
// Supports ?from= and ?to= (YYYY-MM-DD, inclusive).
func (s *Server) ListClosedDays(w http.ResponseWriter, r *http.Request) {
	from, err := dayParam(r, "from")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	to, err := dayParam(r, "to")
	if err != nil {
		requestError(w, err.Error())
		return
	}

	days, err := s.closedDays.List(r.Context(), from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]ClosedDayResponse, len(days))
	for i, cd := range days {
		data[i] = closedDayToResponse(cd)
	}
	writeJSON(w, http.StatusOK, data)
}

// CreateClosedDay handles POST /closed-days.
func (s *Server) CreateClosedDay(w http.ResponseWriter, r *http.Request) {
	var req ClosedDayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Day == nil {
		requestError(w, "day is required")
		return
	}

	cd, err := s.closedDays.Create(r.Context(), middleware.IdentityFrom(r.Context()), domain.DayOf(req.Day.Time), req.Reason)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, closedDayToResponse(cd))
}

// DeleteClosedDay handles DELETE /closed-days/{day}.
func (s *Server) DeleteClosedDay(w http.ResponseWriter, r *http.Request) {
	day, err := domain.ParseDay(chi.URLParam(r, "day"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.closedDays.Delete(r.Context(), middleware.IdentityFrom(r.Context()), day); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// dayParam parses an optional YYYY-MM-DD query parameter.
func dayParam(r *http.Request, name string) (*domain.Day, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	d, err := domain.ParseDay(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD)", name)
	}
	return &d, nil
}
