package handler

import (
	"net/http"

	"github.com/pkordes/catering-booking/internal/middleware"
)

// GetCatalog handles GET /catalog.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.catalog.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogToResponse(c))
}

// RefreshCatalog handles POST /catalog/refresh.
func (s *Server) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.catalog.Refresh(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogToResponse(c))
}
