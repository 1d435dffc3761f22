package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/catering-booking/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope: {"error":{"code","message"}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// coder is implemented by the typed domain errors.
type coder interface {
	Code() string
}

// sentinels maps each domain sentinel to its HTTP status and default code.
var sentinels = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
}

// errorResponseFor maps a service error to a status and response body.
// ok is false for errors no sentinel matches.
func errorResponseFor(err error) (status int, body ErrorResponse, ok bool) {
	for _, s := range sentinels {
		if !errors.Is(err, s.err) {
			continue
		}
		var c coder
		if errors.As(err, &c) {
			if ce, isErr := c.(error); isErr {
				return s.status, errorBody(c.Code(), ce.Error()), true
			}
		}
		return s.status, errorBody(s.code, unwrapMessage(err, s.err)), true
	}
	return 0, ErrorResponse{}, false
}

// unwrapMessage extracts the human-readable part after the sentinel.
// e.g. "service.BookingService.Submit: validation error: notes must be at most 2000 characters"
// becomes "notes must be at most 2000 characters".
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// writeError writes err as a JSON error response. Unmapped errors are logged
// and reported as a bare 500 so internals never leak to clients.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status, body, ok := errorResponseFor(err); ok {
		writeJSON(w, status, body)
		return
	}
	s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}

// requestError writes a 422 for input rejected before reaching a service.
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", message))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads r's body into v. It writes the error response itself and
// returns false if the body is too large or not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", "request body is too large"))
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "request body must be valid JSON: "+err.Error()))
	return false
}
