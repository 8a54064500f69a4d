// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/association-registrations/internal/apperr"
	"github.com/Shivanand-hulikatti/association-registrations/internal/auth"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.CodeOf(err)
	writeJSON(w, statusFor(r, code), model.ErrorResponse{Error: apperr.MessageOf(err), Code: string(code)})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: msg, Code: string(apperr.CodeBadRequest)})
}

// statusFor maps an error code to an HTTP status. Unauthorized becomes 401
// for anonymous callers and 403 for logged in ones.
func statusFor(r *http.Request, code apperr.Code) int {
	switch code {
	case apperr.CodeUnauthorized:
		if auth.FromContext(r.Context()) == nil {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeConflict, apperr.CodeCapacityExceeded:
		return http.StatusConflict
	case apperr.CodeWindowClosed:
		return http.StatusForbidden
	case apperr.CodeInvalidPosition, apperr.CodeCannotReorder, apperr.CodeMissingRequiredAnswer:
		return http.StatusUnprocessableEntity
	case apperr.CodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// uuidParam parses a UUID path parameter, writing a 400 on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeBadRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
