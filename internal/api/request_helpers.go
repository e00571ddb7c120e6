package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/api/shared"
	"github.com/phrazzld/discuss-api/internal/domain"
)

// Route parameters of the detail routes.
const (
	paramRef  = "ref"
	paramSlug = "slug"
	paramID   = "id"
)

// requestEnvelope holds top-level keys every create body may carry.
type requestEnvelope struct {
	// RequestedTime is a client timestamp. It is logged and otherwise ignored.
	RequestedTime json.RawMessage `json:"requested_time,omitempty"`
}

func (e requestEnvelope) logRequestedTime(log *slog.Logger) {
	if len(e.RequestedTime) > 0 {
		log.Debug("client requested time", slog.String("requested_time", string(e.RequestedTime)))
	}
}

// getUserIDFromContext extracts the authenticated user's UUID from the request context.
// The user ID is expected to be placed in the context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}

// requireUserID writes 401 and returns false when the request carries no
// authenticated user.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, false
	}
	return userID, true
}

// lookupID extracts the authoritative id from a detail route: "{id}",
// "{slug}-{id}" or "{slug}/{id}".
func lookupID(r *http.Request) (int64, bool) {
	if raw := chi.URLParam(r, paramID); raw != "" {
		return parseID(raw)
	}
	return parseLookup(chi.URLParam(r, paramRef))
}

// decodeAndValidate reads a JSON body into req and validates it. It writes
// the error response itself and returns false on failure.
func (h *handlerBase) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := shared.DecodeJSON(w, r, req, h.cfg.MaxBodyBytes); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
