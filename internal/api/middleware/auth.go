package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/api/shared"
	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/phrazzld/discuss-api/internal/redact"
	"github.com/phrazzld/discuss-api/internal/service/auth"
)

// SessionUserIDKey is the session key holding the logged-in user's ID.
const SessionUserIDKey = "user_id"

// AuthMiddleware authenticates requests with a bearer JWT or, failing
// that, a session established by login.
type AuthMiddleware struct {
	jwtService auth.JWTService
	sessions   *scs.SessionManager
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
// sessions may be nil, in which case only bearer tokens are accepted.
func NewAuthMiddleware(jwtService auth.JWTService, sessions *scs.SessionManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Authenticate resolves the acting user and adds its ID to the request
// context. Requests without valid credentials get 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if userID, ok := m.sessionUserID(r); ok {
				next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), userID)))
				return
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				log.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), claims.UserID)))
	})
}

// sessionUserID reads the user ID stored by login. With a session manager
// configured, Authenticate must run inside its LoadAndSave.
func (m *AuthMiddleware) sessionUserID(r *http.Request) (uuid.UUID, bool) {
	if m.sessions == nil {
		return uuid.Nil, false
	}

	raw := m.sessions.GetString(r.Context(), SessionUserIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
