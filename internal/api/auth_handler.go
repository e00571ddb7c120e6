package api

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/phrazzld/discuss-api/internal/api/middleware"
	"github.com/phrazzld/discuss-api/internal/api/shared"
	"github.com/phrazzld/discuss-api/internal/config"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/service"
	"github.com/phrazzld/discuss-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	handlerBase
	userService service.UserService
	jwtService  auth.JWTService
	sessions    *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// sessions may be nil, in which case login issues only a token.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	sessions *scs.SessionManager,
	cfg config.APIConfig,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		handlerBase: newHandlerBase(cfg, logger),
		userService: userService,
		jwtService:  jwtService,
		sessions:    sessions,
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logFor(r, h.logger, "auth_handler")

	var req RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		log.Debug("registration failed", "error", err)
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login handles the /auth/login endpoint. Besides returning a token it
// stores the user in the session so cookie-based clients stay logged in.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logFor(r, h.logger, "auth_handler")

	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	if h.sessions != nil {
		// New session ID on privilege change.
		if err := h.sessions.RenewToken(r.Context()); err != nil {
			log.Error("failed to renew session token", "error", err)
			HandleAPIError(w, r, err, "Failed to authenticate user")
			return
		}
		h.sessions.Put(r.Context(), middleware.SessionUserIDKey, user.ID.String())
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

// Logout handles the /auth/logout endpoint.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil {
		if err := h.sessions.Destroy(r.Context()); err != nil {
			logFor(r, h.logger, "auth_handler").Error("failed to destroy session", "error", err)
			HandleAPIError(w, r, err, "Failed to log out")
			return
		}
	}
	shared.RespondNoContent(w)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		logFor(r, h.logger, "auth_handler").Error("failed to generate token", "error", err, "user_id", user.ID)
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		UserID:    user.ID,
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	})
}
