package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mountable is implemented by every Resource instantiation.
type Mountable interface {
	Name() string
	Routes(requireAuth func(http.Handler) http.Handler) chi.Router
}

// MountResources mounts each resource at /{name} under r.
func MountResources(r chi.Router, requireAuth func(http.Handler) http.Handler, resources ...Mountable) {
	for _, res := range resources {
		r.Mount("/"+res.Name(), res.Routes(requireAuth))
	}
}

// MountAuth mounts the authentication endpoints under r.
func MountAuth(r chi.Router, h *AuthHandler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})
}
