package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docesmara/etiquetas/internal/middleware"
)

// RegisterRoutes sets up the auth routes on the /api group. All three are
// public: login establishes the session, status reports it, logout destroys
// it. The RequireAuth middleware is exported separately for route groups
// that need an authenticated caller.
//
// Login is rate-limited per IP to slow down brute-force and credential
// stuffing attempts.
func RegisterRoutes(api *echo.Group, h *Handler) {
	api.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))
	api.GET("/auth/status", h.Status)
	api.POST("/logout", h.Logout)
}
