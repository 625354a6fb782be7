package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docesmara/etiquetas/internal/auth"
	"github.com/docesmara/etiquetas/internal/etiquetas"
	"github.com/docesmara/etiquetas/internal/session"
)

// RegisterRoutes sets up all application routes. Feature packages register
// their own routes on the /api group; this is the single place where they
// are aggregated.
func (a *App) RegisterRoutes(store session.Store) {
	e := a.Echo

	// Root status route, kept so load balancer probes and curious visitors
	// get a sensible answer instead of a 404.
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Backend API is running. Access /api routes.",
		})
	})

	// Health check endpoint for Docker health monitoring. Verifies the
	// dependencies the app cannot serve without.
	e.GET("/healthz", a.healthz)

	api := e.Group("/api")

	// Auth: login, session status, logout.
	authRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(authRepo, store)
	authHandler := auth.NewHandler(authService, a.cookiePolicy())
	auth.RegisterRoutes(api, authHandler)

	// Labels: reads are public, writes require a session.
	etiquetaRepo := etiquetas.NewEtiquetaRepository(a.DB)
	etiquetaService := etiquetas.NewEtiquetaService(etiquetaRepo)
	etiquetaHandler := etiquetas.NewHandler(etiquetaService)
	etiquetas.RegisterRoutes(api, etiquetaHandler, auth.RequireAuth(authService))
}

// cookiePolicy derives the session cookie attributes from the environment.
// In production the frontend is served from a different origin, so the
// cookie needs SameSite=None and therefore Secure. Local development runs
// over plain HTTP, where Lax is the strictest setting that still works.
func (a *App) cookiePolicy() auth.CookiePolicy {
	if a.Config.IsProduction() {
		return auth.CookiePolicy{
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			MaxAge:   int(a.Config.Session.TTL.Seconds()),
		}
	}
	return auth.CookiePolicy{
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(a.Config.Session.TTL.Seconds()),
	}
}

// healthz reports whether the app can reach its backing services.
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := a.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "database unreachable",
		})
	}

	if a.Redis != nil {
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": "redis unreachable",
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
