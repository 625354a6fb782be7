package etiquetas

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the label routes on the API group. Reads are
// public; writes require an authenticated session, enforced by the
// requireAuth middleware supplied by the caller.
func RegisterRoutes(api *echo.Group, h *Handler, requireAuth echo.MiddlewareFunc) {
	api.GET("/etiquetas", h.List)
	api.GET("/etiquetas/:id", h.Get)
	api.GET("/etiquetas/:id/valores-diarios", h.ValoresDiarios)
	api.GET("/referencias/valores-diarios", h.Referencias)

	api.POST("/etiquetas", h.Create, requireAuth)
	api.PATCH("/etiquetas/:id", h.Update, requireAuth)
	api.DELETE("/etiquetas/:id", h.Delete, requireAuth)
}
