package etiquetas

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/docesmara/etiquetas/internal/apperror"
	"github.com/docesmara/etiquetas/internal/nutrition"
)

// Handler handles HTTP requests for label records. Handlers are thin: they
// bind the request, call the service, and render the response. No business
// logic lives here.
type Handler struct {
	service EtiquetaService
}

// NewHandler creates a new label handler with the given service.
func NewHandler(service EtiquetaService) *Handler {
	return &Handler{service: service}
}

// List returns every label in creation order.
// GET /api/etiquetas
func (h *Handler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if result == nil {
		result = []Etiqueta{}
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns a single label by id.
// GET /api/etiquetas/:id
func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	e, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Create validates and inserts a new label.
// POST /api/etiquetas
func (h *Handler) Create(c echo.Context) error {
	var input EtiquetaInput
	if err := c.Bind(&input); err != nil {
		return apperror.NewBadRequest("Requisição inválida")
	}

	e, err := h.service.Create(c.Request().Context(), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// Update replaces a label in full; every field is re-validated.
// PATCH /api/etiquetas/:id
func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input EtiquetaInput
	if err := c.Bind(&input); err != nil {
		return apperror.NewBadRequest("Requisição inválida")
	}

	e, err := h.service.Update(c.Request().Context(), id, &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Delete removes a label by id.
// DELETE /api/etiquetas/:id
func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Etiqueta excluída com sucesso",
	})
}

// ValoresDiarios returns the computed daily-value panel for a label.
// GET /api/etiquetas/:id/valores-diarios
func (h *Handler) ValoresDiarios(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	tabela, err := h.service.ValoresDiarios(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tabela)
}

// Referencias returns the reference daily intake table itself, so clients
// can compute percentages for the live preview without a round trip per keystroke.
// GET /api/referencias/valores-diarios
func (h *Handler) Referencias(c echo.Context) error {
	return c.JSON(http.StatusOK, nutrition.ValoresDiarios)
}

// parseID parses the :id path parameter as a positive-base-10 integer.
func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperror.NewBadRequest("ID inválido")
	}
	return id, nil
}
