package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"growmate/internal/service"
)

// TemplateHandler serves the built-in garden templates.
type TemplateHandler struct {
	templates service.TemplateService
}

// NewTemplateHandler creates a template handler.
func NewTemplateHandler(templates service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// ListTemplates godoc
// @Summary List garden templates
// @Tags templates
// @Produce json
// @Success 200 {array} model.GardenTemplate
// @Router /GardenTemplate [get]
func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.templates.List())
}

// GetTemplate godoc
// @Summary Get garden template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} model.GardenTemplate
// @Failure 404 {object} errors.ErrorResponse
// @Router /GardenTemplate/{id} [get]
func (h *TemplateHandler) GetTemplate(c echo.Context) error {
	tmpl, err := h.templates.Get(c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, tmpl)
}
