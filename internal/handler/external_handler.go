package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"growmate/internal/errors"
	"growmate/internal/service"
)

// ExternalHandler proxies the cached weather and plant catalog lookups.
type ExternalHandler struct {
	weather service.WeatherService
	catalog service.CatalogService
}

// NewExternalHandler creates an external data handler.
func NewExternalHandler(weather service.WeatherService, catalog service.CatalogService) *ExternalHandler {
	return &ExternalHandler{weather: weather, catalog: catalog}
}

// GetWeather godoc
// @Summary Today's weather for a location
// @Description Served from a 30 minute cache.
// @Tags external
// @Produce json
// @Security BearerAuth
// @Param location path string true "Location"
// @Success 200 {object} model.DayWeather
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /weather/{location} [get]
func (h *ExternalHandler) GetWeather(c echo.Context) error {
	location := strings.TrimSpace(c.Param("location"))
	if location == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "location is required",
			Code:  "INVALID_LOCATION",
		})
	}
	day, err := h.weather.Get(c.Request().Context(), location)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, day)
}

// BrowseCatalog godoc
// @Summary Browse the plant catalog
// @Tags external
// @Produce json
// @Param q query string false "Search text"
// @Param page query int false "Page, starting at 1"
// @Success 200 {object} model.PlantPage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /catalog [get]
func (h *ExternalHandler) BrowseCatalog(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "page must be a positive integer",
				Code:  "INVALID_PAGE",
			})
		}
		page = n
	}
	result, err := h.catalog.Browse(c.Request().Context(), c.QueryParam("q"), page)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetCatalogPlant godoc
// @Summary Plant catalog details
// @Tags external
// @Produce json
// @Param id path string true "Catalog species ID"
// @Success 200 {object} model.PlantData
// @Failure 502 {object} errors.ErrorResponse
// @Router /catalog/{id} [get]
func (h *ExternalHandler) GetCatalogPlant(c echo.Context) error {
	plant, err := h.catalog.PlantDetails(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, plant)
}
