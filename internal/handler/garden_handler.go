package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"growmate/internal/auth"
	"growmate/internal/model"
	"growmate/internal/service"
)

// GardenHandler handles garden and plant endpoints.
type GardenHandler struct {
	gardens service.GardenService
}

// NewGardenHandler creates a garden handler.
func NewGardenHandler(gardens service.GardenService) *GardenHandler {
	return &GardenHandler{gardens: gardens}
}

// GardenRequest is the writable part of a garden.
type GardenRequest struct {
	UserID      string               `json:"userId"`
	Name        string               `json:"name" validate:"required,max=255"`
	Location    string               `json:"location" validate:"max=255"`
	Soil        model.SoilParameters `json:"soil"`
	Description *string              `json:"description"`
	TemplateID  *string              `json:"templateId"`
	Plants      []model.Plant        `json:"plants"`
}

// PlantRequest is a plant to add to a garden.
type PlantRequest struct {
	Name        string    `json:"name" validate:"required,max=255"`
	APIPlantID  string    `json:"apiPlantId"`
	LastWatered time.Time `json:"lastWatered"`
	DatePlanted time.Time `json:"datePlanted"`
}

// GrowthRecordRequest is a growth observation for a plant.
type GrowthRecordRequest struct {
	RecordDate time.Time `json:"recordDate"`
	Notes      string    `json:"notes"`
	PhotoURL   string    `json:"photoUrl" validate:"omitempty,url"`
}

func (r GardenRequest) toModel(userID string) *model.Garden {
	return &model.Garden{
		UserID:      userID,
		Name:        r.Name,
		Location:    r.Location,
		Soil:        r.Soil,
		Description: r.Description,
		TemplateID:  r.TemplateID,
		Plants:      datatypes.JSONSlice[model.Plant](r.Plants),
	}
}

// ownedGarden loads a garden and checks the caller may act on it.
func (h *GardenHandler) ownedGarden(c echo.Context, id string) (*model.Garden, auth.Actor, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return nil, actor, err
	}
	garden, err := h.gardens.Get(c.Request().Context(), id)
	if err != nil {
		return nil, actor, respondError(err)
	}
	if _, err := authorize(c, garden.UserID); err != nil {
		return nil, actor, err
	}
	return garden, actor, nil
}

// ListGardens godoc
// @Summary List gardens
// @Description Admins see every garden, other users their own.
// @Tags gardens
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Garden
// @Failure 401 {object} errors.ErrorResponse
// @Router /Gardens [get]
func (h *GardenHandler) ListGardens(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var gardens []model.Garden
	if actor.IsAdmin() {
		gardens, err = h.gardens.List(c.Request().Context())
	} else {
		gardens, err = h.gardens.ListByUser(c.Request().Context(), actor.UserID)
	}
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, gardens)
}

// ListByUser godoc
// @Summary List a user's gardens
// @Tags gardens
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} model.Garden
// @Failure 403 {object} errors.ErrorResponse
// @Router /Gardens/by-user/{userId} [get]
func (h *GardenHandler) ListByUser(c echo.Context) error {
	userID := c.Param("userId")
	if _, err := authorize(c, userID); err != nil {
		return err
	}
	gardens, err := h.gardens.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, gardens)
}

// GetGarden godoc
// @Summary Get garden
// @Tags gardens
// @Produce json
// @Security BearerAuth
// @Param id path string true "Garden ID"
// @Success 200 {object} model.Garden
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /Gardens/{id} [get]
func (h *GardenHandler) GetGarden(c echo.Context) error {
	garden, _, err := h.ownedGarden(c, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, garden)
}

// CreateGarden godoc
// @Summary Create garden
// @Tags gardens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param garden body GardenRequest true "Garden"
// @Success 201 {object} model.Garden
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /Gardens [post]
func (h *GardenHandler) CreateGarden(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req GardenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	owner := req.UserID
	if owner == "" {
		owner = actor.UserID
	}
	if _, err := authorize(c, owner); err != nil {
		return err
	}

	garden, err := h.gardens.Create(c.Request().Context(), req.toModel(owner))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, garden)
}

// ReplaceGarden godoc
// @Summary Replace garden
// @Description Overwrites the whole document. Concurrent replaces are last-write-wins.
// @Tags gardens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Garden ID"
// @Param garden body GardenRequest true "Garden"
// @Success 200 {object} model.Garden
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /Gardens/{id} [put]
func (h *GardenHandler) ReplaceGarden(c echo.Context) error {
	existing, actor, err := h.ownedGarden(c, c.Param("id"))
	if err != nil {
		return err
	}
	var req GardenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	owner := existing.UserID
	if req.UserID != "" && actor.IsAdmin() {
		owner = req.UserID
	}

	garden, err := h.gardens.Replace(c.Request().Context(), existing.ID, req.toModel(owner))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, garden)
}

// DeleteGarden godoc
// @Summary Delete garden
// @Tags gardens
// @Security BearerAuth
// @Param id path string true "Garden ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /Gardens/{id} [delete]
func (h *GardenHandler) DeleteGarden(c echo.Context) error {
	garden, _, err := h.ownedGarden(c, c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.gardens.Delete(c.Request().Context(), garden.ID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddPlant godoc
// @Summary Add a plant to a garden
// @Description Also schedules a recurring watering task derived from the plant catalog.
// @Tags gardens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gardenId path string true "Garden ID"
// @Param plant body PlantRequest true "Plant"
// @Success 200 {object} service.AddPlantResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /Gardens/{gardenId}/plants [post]
func (h *GardenHandler) AddPlant(c echo.Context) error {
	garden, _, err := h.ownedGarden(c, c.Param("gardenId"))
	if err != nil {
		return err
	}
	var req PlantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gardens.AddPlant(c.Request().Context(), garden.ID, model.Plant{
		Name:        req.Name,
		APIPlantID:  req.APIPlantID,
		LastWatered: req.LastWatered,
		DatePlanted: req.DatePlanted,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// RemovePlant godoc
// @Summary Remove a plant from a garden
// @Tags gardens
// @Produce json
// @Security BearerAuth
// @Param gardenId path string true "Garden ID"
// @Param plantId path string true "Plant ID"
// @Success 200 {object} model.Garden
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /Gardens/{gardenId}/plants/{plantId} [delete]
func (h *GardenHandler) RemovePlant(c echo.Context) error {
	garden, _, err := h.ownedGarden(c, c.Param("gardenId"))
	if err != nil {
		return err
	}
	updated, err := h.gardens.RemovePlant(c.Request().Context(), garden.ID, c.Param("plantId"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// WaterPlant godoc
// @Summary Record a watering
// @Tags gardens
// @Produce json
// @Security BearerAuth
// @Param gardenId path string true "Garden ID"
// @Param plantId path string true "Plant ID"
// @Success 200 {object} model.Garden
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /Gardens/{gardenId}/plants/{plantId}/water [put]
func (h *GardenHandler) WaterPlant(c echo.Context) error {
	garden, _, err := h.ownedGarden(c, c.Param("gardenId"))
	if err != nil {
		return err
	}
	updated, err := h.gardens.WaterPlant(c.Request().Context(), garden.ID, c.Param("plantId"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// AddGrowthRecord godoc
// @Summary Append a growth record to a plant
// @Tags gardens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gardenId path string true "Garden ID"
// @Param plantId path string true "Plant ID"
// @Param record body GrowthRecordRequest true "Growth record"
// @Success 200 {object} model.Garden
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /Gardens/{gardenId}/plants/{plantId}/growth-records [post]
func (h *GardenHandler) AddGrowthRecord(c echo.Context) error {
	garden, _, err := h.ownedGarden(c, c.Param("gardenId"))
	if err != nil {
		return err
	}
	var req GrowthRecordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.gardens.AddGrowthRecord(c.Request().Context(), garden.ID, c.Param("plantId"), model.GrowthRecord{
		RecordDate: req.RecordDate,
		Notes:      req.Notes,
		PhotoURL:   req.PhotoURL,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}
