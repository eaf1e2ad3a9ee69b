package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"growmate/internal/model"
	"growmate/internal/service"
)

// KnowledgeBaseHandler handles plant knowledge base endpoints.
type KnowledgeBaseHandler struct {
	entries service.KnowledgeBaseService
}

// NewKnowledgeBaseHandler creates a knowledge base handler.
func NewKnowledgeBaseHandler(entries service.KnowledgeBaseService) *KnowledgeBaseHandler {
	return &KnowledgeBaseHandler{entries: entries}
}

// KnowledgeBaseRequest is the writable part of a knowledge base entry.
type KnowledgeBaseRequest struct {
	Name                  string               `json:"name" validate:"required,max=255"`
	Species               string               `json:"species"`
	Description           string               `json:"description"`
	SoilRequirements      string               `json:"soilRequirements"`
	LightRequirements     string               `json:"lightRequirements"`
	WateringInterval      model.Interval       `json:"wateringInterval"`
	WateringIntensity     string               `json:"wateringIntensity"`
	TypicalPlantingSeason model.PlantingSeason `json:"typicalPlantingSeason" validate:"omitempty,oneof=Spring Summer Autumn Winter"`
	ImageURL              *string              `json:"imageUrl" validate:"omitempty,url"`
	SuggestedTasks        []model.TaskTemplate `json:"suggestedTasks" validate:"dive"`
}

func (r KnowledgeBaseRequest) toModel() *model.PlantKnowledgeBase {
	return &model.PlantKnowledgeBase{
		Name:                  r.Name,
		Species:               r.Species,
		Description:           r.Description,
		SoilRequirements:      r.SoilRequirements,
		LightRequirements:     r.LightRequirements,
		WateringInterval:      r.WateringInterval,
		WateringIntensity:     r.WateringIntensity,
		TypicalPlantingSeason: r.TypicalPlantingSeason,
		ImageURL:              r.ImageURL,
		SuggestedTasks:        datatypes.JSONSlice[model.TaskTemplate](r.SuggestedTasks),
	}
}

// ListEntries godoc
// @Summary List knowledge base entries
// @Tags knowledge-base
// @Produce json
// @Success 200 {array} model.PlantKnowledgeBase
// @Router /PlantKnowledgeBase [get]
func (h *KnowledgeBaseHandler) ListEntries(c echo.Context) error {
	entries, err := h.entries.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// GetEntry godoc
// @Summary Get knowledge base entry
// @Tags knowledge-base
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} model.PlantKnowledgeBase
// @Failure 404 {object} errors.ErrorResponse
// @Router /PlantKnowledgeBase/{id} [get]
func (h *KnowledgeBaseHandler) GetEntry(c echo.Context) error {
	entry, err := h.entries.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// CreateEntry godoc
// @Summary Create knowledge base entry
// @Tags knowledge-base
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body KnowledgeBaseRequest true "Entry"
// @Success 201 {object} model.PlantKnowledgeBase
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /PlantKnowledgeBase [post]
func (h *KnowledgeBaseHandler) CreateEntry(c echo.Context) error {
	var req KnowledgeBaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.entries.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// ReplaceEntry godoc
// @Summary Replace knowledge base entry
// @Tags knowledge-base
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param entry body KnowledgeBaseRequest true "Entry"
// @Success 200 {object} model.PlantKnowledgeBase
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /PlantKnowledgeBase/{id} [put]
func (h *KnowledgeBaseHandler) ReplaceEntry(c echo.Context) error {
	var req KnowledgeBaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.entries.Replace(c.Request().Context(), c.Param("id"), req.toModel())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// DeleteEntry godoc
// @Summary Delete knowledge base entry
// @Tags knowledge-base
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /PlantKnowledgeBase/{id} [delete]
func (h *KnowledgeBaseHandler) DeleteEntry(c echo.Context) error {
	if err := h.entries.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddToGarden godoc
// @Summary Schedule an entry's suggested tasks for a user
// @Tags knowledge-base
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param knowledgeBaseId path string true "Entry ID"
// @Success 200 {array} model.GardenTask
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /Plants/add-to-garden/{userId}/{knowledgeBaseId} [post]
func (h *KnowledgeBaseHandler) AddToGarden(c echo.Context) error {
	userID := c.Param("userId")
	if _, err := authorize(c, userID); err != nil {
		return err
	}
	tasks, err := h.entries.AddToGarden(c.Request().Context(), userID, c.Param("knowledgeBaseId"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}
