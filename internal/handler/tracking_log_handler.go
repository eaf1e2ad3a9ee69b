package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"growmate/internal/model"
	"growmate/internal/service"
)

// TrackingLogHandler handles plant tracking log endpoints.
type TrackingLogHandler struct {
	logs service.TrackingLogService
}

// NewTrackingLogHandler creates a tracking log handler.
func NewTrackingLogHandler(logs service.TrackingLogService) *TrackingLogHandler {
	return &TrackingLogHandler{logs: logs}
}

// TrackingLogRequest is a plant event. UserID defaults to the caller; only
// admins may record events for someone else.
type TrackingLogRequest struct {
	UserID    string    `json:"userId"`
	PlantID   string    `json:"plantId" validate:"required"`
	EventDate time.Time `json:"eventDate"`
	EventType string    `json:"eventType" validate:"required,max=100"`
	Notes     *string   `json:"notes"`
	PhotoURL  *string   `json:"photoUrl" validate:"omitempty,url"`
}

func (r TrackingLogRequest) toModel(owner string) *model.PlantTrackingLog {
	date := r.EventDate.UTC()
	if r.EventDate.IsZero() {
		date = time.Now().UTC()
	}
	return &model.PlantTrackingLog{
		UserID:    owner,
		PlantID:   r.PlantID,
		EventDate: date,
		EventType: r.EventType,
		Notes:     r.Notes,
		PhotoURL:  r.PhotoURL,
	}
}

// ListByPlant godoc
// @Summary List a plant's tracking logs
// @Tags tracking-logs
// @Produce json
// @Security BearerAuth
// @Param plantId path string true "Plant ID"
// @Success 200 {array} model.PlantTrackingLog
// @Router /PlantTrackingLogs/by-plant/{plantId} [get]
func (h *TrackingLogHandler) ListByPlant(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	logs, err := h.logs.ListByPlant(c.Request().Context(), c.Param("plantId"))
	if err != nil {
		return respondError(err)
	}
	visible := make([]model.PlantTrackingLog, 0, len(logs))
	for _, l := range logs {
		if actor.CanAccess(l.UserID) {
			visible = append(visible, l)
		}
	}
	return c.JSON(http.StatusOK, visible)
}

// ownedLog loads the log named by the id path parameter and checks the caller
// may access it.
func (h *TrackingLogHandler) ownedLog(c echo.Context) (*model.PlantTrackingLog, error) {
	if _, err := actorFrom(c); err != nil {
		return nil, err
	}
	log, err := h.logs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, respondError(err)
	}
	if _, err := authorize(c, log.UserID); err != nil {
		return nil, err
	}
	return log, nil
}

// GetLog godoc
// @Summary Get tracking log
// @Tags tracking-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Success 200 {object} model.PlantTrackingLog
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /PlantTrackingLogs/{id} [get]
func (h *TrackingLogHandler) GetLog(c echo.Context) error {
	log, err := h.ownedLog(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, log)
}

// CreateLog godoc
// @Summary Create tracking log
// @Tags tracking-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param log body TrackingLogRequest true "Log"
// @Success 201 {object} model.PlantTrackingLog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /PlantTrackingLogs [post]
func (h *TrackingLogHandler) CreateLog(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req TrackingLogRequest
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
	log, err := h.logs.Create(c.Request().Context(), req.toModel(owner))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, log)
}

// ReplaceLog godoc
// @Summary Replace tracking log
// @Tags tracking-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Param log body TrackingLogRequest true "Log"
// @Success 200 {object} model.PlantTrackingLog
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /PlantTrackingLogs/{id} [put]
func (h *TrackingLogHandler) ReplaceLog(c echo.Context) error {
	existing, err := h.ownedLog(c)
	if err != nil {
		return err
	}
	var req TrackingLogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	log, err := h.logs.Replace(c.Request().Context(), existing.ID, req.toModel(existing.UserID))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, log)
}

// DeleteLog godoc
// @Summary Delete tracking log
// @Tags tracking-logs
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /PlantTrackingLogs/{id} [delete]
func (h *TrackingLogHandler) DeleteLog(c echo.Context) error {
	existing, err := h.ownedLog(c)
	if err != nil {
		return err
	}
	if err := h.logs.Delete(c.Request().Context(), existing.ID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
