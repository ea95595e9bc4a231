package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/timetable-api/internal/dto"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
	"github.com/opencampus/timetable-api/pkg/response"
)

type editorService interface {
	Place(ctx context.Context, scheduleID string, req dto.PlaceRequest) (*dto.PlacementResponse, error)
	Resize(ctx context.Context, scheduleID, id string, req dto.ResizeRequest) (*dto.PlacementResponse, error)
	AdjustDuration(ctx context.Context, scheduleID, id string, req dto.AdjustDurationRequest) (*dto.PlacementResponse, error)
	Remove(ctx context.Context, scheduleID, id string) error
	Conflicts(ctx context.Context, scheduleID, id string) ([]dto.ConflictResponse, error)
	Import(ctx context.Context, scheduleID string, req dto.ImportScheduleRequest) (int, error)
}

// EditorHandler exposes interactive timetable authoring endpoints.
type EditorHandler struct {
	service editorService
}

// NewEditorHandler builds a new handler.
func NewEditorHandler(service editorService) *EditorHandler {
	return &EditorHandler{service: service}
}

// Place godoc
// @Summary Place a class offering on the timetable
// @Tags Editor
// @Accept json
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Param payload body dto.PlaceRequest true "Placement payload"
// @Success 201 {object} response.Envelope
// @Router /schedules/{scheduleId}/allocations [post]
func (h *EditorHandler) Place(c *gin.Context) {
	var req dto.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid placement payload"))
		return
	}
	result, err := h.service.Place(c.Request.Context(), c.Param("scheduleId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, result, nil)
}

// Resize godoc
// @Summary Move an allocation's end time
// @Tags Editor
// @Accept json
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Param id path string true "Allocation ID"
// @Param payload body dto.ResizeRequest true "Resize payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/allocations/{id}/resize [put]
func (h *EditorHandler) Resize(c *gin.Context) {
	var req dto.ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid resize payload"))
		return
	}
	result, err := h.service.Resize(c.Request.Context(), c.Param("scheduleId"), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// AdjustDuration godoc
// @Summary Grow or shrink an allocation
// @Tags Editor
// @Accept json
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Param id path string true "Allocation ID"
// @Param payload body dto.AdjustDurationRequest true "Adjustment payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/allocations/{id}/duration [put]
func (h *EditorHandler) AdjustDuration(c *gin.Context) {
	var req dto.AdjustDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid adjustment payload"))
		return
	}
	result, err := h.service.AdjustDuration(c.Request.Context(), c.Param("scheduleId"), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Remove godoc
// @Summary Remove an allocation
// @Tags Editor
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Param id path string true "Allocation ID"
// @Success 204
// @Router /schedules/{scheduleId}/allocations/{id} [delete]
func (h *EditorHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("scheduleId"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Conflicts godoc
// @Summary List advisory conflicts for one allocation
// @Tags Editor
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Param id path string true "Allocation ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/allocations/{id}/conflicts [get]
func (h *EditorHandler) Conflicts(c *gin.Context) {
	conflicts, err := h.service.Conflicts(c.Request.Context(), c.Param("scheduleId"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conflicts, nil)
}

// Import godoc
// @Summary Replace the whole schedule with imported allocations
// @Tags Editor
// @Accept json
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Param payload body dto.ImportScheduleRequest true "Import payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/import [post]
func (h *EditorHandler) Import(c *gin.Context) {
	var req dto.ImportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid import payload"))
		return
	}
	count, err := h.service.Import(c.Request.Context(), c.Param("scheduleId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"imported": count}, nil)
}
