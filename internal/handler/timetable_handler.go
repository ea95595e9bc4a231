package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/timetable-api/internal/dto"
	appErrors "github.com/opencampus/timetable-api/pkg/errors"
	"github.com/opencampus/timetable-api/pkg/response"
)

type timetableService interface {
	Timetable(ctx context.Context, scheduleID string, q dto.TimetableQuery) (*dto.TimetableResponse, error)
	Conflicts(ctx context.Context, scheduleID string) ([]dto.ConflictResponse, error)
}

// TimetableHandler exposes the read-side timetable projection endpoints.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler builds a new handler.
func NewTimetableHandler(service timetableService) *TimetableHandler {
	return &TimetableHandler{service: service}
}

// Timetable godoc
// @Summary Render the timetable grid through a projection
// @Tags Timetable
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Param axis query string false "Projection axis" Enums(all, room, section, teacher, course)
// @Param key query string false "Axis key"
// @Param building query string false "Building filter"
// @Param room query string false "Room filter"
// @Param day query string false "Day filter"
// @Param q query string false "Free-text search"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/timetable [get]
func (h *TimetableHandler) Timetable(c *gin.Context) {
	var query dto.TimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable query"))
		return
	}
	view, err := h.service.Timetable(c.Request.Context(), c.Param("scheduleId"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Conflicts godoc
// @Summary List every advisory conflict in the schedule
// @Tags Timetable
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/conflicts [get]
func (h *TimetableHandler) Conflicts(c *gin.Context) {
	conflicts, err := h.service.Conflicts(c.Request.Context(), c.Param("scheduleId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conflicts, nil)
}
