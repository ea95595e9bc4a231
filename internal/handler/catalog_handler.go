package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/timetable-api/internal/dto"
	"github.com/opencampus/timetable-api/pkg/response"
)

type catalogService interface {
	ListOfferings(ctx context.Context) ([]dto.OfferingResponse, error)
	GetOffering(ctx context.Context, id string) (*dto.OfferingResponse, error)
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
	GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error)
}

// CatalogHandler exposes the read-only course and room catalog.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler builds a new handler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListOfferings godoc
// @Summary List class offerings
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/offerings [get]
func (h *CatalogHandler) ListOfferings(c *gin.Context) {
	offerings, err := h.service.ListOfferings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offerings, nil)
}

// GetOffering godoc
// @Summary Get a class offering
// @Tags Catalog
// @Produce json
// @Param id path string true "Offering ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/offerings/{id} [get]
func (h *CatalogHandler) GetOffering(c *gin.Context) {
	offering, err := h.service.GetOffering(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offering, nil)
}

// ListRooms godoc
// @Summary List bookable rooms
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/rooms [get]
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// GetRoom godoc
// @Summary Get a room
// @Tags Catalog
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/rooms/{id} [get]
func (h *CatalogHandler) GetRoom(c *gin.Context) {
	room, err := h.service.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}
