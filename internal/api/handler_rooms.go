package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zayura-backend/internal/model"
	"zayura-backend/internal/service"
)

// GetSnapshot returns every table with reconciled room statuses.
func (h *Handler) GetSnapshot(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetDashboard returns the landing page summary.
func (h *Handler) GetDashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetRooms handles GET /api/rooms.
func (h *Handler) GetRooms(c *gin.Context) {
	rooms, err := h.svc.Rooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if status := model.RoomStatus(c.Query("status")); status != "" {
		filtered := rooms[:0]
		for _, r := range rooms {
			if r.Status == status {
				filtered = append(filtered, r)
			}
		}
		rooms = filtered
	}
	c.JSON(http.StatusOK, rooms)
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req service.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := h.svc.CreateRoom(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

type roomStatusRequest struct {
	Status model.RoomStatus `json:"status" binding:"required"`
}

// UpdateRoomStatus handles PUT /api/rooms/:id/status.
func (h *Handler) UpdateRoomStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req roomStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.UpdateRoomStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteRoom(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
