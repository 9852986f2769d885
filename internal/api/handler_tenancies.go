package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zayura-backend/internal/model"
	"zayura-backend/internal/service"
)

// GetResidents handles GET /api/residents?search=.
func (h *Handler) GetResidents(c *gin.Context) {
	residents, err := h.svc.Residents(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, residents)
}

// GetTenancies handles GET /api/tenancies?status=&search=.
func (h *Handler) GetTenancies(c *gin.Context) {
	status := model.TenancyStatus(c.Query("status"))
	if status != "" && status != model.TenancyActive && status != model.TenancyCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	views, err := h.svc.ListTenancies(c.Request.Context(), status, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// UpdateResident handles PUT /api/residents/:id.
func (h *Handler) UpdateResident(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateResidentRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.UpdateResident(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type checkInRequest struct {
	service.CheckInRequest
	StartDate string `json:"start_date"`
}

// CheckIn handles POST /api/tenancies.
func (h *Handler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if !bindJSON(c, &req) {
		return
	}
	start, ok := optionalDate(c, req.StartDate)
	if !ok {
		return
	}
	req.CheckInRequest.StartDate = start

	res, err := h.svc.CheckIn(c.Request.Context(), req.CheckInRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type extendRequest struct {
	service.ExtendRequest
	StartDate string `json:"start_date"`
}

// Extend handles POST /api/tenancies/:id/extend.
func (h *Handler) Extend(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req extendRequest
	if !bindJSON(c, &req) {
		return
	}
	start, ok := optionalDate(c, req.StartDate)
	if !ok {
		return
	}
	req.ExtendRequest.StartDate = start

	invoices, err := h.svc.Extend(c.Request.Context(), id, req.ExtendRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoices)
}

// Checkout handles POST /api/tenancies/:id/checkout.
func (h *Handler) Checkout(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Checkout(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTenancy handles DELETE /api/tenancies/:id.
func (h *Handler) DeleteTenancy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTenancy(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetResidentInvoices handles GET /api/residents/:id/invoices.
func (h *Handler) GetResidentInvoices(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	invoices, err := h.svc.ResidentInvoices(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}
