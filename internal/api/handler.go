package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zayura-backend/internal/auth"
	"zayura-backend/internal/parse"
	"zayura-backend/internal/service"
	"zayura-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc     *service.Service
	store   store.Store
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(svc *service.Service, webpushOptions *webpush.Options) *Handler {
	h := &Handler{svc: svc, webpush: webpushOptions}
	if svc != nil {
		h.store = svc.Store()
	}
	return h
}

// respondError maps service and store errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvoicePaid),
		errors.Is(err, service.ErrPayrollPaid),
		errors.Is(err, service.ErrRoomUnavailable),
		errors.Is(err, service.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
		return false
	}
	return true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// optionalDate parses a YYYY-MM-DD body field; empty means zero.
func optionalDate(c *gin.Context, s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	d, err := parse.Date(s)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, false
	}
	return d, true
}

// monthQuery reads ?month=1..12&year=yyyy, defaulting to the current month.
func (h *Handler) monthQuery(c *gin.Context) (int, time.Month, bool) {
	today := h.svc.Today()
	year, month := today.Year(), today.Month()

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return 0, 0, false
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return 0, 0, false
		}
		month = time.Month(m)
	}
	return year, month, true
}
