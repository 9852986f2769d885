package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zayura-backend/internal/model"
	"zayura-backend/internal/service"
)

// GetLaundry handles GET /api/laundry.
func (h *Handler) GetLaundry(c *gin.Context) {
	orders, err := h.svc.Laundry(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type laundryRequest struct {
	service.LaundryRequest
	Date string `json:"date"`
}

// CreateLaundry handles POST /api/laundry.
func (h *Handler) CreateLaundry(c *gin.Context) {
	var req laundryRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := optionalDate(c, req.Date)
	if !ok {
		return
	}
	req.LaundryRequest.Date = date

	order, err := h.svc.AddLaundry(c.Request.Context(), req.LaundryRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

type laundryStatusRequest struct {
	Status model.LaundryStatus `json:"status" binding:"required"`
}

// UpdateLaundryStatus handles PUT /api/laundry/:id/status.
func (h *Handler) UpdateLaundryStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req laundryStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.svc.AdvanceLaundry(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetLaundryStats handles GET /api/laundry/stats.
func (h *Handler) GetLaundryStats(c *gin.Context) {
	stats, err := h.svc.LaundryStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetEmployees handles GET /api/employees.
func (h *Handler) GetEmployees(c *gin.Context) {
	employees, err := h.svc.Employees(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// GetEmployee handles GET /api/employees/:id.
func (h *Handler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	emp, err := h.svc.Employee(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

type employeeRequest struct {
	service.EmployeeRequest
	JoinDate string `json:"join_date"`
}

// CreateEmployee handles POST /api/employees.
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}
	join, ok := optionalDate(c, req.JoinDate)
	if !ok {
		return
	}
	req.EmployeeRequest.JoinDate = join

	emp, err := h.svc.AddEmployee(c.Request.Context(), req.EmployeeRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// GetPayrolls handles GET /api/payrolls?month=2025-01.
func (h *Handler) GetPayrolls(c *gin.Context) {
	payrolls, err := h.svc.Payrolls(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payrolls)
}

type paySalaryRequest struct {
	service.PaySalaryRequest
	Date string `json:"date"`
}

// PaySalary handles POST /api/payrolls/:id/pay. The body is optional.
func (h *Handler) PaySalary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req paySalaryRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	date, ok := optionalDate(c, req.Date)
	if !ok {
		return
	}

	req.PaySalaryRequest.Date = date

	tx, err := h.svc.PaySalary(c.Request.Context(), id, req.PaySalaryRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}
