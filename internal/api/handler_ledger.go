package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"zayura-backend/internal/model"
	"zayura-backend/internal/report"
	"zayura-backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type payInvoiceRequest struct {
	service.PayInvoiceRequest
	Date string `json:"date"`
}

// PayInvoice handles POST /api/invoices/:id/pay.
func (h *Handler) PayInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req payInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := optionalDate(c, req.Date)
	if !ok {
		return
	}
	req.PayInvoiceRequest.Date = date

	tx, err := h.svc.PayInvoice(c.Request.Context(), id, req.PayInvoiceRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// GetInvoiceTransaction handles GET /api/invoices/:id/transaction.
func (h *Handler) GetInvoiceTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	tx, err := h.svc.InvoiceTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

type transactionRequest struct {
	service.TransactionRequest
	Date string `json:"date"`
}

// CreateTransaction handles POST /api/transactions.
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req transactionRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := optionalDate(c, req.Date)
	if !ok {
		return
	}
	req.TransactionRequest.Date = date

	tx, err := h.svc.AddTransaction(c.Request.Context(), req.TransactionRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// GetLedger handles GET /api/ledger?month=&year=&type= and GET /api/transactions.
func (h *Handler) GetLedger(c *gin.Context) {
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}
	l, err := h.svc.Ledger(c.Request.Context(), year, month, model.TransactionType(c.Query("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// GetOperationalCosts handles GET /api/operational?month=&year=.
func (h *Handler) GetOperationalCosts(c *gin.Context) {
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}
	oc, err := h.svc.OperationalCosts(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, oc)
}

// GetLedgerReport handles GET /api/reports/ledger.xlsx?month=&year=.
func (h *Handler) GetLedgerReport(c *gin.Context) {
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}
	l, err := h.svc.Ledger(c.Request.Context(), year, month, "")
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := report.LedgerWorkbook(l)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="laporan-keuangan-%s.xlsx"`, l.Month))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
