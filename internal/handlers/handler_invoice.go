package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/SscSPs/solar_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices and payments.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/payments", h.registerPayment)
		invoices.GET("/:invoiceID/payments", h.listPayments)
	}
}

// createInvoice godoc
// @Summary Register an invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Invoice number already exists"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice with its payment state
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), orgID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// registerPayment godoc
// @Summary Register a payment against an invoice
// @Description Rejected with 409 ALREADY_PAID once the invoice is paid.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   payment body dto.RegisterPaymentRequest true "Payment"
// @Success 201 {object} dto.RegisterPaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 409 {object} dto.ErrorResponse "Invoice already paid or duplicate reference"
// @Failure 503 {object} dto.ErrorResponse "Lock contention, retry"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/payments [post]
func (h *invoiceHandler) registerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	invoiceID := c.Param("invoiceID")

	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterPayment", slog.String("error", err.Error()))
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.invoiceService.RegisterPayment(c.Request.Context(), orgID, invoiceID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to register payment")
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterPaymentResponse{
		Invoice: dto.ToInvoiceResponse(&result.Invoice),
		Payment: dto.ToPaymentResponse(&result.Payment),
	})
}

// listPayments godoc
// @Summary List the payments of an invoice
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/payments [get]
func (h *invoiceHandler) listPayments(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), orgID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Failed to list payments")
		return
	}
	out := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		out[i] = dto.ToPaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, out)
}
