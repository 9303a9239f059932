package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	portssvc "github.com/SscSPs/rokkam_money_app/internal/core/ports/services"
	"github.com/SscSPs/rokkam_money_app/internal/dto"
	"github.com/SscSPs/rokkam_money_app/internal/middleware"
	"github.com/SscSPs/rokkam_money_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests for the invoice lifecycle.
type invoiceHandler struct {
	ledger portssvc.LedgerSvcFacade
}

func newInvoiceHandler(ledger portssvc.LedgerSvcFacade) *invoiceHandler {
	return &invoiceHandler{ledger: ledger}
}

// RegisterInvoiceRoutes registers the invoice routes on rg.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := newInvoiceHandler(ledger)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("", h.registerInvoice)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/offers", h.makeOffer)
		invoices.POST("/:invoiceID/accept", h.acceptFinancing)
		invoices.POST("/:invoiceID/settle", h.settleInvoice)
	}
}

// registerInvoice godoc
// @Summary Register an invoice
// @Description The seller registers a receivable on the ledger
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.RegisterInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceActionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to register invoice"
// @Router /invoices [post]
func (h *invoiceHandler) registerInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.ledger.RegisterInvoice(c.Request.Context(), req.Amount, req.Description)
	if err != nil {
		respondError(c, logger, err, "Failed to register invoice")
		return
	}

	logger.Info("Invoice registered", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.InvoiceActionResponse{
		Message: "Invoice registered on Digital Ledger",
		Invoice: dto.ToInvoiceResponse(invoice),
	})
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists invoices newest first, optionally filtered by status
// @Tags invoices
// @Produce  json
// @Param   status query string false "CREATED, OFFER_MADE, FINANCED or PAID"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var status *domain.InvoiceStatus
	if params.Status != "" {
		st := domain.InvoiceStatus(params.Status)
		status = &st
	}

	invoices, err := h.ledger.ListInvoices(c.Request.Context(), status)
	if err != nil {
		respondError(c, logger, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	invoice, err := h.ledger.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, logger.With(slog.String("invoice_id", invoiceID)), err, "Failed to retrieve invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// makeOffer godoc
// @Summary Issue a financing offer
// @Description The investor sends a term sheet for an invoice, replacing any open offer
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   offer body dto.MakeOfferRequest true "Offer amount"
// @Success 200 {object} dto.InvoiceActionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice no longer accepts offers"
// @Router /invoices/{invoiceID}/offers [post]
func (h *invoiceHandler) makeOffer(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	var req dto.MakeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MakeOffer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.ledger.MakeOffer(c.Request.Context(), invoiceID, req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to issue offer")
		return
	}

	c.JSON(http.StatusOK, dto.InvoiceActionResponse{
		Message: "Financing offer sent to Seller",
		Invoice: dto.ToInvoiceResponse(invoice),
	})
}

// acceptFinancing godoc
// @Summary Accept financing
// @Description The seller accepts the open offer and the investor disburses the offered amount
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceActionResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice has no open offer"
// @Failure 422 {object} map[string]string "Insufficient funds in operating account"
// @Router /invoices/{invoiceID}/accept [post]
func (h *invoiceHandler) acceptFinancing(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	invoice, err := h.ledger.AcceptFinancing(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, logger, err, "Failed to accept financing")
		return
	}

	message := "Financing accepted"
	if invoice.FinancedAmount != nil {
		message = fmt.Sprintf("%s credited to your account.", utils.FormatRupees(*invoice.FinancedAmount))
	}
	c.JSON(http.StatusOK, dto.InvoiceActionResponse{
		Message: message,
		Invoice: dto.ToInvoiceResponse(invoice),
	})
}

// settleInvoice godoc
// @Summary Settle an invoice
// @Description The buyer pays the invoice face value
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceActionResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice cannot be settled"
// @Failure 422 {object} map[string]string "Insufficient funds in operating account"
// @Router /invoices/{invoiceID}/settle [post]
func (h *invoiceHandler) settleInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	invoice, err := h.ledger.SettleInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, logger, err, "Failed to settle invoice")
		return
	}

	c.JSON(http.StatusOK, dto.InvoiceActionResponse{
		Message: "Payment processed successfully",
		Invoice: dto.ToInvoiceResponse(invoice),
	})
}
