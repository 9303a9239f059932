package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/rokkam_money_app/internal/core/ports/services"
	"github.com/SscSPs/rokkam_money_app/internal/dto"
	"github.com/SscSPs/rokkam_money_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	ledger portssvc.LedgerSvcFacade
}

// RegisterAuditRoutes registers the audit log routes.
func RegisterAuditRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := &auditHandler{ledger: ledger}

	audit := rg.Group("/audit")
	{
		audit.GET("", h.listAuditEntries)
		audit.GET("/verify", h.verifyAuditChain)
	}
}

// listAuditEntries godoc
// @Summary List audit entries
// @Description Returns the audit log newest first using token based pagination
// @Tags audit
// @Produce  json
// @Param   limit query int false "Page size (default 50, max 500)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListAuditEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /audit [get]
func (h *auditHandler) listAuditEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAuditEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListAuditEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.ledger.ListAuditEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list audit entries")
		return
	}

	c.JSON(http.StatusOK, page)
}

// verifyAuditChain godoc
// @Summary Verify the audit hash chain
// @Tags audit
// @Produce  json
// @Success 200 {object} domain.AuditVerification
// @Router /audit/verify [get]
func (h *auditHandler) verifyAuditChain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.ledger.VerifyAuditChain(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to verify audit chain")
		return
	}
	if !result.Valid {
		logger.Warn("Audit chain is broken", slog.Any("broken_at", result.BrokenAt))
	}

	c.JSON(http.StatusOK, result)
}
