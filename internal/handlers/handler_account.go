package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/rokkam_money_app/internal/apperrors"
	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	portssvc "github.com/SscSPs/rokkam_money_app/internal/core/ports/services"
	"github.com/SscSPs/rokkam_money_app/internal/dto"
	"github.com/SscSPs/rokkam_money_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to participant accounts.
type accountHandler struct {
	ledger portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ledger portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		ledger: ledger,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledger)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:role", h.getAccount)
	}
}

// RegisterSummaryRoutes registers the ledger summary route.
func RegisterSummaryRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledger)
	rg.GET("/summary", h.getSummary)
}

// listAccounts godoc
// @Summary List participant accounts
// @Description Returns the seller, investor and buyer operating accounts
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.ledger.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by role
// @Tags accounts
// @Produce  json
// @Param   role path string true "seller, investor or buyer"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Unknown role"
// @Router /accounts/{role} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rawRole := c.Param("role")

	role, ok := domain.ParseRole(rawRole)
	if !ok {
		respondError(c, logger.With(slog.String("role", rawRole)),
			apperrors.NewAppError(http.StatusNotFound, "Unknown role", apperrors.ErrNotFound), "Failed to retrieve account")
		return
	}

	account, err := h.ledger.GetAccountByRole(c.Request.Context(), role)
	if err != nil {
		respondError(c, logger.With(slog.String("role", string(role))), err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getSummary godoc
// @Summary Ledger summary
// @Description Balances, invoice counts per status and audit log size
// @Tags summary
// @Produce  json
// @Success 200 {object} domain.LedgerSummary
// @Router /summary [get]
func (h *accountHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.ledger.GetLedgerSummary(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build ledger summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
