package handlers

import (
	"errors"
	"net/http"

	"servisku/internal/adapter/http/dto/request"
	"servisku/internal/adapter/http/dto/response"
	"servisku/internal/adapter/http/middleware"
	"servisku/internal/domain/entities"
	"servisku/internal/usecase"
	"servisku/pkg"

	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes wallets: own view, admin view, withdrawals and adjustments.
type LedgerHandler struct {
	usecase usecase.ILedgerUseCase
}

func NewLedgerHandler(uc usecase.ILedgerUseCase) *LedgerHandler {
	return &LedgerHandler{usecase: uc}
}

// GetMyWallet godoc
// @Summary      Caller's wallet
// @Description  Entries newest first with current, held and withdrawable balances. Opens the wallet on first access.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  response.LedgerViewResponse
// @Failure      403  {object}  pkg.HTTPError
// @Router       /v1/wallet [get]
func (h *LedgerHandler) GetMyWallet(c *gin.Context) {
	caller := middleware.GetCaller(c)
	role, ok := usecase.OwnerRoleFor(caller)
	if !ok {
		abortWithError(c, errForbidden)
		return
	}
	h.writeView(c, caller, role, caller.ID)
}

// GetWallet godoc
// @Summary      Any owner's wallet (admin)
// @Tags         wallet
// @Produce      json
// @Param        owner_role  path      string  true  "user or technician"
// @Param        owner_id    path      string  true  "Owner id"
// @Success      200  {object}  response.LedgerViewResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      403  {object}  pkg.HTTPError
// @Router       /v1/wallet/{owner_role}/{owner_id} [get]
func (h *LedgerHandler) GetWallet(c *gin.Context) {
	h.writeView(c, middleware.GetCaller(c), entities.OwnerRole(c.Param("owner_role")), c.Param("owner_id"))
}

func (h *LedgerHandler) writeView(c *gin.Context, caller entities.Caller, role entities.OwnerRole, ownerID string) {
	view, err := h.usecase.GetLedgerView(c.Request.Context(), caller, role, ownerID)
	if err != nil {
		abortWithError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromLedgerView(view))
}

// Withdraw godoc
// @Summary      Request a withdrawal
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      request.WithdrawRequest  true  "Withdrawal"
// @Success      201   {object}  response.BalanceEntryResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /v1/wallet/withdrawals [post]
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	var payload request.WithdrawRequest
	if appErr := bindJSON(c, &payload); appErr != nil {
		abortWithError(c, appErr)
		return
	}

	entry, err := h.usecase.Withdraw(c.Request.Context(), middleware.GetCaller(c), *payload.Amount, payload.Note)
	if err != nil {
		abortWithError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromBalanceEntry(entry))
}

// RecordEntry godoc
// @Summary      Record a ledger entry (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      request.LedgerEntryRequest  true  "Entry"
// @Success      201   {object}  response.BalanceEntryResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Router       /v1/admin/ledger/entries [post]
func (h *LedgerHandler) RecordEntry(c *gin.Context) {
	var payload request.LedgerEntryRequest
	if appErr := bindJSON(c, &payload); appErr != nil {
		abortWithError(c, appErr)
		return
	}

	entry, err := h.usecase.RecordAdjustment(c.Request.Context(), middleware.GetCaller(c), payload.ToInput())
	if err != nil {
		abortWithError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromBalanceEntry(entry))
}

func mapLedgerError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInsufficientBalance):
		return pkg.NewDomainErrorSimple("INSUFFICIENT_BALANCE", "Amount exceeds the withdrawable balance", http.StatusConflict)
	default:
		return mapCommonError(err)
	}
}
