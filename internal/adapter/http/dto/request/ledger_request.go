package request

import (
	"servisku/internal/domain/entities"
	"servisku/internal/usecase"

	"github.com/shopspring/decimal"
)

type WithdrawRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Note   string           `json:"note"`
}

// LedgerEntryRequest is the admin adjustment payload. Type defaults to adjustment.
type LedgerEntryRequest struct {
	OwnerRole string           `json:"owner_role" binding:"required,oneof=user technician"`
	OwnerID   string           `json:"owner_id" binding:"required"`
	Amount    *decimal.Decimal `json:"amount" binding:"required"`
	Type      string           `json:"type" binding:"omitempty,oneof=initial_balance escrow_release settlement withdrawal adjustment"`
	Note      string           `json:"note"`
	Currency  string           `json:"currency" binding:"omitempty,len=3"`
}

func (r LedgerEntryRequest) ToInput() usecase.RecordEntryInput {
	in := usecase.RecordEntryInput{
		OwnerRole: entities.OwnerRole(r.OwnerRole),
		OwnerID:   r.OwnerID,
		Type:      entities.BalanceEntryType(r.Type),
		Note:      r.Note,
		Currency:  r.Currency,
	}
	if r.Amount != nil {
		in.Amount = *r.Amount
	}
	return in
}
