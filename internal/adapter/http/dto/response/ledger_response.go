package response

import (
	"time"

	"servisku/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type BalanceEntryResponse struct {
	ID        string          `json:"id"`
	OwnerRole string          `json:"owner_role"`
	OwnerID   string          `json:"owner_id"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	Type      string          `json:"type"`
	Note      string          `json:"note"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}

func FromBalanceEntry(e entities.BalanceEntry) BalanceEntryResponse {
	return BalanceEntryResponse{
		ID:        e.ID,
		OwnerRole: string(e.OwnerRole),
		OwnerID:   e.OwnerID,
		Amount:    e.Amount,
		Type:      string(e.Type),
		Note:      e.Note,
		Currency:  e.Currency,
		CreatedAt: e.CreatedAt,
	}
}

// LedgerViewResponse lists entries newest first next to the derived balances.
type LedgerViewResponse struct {
	OwnerRole          string                 `json:"owner_role"`
	OwnerID            string                 `json:"owner_id"`
	CurrentBalance     decimal.Decimal        `json:"current_balance" swaggertype:"string"`
	HeldAmount         decimal.Decimal        `json:"held_amount" swaggertype:"string"`
	WithdrawableAmount decimal.Decimal        `json:"withdrawable_amount" swaggertype:"string"`
	Entries            []BalanceEntryResponse `json:"entries"`
}

func FromLedgerView(v entities.LedgerView) LedgerViewResponse {
	entries := make([]BalanceEntryResponse, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, FromBalanceEntry(e))
	}
	return LedgerViewResponse{
		OwnerRole:          string(v.OwnerRole),
		OwnerID:            v.OwnerID,
		CurrentBalance:     v.CurrentBalance,
		HeldAmount:         v.HeldAmount,
		WithdrawableAmount: v.WithdrawableAmount,
		Entries:            entries,
	}
}
