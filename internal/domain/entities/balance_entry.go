package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OwnerRole string

const (
	OwnerRoleUser       OwnerRole = "user"
	OwnerRoleTechnician OwnerRole = "technician"
)

type BalanceEntryType string

const (
	BalanceEntryInitialBalance BalanceEntryType = "initial_balance"
	// BalanceEntryEscrowRelease marks funds that are counted in the balance but
	// not withdrawable yet. Positive amounts place a hold, negative amounts lift it.
	BalanceEntryEscrowRelease BalanceEntryType = "escrow_release"
	BalanceEntrySettlement    BalanceEntryType = "settlement"
	BalanceEntryWithdrawal    BalanceEntryType = "withdrawal"
	BalanceEntryAdjustment    BalanceEntryType = "adjustment"
)

const DefaultCurrency = "IDR"

// BalanceEntry is one immutable ledger row.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (owner_key-index): owner_key = "<owner_role>#<owner_id>"
//
// Balances are never stored; see LedgerView.
type BalanceEntry struct {
	ID        string           `json:"id"`
	OwnerRole OwnerRole        `json:"owner_role"`
	OwnerID   string           `json:"owner_id"`
	Amount    decimal.Decimal  `json:"amount"`
	Type      BalanceEntryType `json:"type"`
	Note      string           `json:"note"`
	Currency  string           `json:"currency"`
	CreatedAt time.Time        `json:"created_at"`
}

// OwnerKey returns the partition value used to group an owner's entries.
func OwnerKey(role OwnerRole, ownerID string) string {
	return string(role) + "#" + ownerID
}

// InitialBalanceEntryID is deterministic so the bootstrap entry can be written
// at most once per owner.
func InitialBalanceEntryID(role OwnerRole, ownerID string) string {
	return "initial_balance#" + OwnerKey(role, ownerID)
}

// LedgerView is the derived wallet state of one owner.
type LedgerView struct {
	OwnerRole          OwnerRole
	OwnerID            string
	Entries            []BalanceEntry
	CurrentBalance     decimal.Decimal
	HeldAmount         decimal.Decimal
	WithdrawableAmount decimal.Decimal
}

// Summarize computes current, held and withdrawable amounts over entries.
func Summarize(entries []BalanceEntry) (current, held, withdrawable decimal.Decimal) {
	current = decimal.Zero
	held = decimal.Zero
	for _, e := range entries {
		current = current.Add(e.Amount)
		if e.Type == BalanceEntryEscrowRelease {
			held = held.Add(e.Amount)
		}
	}
	return current, held, current.Sub(held)
}
