package usecase

import (
	"time"

	"servisku/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Settlement entry ids are derived from the service request so every step of
// the payout can be written at most once.
func holdEntryID(serviceRequestID string) string { return "escrow_hold#" + serviceRequestID }
func releaseEntryID(serviceRequestID string) string { return "escrow_release#" + serviceRequestID }
func settleEntryID(serviceRequestID string) string { return "settlement#" + serviceRequestID }

func technicianEntry(id string, r entities.ServiceRequest, amount decimal.Decimal, entryType entities.BalanceEntryType, note, currency string, now time.Time) entities.BalanceEntry {
	return entities.BalanceEntry{
		ID:        id,
		OwnerRole: entities.OwnerRoleTechnician,
		OwnerID:   r.TechnicianID,
		Amount:    amount,
		Type:      entryType,
		Note:      note,
		Currency:  currency,
		CreatedAt: now,
	}
}
