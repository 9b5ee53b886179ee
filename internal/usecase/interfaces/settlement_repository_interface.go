package interfaces

import (
	"context"

	"servisku/internal/domain/entities"
)

//go:generate mockgen -source=settlement_repository_interface.go -destination=mocks/mock_settlement_repository_interface.go -package=mock_interfaces

// ISettlementRepository writes the multi-item state changes of the payment
// flow as single transactions.
//
//   - SettlePayment: store the payment, move the request menunggu -> diproses,
//     append the technician hold entry.
//   - Complete: move the request diproses -> selesai and append the release and
//     settlement entries.
//
// Both check the request version read by the caller and return
// ErrConditionFailed when it moved.

type ISettlementRepository interface {
	SettlePayment(ctx context.Context, p entities.Payment, r entities.ServiceRequest, hold entities.BalanceEntry) (entities.ServiceRequest, error)
	Complete(ctx context.Context, r entities.ServiceRequest, entries []entities.BalanceEntry) (entities.ServiceRequest, error)
}
