package interfaces

import (
	"context"

	"servisku/internal/domain/entities"
)

//go:generate mockgen -source=payment_repository_interface.go -destination=mocks/mock_payment_repository_interface.go -package=mock_interfaces

// IPaymentRepository abstracts DynamoDB persistence for Payment.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	ListByServiceRequestID(ctx context.Context, serviceRequestID string) ([]entities.Payment, error)
}
