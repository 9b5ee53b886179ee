package interfaces

import (
	"context"

	"servisku/internal/domain/entities"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service_request_repository_interface.go -destination=mocks/mock_service_request_repository_interface.go -package=mock_interfaces

// IServiceRequestRepository abstracts DynamoDB persistence for ServiceRequest.
//
// GetByID returns a zero ServiceRequest (empty ID) when the item does not exist.
// UpdatePrice only succeeds while the request is awaiting (menunggu) and still
// at expectedVersion; otherwise it returns ErrConditionFailed.

type IServiceRequestRepository interface {
	Create(ctx context.Context, r entities.ServiceRequest) (entities.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (entities.ServiceRequest, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal, expectedVersion int64) (entities.ServiceRequest, error)
}
