package interfaces

import (
	"context"

	"servisku/internal/domain/entities"
)

//go:generate mockgen -source=message_repository_interface.go -destination=mocks/mock_message_repository_interface.go -package=mock_interfaces

// IMessageRepository abstracts DynamoDB persistence for Message.

type IMessageRepository interface {
	Create(ctx context.Context, m entities.Message) (entities.Message, error)
	ListByServiceRequestID(ctx context.Context, serviceRequestID string) ([]entities.Message, error)
}
