package interfaces

import (
	"context"

	"servisku/internal/domain/entities"
)

//go:generate mockgen -source=message_broadcaster_interface.go -destination=mocks/mock_message_broadcaster_interface.go -package=mock_interfaces

// IMessageBroadcaster publishes chat events on a per-request channel.
// Publishing is best effort: there is no delivery confirmation.
type IMessageBroadcaster interface {
	Publish(ctx context.Context, channel string, event entities.MessageEvent) error
}

// IMessageSubscriber streams the events of one channel until ctx is done.
type IMessageSubscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan entities.MessageEvent, error)
}
