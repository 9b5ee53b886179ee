package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"servisku/internal/domain/entities"
	"servisku/internal/domain/guard"
	"servisku/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultPublishTimeout = 5 * time.Second

// ChannelName is the broadcast channel of one service request.
func ChannelName(serviceRequestID string) string {
	return "private-service-request." + serviceRequestID
}

//go:generate mockgen -source=message_usecase.go -destination=../adapter/http/handlers/mocks/mock_message_usecase.go -package=mocks

// IMessageUseCase exposes the chat channel of a service request.
//
//   - Send persists a text message from a participant and fans it out to the
//     other participants without waiting for delivery.
//   - Subscribe streams the events a participant should see (its own messages
//     are filtered out).

type IMessageUseCase interface {
	Send(ctx context.Context, caller entities.Caller, serviceRequestID string, body string) (entities.Message, error)
	Subscribe(ctx context.Context, caller entities.Caller, serviceRequestID string) (<-chan entities.MessageEvent, error)
}

type MessageUseCase struct {
	requests       interfaces.IServiceRequestRepository
	repo           interfaces.IMessageRepository
	broadcaster    interfaces.IMessageBroadcaster
	subscriber     interfaces.IMessageSubscriber
	publishTimeout time.Duration
	now            func() time.Time
}

var _ IMessageUseCase = (*MessageUseCase)(nil)

func NewMessageUseCase(
	requests interfaces.IServiceRequestRepository,
	repo interfaces.IMessageRepository,
	broadcaster interfaces.IMessageBroadcaster,
	subscriber interfaces.IMessageSubscriber,
) *MessageUseCase {
	return &MessageUseCase{
		requests:       requests,
		repo:           repo,
		broadcaster:    broadcaster,
		subscriber:     subscriber,
		publishTimeout: defaultPublishTimeout,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// WithPublishTimeout bounds each fan-out publish. Non-positive values are ignored.
func (u *MessageUseCase) WithPublishTimeout(d time.Duration) *MessageUseCase {
	if d > 0 {
		u.publishTimeout = d
	}
	return u
}

func (u *MessageUseCase) Send(ctx context.Context, caller entities.Caller, serviceRequestID string, body string) (entities.Message, error) {
	serviceRequestID, err := requireField("service_request_id", serviceRequestID)
	if err != nil {
		return entities.Message{}, err
	}
	r, err := loadServiceRequest(ctx, u.requests, serviceRequestID)
	if err != nil {
		return entities.Message{}, err
	}
	if err := guard.Authorize(caller, guard.Participants(r)); err != nil {
		log.Ctx(ctx).Warn().Str("service_request_id", serviceRequestID).Str("caller_id", caller.ID).Msg("[message][usecase] send rejected")
		return entities.Message{}, err
	}
	if strings.TrimSpace(body) == "" {
		return entities.Message{}, newValidationError("body", "is required")
	}
	if utf8.RuneCountInString(body) > entities.MessageBodyMaxLength {
		return entities.Message{}, newValidationError("body", "must be at most 2000 characters")
	}

	m := entities.Message{
		ID:               uuid.NewString(),
		ServiceRequestID: serviceRequestID,
		SenderID:         caller.ID,
		Type:             entities.MessageTypeText,
		Body:             body,
		CreatedAt:        u.now(),
	}
	created, err := u.repo.Create(ctx, m)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("service_request_id", serviceRequestID).Msg("[message][usecase] persist failed")
		return entities.Message{}, ErrInternal
	}
	log.Ctx(ctx).Info().Str("service_request_id", serviceRequestID).Str("message_id", created.ID).Msg("[message][usecase] message stored")

	u.publish(ctx, created)
	return created, nil
}

// publish fans the message out in the background. The stored message stays
// even when publishing fails.
func (u *MessageUseCase) publish(ctx context.Context, m entities.Message) {
	if u.broadcaster == nil {
		return
	}
	logger := log.Ctx(ctx).With().Str("service_request_id", m.ServiceRequestID).Str("message_id", m.ID).Logger()
	event := entities.MessageEvent{
		Event:         entities.MessageEventSent,
		ExcludeUserID: m.SenderID,
		Message:       m,
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().Interface("panic", rec).Msg("[message][usecase] publish panicked")
			}
		}()
		pubCtx, cancel := context.WithTimeout(context.Background(), u.publishTimeout)
		defer cancel()
		if err := u.broadcaster.Publish(pubCtx, ChannelName(m.ServiceRequestID), event); err != nil {
			logger.Warn().Err(err).Msg("[message][usecase] publish failed")
			return
		}
		logger.Debug().Msg("[message][usecase] published")
	}()
}

func (u *MessageUseCase) Subscribe(ctx context.Context, caller entities.Caller, serviceRequestID string) (<-chan entities.MessageEvent, error) {
	serviceRequestID, err := requireField("service_request_id", serviceRequestID)
	if err != nil {
		return nil, err
	}
	r, err := loadServiceRequest(ctx, u.requests, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if !guard.CanAct(caller, r) {
		return nil, ErrServiceRequestNotFound
	}
	if u.subscriber == nil {
		return nil, ErrInternal
	}

	events, err := u.subscriber.Subscribe(ctx, ChannelName(serviceRequestID))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("service_request_id", serviceRequestID).Msg("[message][usecase] subscribe failed")
		return nil, ErrInternal
	}

	out := make(chan entities.MessageEvent)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev.ExcludeUserID == caller.ID {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
