// Package realtime fans chat events out over Redis Pub/Sub.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"servisku/internal/domain/entities"
	"servisku/internal/infrastructure/config"
	"servisku/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// PubSubClient is the part of *redis.Client the broadcaster needs.
type PubSubClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

var _ PubSubClient = (*redis.Client)(nil)

type RedisBroadcaster struct {
	client PubSubClient
}

var (
	_ interfaces.IMessageBroadcaster = (*RedisBroadcaster)(nil)
	_ interfaces.IMessageSubscriber  = (*RedisBroadcaster)(nil)
)

func NewRedisBroadcaster(client PubSubClient) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

// ConnectRedis builds the client and pings it. A failed ping is returned with
// the client so callers can decide to run without fan-out.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return client, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	log.Ctx(ctx).Info().Str("address", cfg.Address).Msg("[realtime] redis connected")
	return client, nil
}

func (b *RedisBroadcaster) Publish(ctx context.Context, channel string, event entities.MessageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	receivers, err := b.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("channel", channel).Int64("receivers", receivers).Msg("[realtime] event published")
	return nil
}

// Subscribe confirms the subscription before returning. The returned channel
// is closed when ctx is done or the subscription drops.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, channel string) (<-chan entities.MessageEvent, error) {
	ps := b.client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	logger := log.Ctx(ctx).With().Str("channel", channel).Logger()
	out := make(chan entities.MessageEvent)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				ev, err := DecodeEvent(msg.Payload)
				if err != nil {
					logger.Warn().Err(err).Msg("[realtime] dropping undecodable event")
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

func DecodeEvent(payload string) (entities.MessageEvent, error) {
	var ev entities.MessageEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return entities.MessageEvent{}, err
	}
	if ev.Event == "" {
		return entities.MessageEvent{}, errors.New("event name missing")
	}
	return ev, nil
}
