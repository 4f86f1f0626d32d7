package events

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/ws"

	"github.com/redis/go-redis/v9"
)

var errRedisUnavailable = errors.New("redis unavailable")

// Redis fans contact events out to every instance through a pub/sub channel.
// When Redis cannot be reached events are delivered to the local fallback
// only.
type Redis struct {
	client   *redis.Client
	channel  string
	fallback ws.Publisher
	logger   *log.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, fallback ws.Publisher, logger *log.Logger) *Redis {
	r := &Redis{
		channel:  strings.TrimSpace(cfg.Channel),
		fallback: fallback,
		logger:   logger,
	}
	if r.channel == "" {
		r.channel = "portfolio:contact_messages"
	}

	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return r
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		r.logf("[Events] Redis unavailable, using local delivery: %v", err)
		_ = client.Close()
		return r
	}

	r.client = client
	return r
}

func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) Publish(ctx context.Context, payload []byte) error {
	if !r.Available() {
		return r.deliverLocal(ctx, payload, nil)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return r.deliverLocal(ctx, payload, err)
	}
	return nil
}

// Subscribe forwards every message on the channel to fn until ctx ends.
func (r *Redis) Subscribe(ctx context.Context, fn func([]byte)) error {
	if !r.Available() {
		return errRedisUnavailable
	}

	sub := r.client.Subscribe(ctx, r.channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn([]byte(msg.Payload))
		}
	}
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) deliverLocal(ctx context.Context, payload []byte, cause error) error {
	if cause != nil {
		r.warnUnavailableOnce(cause)
	}
	if r == nil || r.fallback == nil {
		if cause != nil {
			return cause
		}
		return errRedisUnavailable
	}
	return r.fallback.Publish(ctx, payload)
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logf("[Events] Redis publish failed, falling back to local delivery: %v", err)
	}
}

func (r *Redis) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
