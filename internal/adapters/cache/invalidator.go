// Package cache publishes page-invalidation signals over Redis.
package cache

import (
	"context"
	"log/slog"

	"github.com/redis/rueidis"

	"evently/internal/domain"
)

type redisInvalidator struct {
	client  rueidis.Client
	channel string
	logger  *slog.Logger
}

// NewRedisInvalidator returns a PathInvalidator that publishes stale paths
// to the given Redis channel. The page renderer subscribes and recomputes
// the affected pages. Publish failures are logged and otherwise dropped;
// callers never fail because of the signal.
func NewRedisInvalidator(addr, channel string, logger *slog.Logger) (domain.PathInvalidator, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, err
	}
	return &redisInvalidator{client: client, channel: channel, logger: logger}, nil
}

func (i *redisInvalidator) Invalidate(ctx context.Context, path string) {
	if path == "" {
		return
	}
	cmd := i.client.B().Publish().Channel(i.channel).Message(path).Build()
	if err := i.client.Do(ctx, cmd).Error(); err != nil {
		i.logger.WarnContext(ctx, "invalidation publish failed", "path", path, "err", err)
	}
}

type noopInvalidator struct{}

// NewNoopInvalidator returns a PathInvalidator that drops every signal.
// Used when no Redis address is configured and in tests.
func NewNoopInvalidator() domain.PathInvalidator {
	return noopInvalidator{}
}

func (noopInvalidator) Invalidate(context.Context, string) {}
