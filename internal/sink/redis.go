package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

// Redis pub/sub channels other local tooling can subscribe to.
const (
	channelPostingDiscovered = "EVENT_POSTING_DISCOVERED"
	channelDailyRollup       = "EVENT_DAILY_ROLLUP"
)

// RedisSink publishes discovery and rollup events on Redis pub/sub.
type RedisSink struct {
	rdb *redis.Client
}

// NewRedisSink returns a sink publishing through rdb.
func NewRedisSink(rdb *redis.Client) *RedisSink {
	return &RedisSink{rdb: rdb}
}

// Name implements Sink.
func (r *RedisSink) Name() string { return "redis" }

// DeliverPosting publishes the posting as JSON on EVENT_POSTING_DISCOVERED.
func (r *RedisSink) DeliverPosting(ctx context.Context, p model.StoredPosting) error {
	return r.publish(ctx, channelPostingDiscovered, p)
}

// DeliverSummary publishes the summary as JSON on EVENT_DAILY_ROLLUP.
func (r *RedisSink) DeliverSummary(ctx context.Context, s model.Summary) error {
	return r.publish(ctx, channelDailyRollup, s)
}

func (r *RedisSink) publish(ctx context.Context, channel string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := r.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}
