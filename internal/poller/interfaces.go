package poller

import (
	"context"

	"github.com/scottypickering/slushpool/pkg/publishers"
	"github.com/scottypickering/slushpool/pkg/slushpool"
)

// PoolClient is the subset of *slushpool.Client a pass needs.
type PoolClient interface {
	SetToken(token string)
	Stats(ctx context.Context) (*slushpool.PoolStats, error)
	Profile(ctx context.Context) (*slushpool.UserProfile, error)
	Rewards(ctx context.Context) ([]slushpool.DailyReward, error)
	Workers(ctx context.Context) ([]slushpool.Worker, error)
}

// EventPublisher publishes events downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which keys were delivered with which content digest.
type Deduper interface {
	Seen(key string, digest uint64) (bool, error)
	Mark(key string, digest uint64) error
}

type nopDeduper struct{}

func (nopDeduper) Seen(string, uint64) (bool, error) { return false, nil }
func (nopDeduper) Mark(string, uint64) error         { return nil }
