package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scottypickering/slushpool/internal/accounts"
	"github.com/scottypickering/slushpool/internal/logger"
	"github.com/scottypickering/slushpool/internal/metrics"
	"github.com/scottypickering/slushpool/pkg/slushpool"
)

// Service runs poll passes over the configured accounts.
type Service struct {
	client    PoolClient
	publisher EventPublisher
	log       logger.Logger
	store     Deduper
}

// passStats summarizes what one account contributed to a pass.
type passStats struct {
	published int
	skipped   int
}

// NewService wires a poller around a single pool client whose token is rotated per account.
func NewService(client PoolClient, pub EventPublisher, log logger.Logger, store Deduper) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	if store == nil {
		store = nopDeduper{}
	}
	return &Service{
		client:    client,
		publisher: pub,
		log:       log,
		store:     store,
	}
}

// Run executes a poll pass for all given accounts.
func (s *Service) Run(ctx context.Context, accs []accounts.Account) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("poller service is not initialized")
	}
	if s.publisher == nil {
		return fmt.Errorf("poller service has no publisher")
	}
	if len(accs) == 0 {
		return fmt.Errorf("no accounts configured for polling")
	}

	if errs := s.runAll(ctx, accs); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, accs []accounts.Account) []error {
	errs := make([]error, 0, len(accs))

	for _, acc := range accs {
		if ctx.Err() != nil {
			return errs
		}
		err := s.runAccount(ctx, acc)
		if err == nil || ctx.Err() != nil {
			continue
		}
		errs = append(errs, err)
		s.log.ErrorObj("account poll failed", "account_error", map[string]any{
			"account_id": acc.ID,
			"error":      err.Error(),
		})
	}

	return errs
}

func (s *Service) runAccount(ctx context.Context, acc accounts.Account) error {
	s.client.SetToken(acc.Token)

	var (
		errs  []error
		stats passStats
	)
	for _, ep := range accounts.AllEndpoints {
		if !acc.Polls(ep) {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		events, err := s.fetch(ctx, acc, ep)
		if err != nil {
			errs = append(errs, fmt.Errorf("fetch %s for account %s: %w", ep, acc.ID, err))
			continue
		}
		for _, out := range events {
			delivered, err := s.publish(ctx, out)
			if err != nil {
				errs = append(errs, err)
			}
			if delivered {
				stats.published++
			} else if err == nil {
				stats.skipped++
			}
		}
	}

	s.log.InfoObj("account poll completed", "account_result", map[string]any{
		"account_id":       acc.ID,
		"events_published": stats.published,
		"events_skipped":   stats.skipped,
		"errors":           len(errs),
	})
	return errors.Join(errs...)
}

// fetch calls one endpoint and turns the mapped result into events for acc.
func (s *Service) fetch(ctx context.Context, acc accounts.Account, ep accounts.Endpoint) ([]outgoing, error) {
	start := time.Now()
	var (
		events []outgoing
		err    error
	)

	switch ep {
	case accounts.EndpointStats:
		var stats *slushpool.PoolStats
		if stats, err = s.client.Stats(ctx); err == nil {
			events = statsEvents(acc, stats)
		}
	case accounts.EndpointProfile:
		var profile *slushpool.UserProfile
		if profile, err = s.client.Profile(ctx); err == nil {
			events = profileEvents(acc, profile)
		}
	case accounts.EndpointRewards:
		var rewards []slushpool.DailyReward
		if rewards, err = s.client.Rewards(ctx); err == nil {
			events = rewardEvents(acc, rewards)
		}
	case accounts.EndpointWorkers:
		var workers []slushpool.Worker
		if workers, err = s.client.Workers(ctx); err == nil {
			events = workerEvents(acc, workers)
		}
	default:
		return nil, fmt.Errorf("unknown endpoint %q", ep)
	}

	metrics.ObserveFetch(string(ep), err, time.Since(start))
	return events, err
}

// publish delivers out unless its key was already delivered with the same
// digest. It reports whether any sink accepted the event.
func (s *Service) publish(ctx context.Context, out outgoing) (bool, error) {
	evt := out.event
	if evt.Key != "" {
		seen, err := s.store.Seen(evt.Key, out.digest)
		if err != nil {
			s.log.WarnObj("dedupe lookup failed; publishing anyway", "dedupe_error", map[string]any{
				"key":   evt.Key,
				"error": err.Error(),
			})
		} else if seen {
			s.log.DebugObj("event already delivered", "event_key", evt.Key)
			return false, nil
		}
	}

	successful, err := s.publisher.Publish(ctx, evt)
	if successful > 0 {
		metrics.EventPublished(evt.Kind)
		if evt.Key != "" {
			if markErr := s.store.Mark(evt.Key, out.digest); markErr != nil {
				s.log.ErrorObj("dedupe mark failed", "dedupe_error", map[string]any{
					"key":   evt.Key,
					"error": markErr.Error(),
				})
			}
		}
	}
	if err != nil {
		return successful > 0, fmt.Errorf("publish %s event for account %s: %w", evt.Kind, evt.AccountID, err)
	}
	return successful > 0, nil
}
