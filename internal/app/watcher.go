package app

import (
	"context"
	"fmt"
	"time"

	"github.com/scottypickering/slushpool/internal/accounts"
	"github.com/scottypickering/slushpool/internal/config"
	"github.com/scottypickering/slushpool/internal/logger"
	"github.com/scottypickering/slushpool/internal/metrics"
	"github.com/scottypickering/slushpool/internal/poller"
	"github.com/scottypickering/slushpool/internal/storage"
	"github.com/scottypickering/slushpool/pkg/httpclient"
	"github.com/scottypickering/slushpool/pkg/publishers"
	"github.com/scottypickering/slushpool/pkg/slushpool"
)

// Watcher is the long-running runtime. It owns the poll loop and the
// resources the poller depends on: the accounts, the publisher fan-out and the
// dedupe store.
type Watcher struct {
	cfg          *config.Config
	accountReg   *accounts.Registry
	fanout       *publishers.Fanout
	pollService  *poller.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewWatcher builds a watcher runtime from config files. clientOpts are
// applied to the pool client after the configured transport.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger, clientOpts ...slushpool.Option) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	accountReg, err := accounts.LoadRegistry(cfg.AccountsFile)
	if err != nil {
		return nil, fmt.Errorf("load accounts registry: %w", err)
	}
	accountList := accountReg.All()
	accountIDs := make([]string, 0, len(accountList))
	for _, a := range accountList {
		accountIDs = append(accountIDs, a.ID)
	}
	log.InfoObj("accounts registry loaded", "accounts_meta", map[string]any{
		"count": len(accountIDs),
		"ids":   accountIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	storeOpts := storage.Options{
		TTL:             cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	opts := append([]slushpool.Option{
		slushpool.WithHTTPClient(httpclient.NewRestyClient(cfg.HTTPTimeout)),
	}, clientOpts...)
	client := slushpool.New(opts...)

	return &Watcher{
		cfg:          cfg,
		accountReg:   accountReg,
		fanout:       fanout,
		pollService:  poller.NewService(client, fanout, log, store),
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run starts the poll loop until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.pollService == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.close()

	if w.cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, w.cfg.MetricsAddr, w.log); err != nil {
				w.log.ErrorObj("metrics listener failed", "error", err.Error())
			}
		}()
	}

	accs := w.accountReg.Enabled()
	if len(accs) == 0 {
		w.log.WarnObj("no enabled accounts; watcher idle", "accounts_file", w.cfg.AccountsFile)
		<-ctx.Done()
		return nil
	}

	w.log.InfoObj("watcher loop starting", "watcher_state", map[string]any{
		"accounts_count":   len(accs),
		"publishers_count": w.fanout.Size(),
		"poll_interval":    w.pollInterval.String(),
	})

	if err := w.runOnce(ctx, accs); err != nil {
		w.log.ErrorObj("initial poll failed", "error", err.Error())
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.InfoObj("watcher loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx, accs); err != nil {
				w.log.ErrorObj("scheduled poll failed", "error", err.Error())
			}
		}
	}
}

// runOnce performs a single poll pass across all accounts.
func (w *Watcher) runOnce(ctx context.Context, accs []accounts.Account) error {
	start := time.Now()
	w.log.InfoObj("poll started", "poll_meta", map[string]any{
		"accounts_count": len(accs),
		"started_at":     start.UTC(),
	})
	if err := w.pollService.Run(ctx, accs); err != nil {
		return err
	}
	w.log.InfoObj("poll completed", "poll_meta", map[string]any{
		"accounts_count": len(accs),
		"elapsed_ms":     time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases the publishers and the storage backend, logging failures.
func (w *Watcher) close() {
	if w == nil {
		return
	}
	if w.fanout != nil {
		if err := w.fanout.Close(); err != nil {
			w.log.ErrorObj("publishers close failed", "error", err.Error())
		}
	}
	if w.store != nil {
		if err := w.store.Close(); err != nil {
			w.log.ErrorObj("storage close failed", "error", err.Error())
		}
	}
}
