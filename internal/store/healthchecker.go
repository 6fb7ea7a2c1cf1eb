package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// StoreHealthChecker probes the record store and caches its health flag.
type StoreHealthChecker struct {
	st           Store
	log          zerolog.Logger
	probeTimeout time.Duration
	healthy      atomic.Int32
}

func NewStoreHealthChecker(st Store, log zerolog.Logger, probeTimeout time.Duration) *StoreHealthChecker {
	return &StoreHealthChecker{st: st, log: log, probeTimeout: probeTimeout}
}

func (c *StoreHealthChecker) Name() string { return "store" }

func (c *StoreHealthChecker) IsHealthy() bool { return c.healthy.Load() == 1 }

// Start probes the store every interval until ctx is cancelled.
func (c *StoreHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	probe := func() {
		pctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()
		if err := c.st.Ping(pctx); err != nil {
			if c.healthy.Swap(0) == 1 {
				c.log.Error().Stack().Err(err).Msg("store health probe failed")
			}
			return
		}
		if c.healthy.Swap(1) == 0 {
			c.log.Info().Msg("store healthy")
		}
	}

	probe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
