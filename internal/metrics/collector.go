package metrics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Counter reports the current number of rows of one entity
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Counters are the entity counts published as gauges
type Counters struct {
	Users  Counter
	Boards Counter
	Cards  Counter
}

// BusinessMetricsCollector refreshes the entity gauges periodically
type BusinessMetricsCollector struct {
	counters Counters
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(counters Counters, metrics *Metrics, logger *zap.Logger, interval time.Duration) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		counters: counters,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start collects once immediately and then on every tick until Stop
func (c *BusinessMetricsCollector) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.Collect()
		for {
			select {
			case <-ticker.C:
				c.Collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// Collect gathers business metrics once
func (c *BusinessMetricsCollector) Collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gauges := []struct {
		name    string
		counter Counter
		set     func(int64)
	}{
		{"users", c.counters.Users, c.metrics.SetUsersTotal},
		{"boards", c.counters.Boards, c.metrics.SetBoardsTotal},
		{"cards", c.counters.Cards, c.metrics.SetCardsTotal},
	}

	for _, g := range gauges {
		if g.counter == nil {
			continue
		}
		count, err := g.counter.Count(ctx)
		if err != nil {
			c.logger.Error("Failed to count entities", zap.String("entity", g.name), zap.Error(err))
			continue
		}
		g.set(count)
	}
}
