package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/controller/state"
)

// StateSweeper expires idle conversations in the background so an
// abandoned dialog does not block the chat forever.
type StateSweeper struct {
	stateManager *state.Manager
	ttl          time.Duration
	logger       *zap.Logger
	stopChan     chan struct{}
}

func NewStateSweeper(stateManager *state.Manager, ttl time.Duration, logger *zap.Logger) *StateSweeper {
	return &StateSweeper{
		stateManager: stateManager,
		ttl:          ttl,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (s *StateSweeper) Start(ctx context.Context) {
	s.logger.Info("Starting state sweeper", zap.Duration("ttl", s.ttl))
	go s.run(ctx)
}

// Stop stops the sweep loop.
func (s *StateSweeper) Stop() {
	s.logger.Info("Stopping state sweeper")
	close(s.stopChan)
}

func (s *StateSweeper) run(ctx context.Context) {
	// Sweeping at a fraction of the TTL keeps the worst-case overstay
	// small without hammering the tracker.
	interval := s.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			s.logger.Info("State sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("State sweeper cancelled")
			return
		}
	}
}

func (s *StateSweeper) sweep() {
	expired := s.stateManager.ExpireBefore(time.Now().Add(-s.ttl))
	if expired > 0 {
		s.logger.Info("Expired idle conversations", zap.Int("count", expired))
	}
}
