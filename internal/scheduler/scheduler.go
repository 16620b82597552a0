package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type provisionalPurger interface {
	PurgeProvisionalBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler periodically deletes abandoned provisional bookings once they
// outlive the TTL. Provisional rows never block availability, so this is
// hygiene, not correctness; paid bookings are never touched.
type Scheduler struct {
	bookings provisionalPurger
	interval time.Duration
	ttl      time.Duration
	log      *zap.Logger
}

func New(bookings provisionalPurger, interval, ttl time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		bookings: bookings,
		interval: interval,
		ttl:      ttl,
		log:      log.With(zap.String("component", "scheduler")),
	}
}

// Start blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Booking purge scheduler started",
		zap.Duration("interval", s.interval),
		zap.Duration("ttl", s.ttl),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Booking purge scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	cutoff := time.Now().Add(-s.ttl)

	purged, err := s.bookings.PurgeProvisionalBefore(ctx, cutoff)
	if err != nil {
		s.log.Error("Failed to purge provisional bookings", zap.Error(err))
		return
	}

	if purged > 0 {
		s.log.Info("Purged abandoned provisional bookings",
			zap.Int64("count", purged),
			zap.Time("cutoff", cutoff),
		)
	}
}
