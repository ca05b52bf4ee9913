package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// Stats returns report counts per pollution type. The cache is consulted
// first; cache failures are logged and the store answers instead.
func (s *Service) Stats(ctx context.Context) (*domain.ReportStats, error) {
	var (
		gen      int64
		fillable bool
	)
	if s.cache != nil {
		cached, g, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "stats cache read failed", slog.String("error", err.Error()))
		case cached != nil:
			return cached, nil
		default:
			gen, fillable = g, true
		}
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("report.Stats: %w", err)
	}

	// Without a generation from a clean read there is nothing to guard the
	// write with.
	if fillable {
		if err := s.cache.Set(ctx, gen, stats); err != nil {
			s.log.WarnContext(ctx, "stats cache write failed", slog.String("error", err.Error()))
		}
	}
	return stats, nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "stats cache invalidate failed", slog.String("error", err.Error()))
	}
}
