// Package report implements report submission, listing, attachment access
// and dashboard statistics on top of a report store.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// MaxListLimit caps an explicit page size. A zero limit lists everything.
const MaxListLimit = 500

type reportStore interface {
	Create(ctx context.Context, r *domain.Report) error
	List(ctx context.Context, f domain.ReportFilter) ([]domain.ReportSummary, error)
	GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error)
	Stats(ctx context.Context) (*domain.ReportStats, error)
}

// StatsCache is an optional read-through cache for dashboard statistics.
// Get reports a miss as nil stats together with the cache generation; Set
// must drop the value when Invalidate ran after that generation was read.
type StatsCache interface {
	Get(ctx context.Context) (*domain.ReportStats, int64, error)
	Set(ctx context.Context, gen int64, stats *domain.ReportStats) error
	Invalidate(ctx context.Context) error
}

// Limits bounds the attachments of a single submission.
type Limits struct {
	MaxFiles     int
	MaxFileBytes int64
}

// Service provides report operations.
type Service struct {
	store  reportStore
	cache  StatsCache
	limits Limits
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new report service. cache may be nil.
func NewService(
	log *slog.Logger,
	store reportStore,
	cache StatsCache,
	limits Limits,
) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		limits: limits,
		log:    log.With("service", "report"),
		now:    time.Now,
	}
}
