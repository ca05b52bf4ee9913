package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// List returns report summaries, most recent first. A zero limit returns
// every report.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.ReportSummary, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	f := domain.ReportFilter{Limit: input.Limit, Offset: input.Offset}
	if input.PollutionType != "" {
		pt, _ := domain.ParsePollutionType(input.PollutionType)
		f.PollutionType = &pt
	}

	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("report.List: %w", err)
	}
	return list, nil
}

// GetAttachment returns the attachment at the zero-based index of a
// report. Bytes and content type are returned as stored.
func (s *Service) GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error) {
	if index < 0 {
		return nil, fmt.Errorf("report %s attachment %d: %w", id, index, domain.ErrNotFound)
	}

	a, err := s.store.GetAttachment(ctx, id, index)
	if err != nil {
		return nil, fmt.Errorf("report.GetAttachment: %w", err)
	}
	return a, nil
}
