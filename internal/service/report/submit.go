package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
	"github.com/heartmarshall/pollution-reporter/pkg/ctxutil"
)

// Submit validates and stores a new report together with its attachments.
// The caller's account, when authenticated, is recorded as the submitter.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Report, error) {
	input = input.normalized()
	if err := input.Validate(s.limits); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("report.Submit generate id: %w", err)
	}

	pt, _ := domain.ParsePollutionType(input.PollutionType)
	rep := &domain.Report{
		ID: id,
		Fields: domain.ReportFields{
			VehicleCategory: input.VehicleCategory,
			VehicleNumber:   input.VehicleNumber,
			PollutionType:   pt,
			Location:        input.Location,
			PhoneNumber:     input.PhoneNumber,
			Details:         input.Details,
		},
		Attachments: make([]domain.Attachment, len(input.Attachments)),
		// Millisecond precision round-trips through every backend.
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	for i, a := range input.Attachments {
		rep.Attachments[i] = domain.Attachment{Data: a.Data, ContentType: resolveContentType(a)}
	}
	if accountID, ok := ctxutil.AccountIDFromCtx(ctx); ok {
		rep.SubmittedBy = &accountID
	}

	if err := s.store.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("report.Submit: %w", err)
	}

	s.invalidateStats(ctx)

	s.log.InfoContext(ctx, "report submitted",
		slog.String("report_id", rep.ID.String()),
		slog.String("pollution_type", string(pt)),
		slog.Int("attachments", len(rep.Attachments)),
	)

	return rep, nil
}
