// Package report implements the report store on PostgreSQL. A report row
// and its attachment rows are written in one transaction; listing reads
// only the reports table.
package report

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pollution-reporter/internal/adapter/postgres"
	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides report persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
}

// New creates a new report repository.
func New(db postgres.DB, tx *postgres.TxManager) *Repo {
	return &Repo{db: db, tx: tx}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertReportSQL = `
INSERT INTO reports (id, vehicle_category, vehicle_number, pollution_type, location,
                     phone_number, details, attachment_count, submitted_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const insertAttachmentSQL = `
INSERT INTO report_attachments (report_id, position, content_type, data)
VALUES ($1, $2, $3, $4)`

// Create persists the report with its full attachment sequence. Either the
// report and every attachment are committed, or nothing is.
func (r *Repo) Create(ctx context.Context, rep *domain.Report) error {
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		f := rep.Fields
		_, err := q.Exec(ctx, insertReportSQL,
			rep.ID, f.VehicleCategory, f.VehicleNumber, string(f.PollutionType), f.Location,
			f.PhoneNumber, f.Details, len(rep.Attachments), rep.SubmittedBy, rep.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert report: %w", err)
		}

		for i, a := range rep.Attachments {
			if _, err := q.Exec(ctx, insertAttachmentSQL, rep.ID, i, a.ContentType, a.Data); err != nil {
				return fmt.Errorf("insert attachment %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return postgres.MapError(err, "report", rep.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

type summaryRow struct {
	ID              uuid.UUID `db:"id"`
	VehicleCategory string    `db:"vehicle_category"`
	VehicleNumber   string    `db:"vehicle_number"`
	PollutionType   string    `db:"pollution_type"`
	Location        string    `db:"location"`
	PhoneNumber     string    `db:"phone_number"`
	Details         string    `db:"details"`
	HasAttachments  bool      `db:"has_attachments"`
	CreatedAt       time.Time `db:"created_at"`
}

func (row summaryRow) toDomain() domain.ReportSummary {
	return domain.ReportSummary{
		ID: row.ID,
		Fields: domain.ReportFields{
			VehicleCategory: row.VehicleCategory,
			VehicleNumber:   row.VehicleNumber,
			PollutionType:   domain.PollutionType(row.PollutionType),
			Location:        row.Location,
			PhoneNumber:     row.PhoneNumber,
			Details:         row.Details,
		},
		HasAttachments: row.HasAttachments,
		CreatedAt:      row.CreatedAt,
	}
}

// listQuery builds the listing statement. Attachment bytes live in another
// table and are never selected here.
func listQuery(f domain.ReportFilter) sq.SelectBuilder {
	qb := psql.
		Select(
			"id", "vehicle_category", "vehicle_number", "pollution_type", "location",
			"phone_number", "details", "attachment_count > 0 AS has_attachments", "created_at",
		).
		From("reports").
		OrderBy("created_at DESC", "id DESC")

	if f.PollutionType != nil {
		qb = qb.Where(sq.Eq{"pollution_type": string(*f.PollutionType)})
	}
	if f.Limit > 0 {
		qb = qb.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		qb = qb.Offset(uint64(f.Offset))
	}
	return qb
}

// List returns report summaries, most recent first. Returns an empty slice
// when nothing matches.
func (r *Repo) List(ctx context.Context, f domain.ReportFilter) ([]domain.ReportSummary, error) {
	query, args, err := listQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []summaryRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "reports", "list")
	}

	out := make([]domain.ReportSummary, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

const getAttachmentSQL = `
SELECT data, content_type FROM report_attachments
WHERE report_id = $1 AND position = $2`

// GetAttachment returns the attachment at index within the report. A
// missing report, an empty attachment sequence and an out-of-range index
// all yield domain.ErrNotFound.
func (r *Repo) GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error) {
	if index < 0 {
		return nil, fmt.Errorf("report %s attachment %d: %w", id, index, domain.ErrNotFound)
	}

	var a domain.Attachment
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, getAttachmentSQL, id, index).
		Scan(&a.Data, &a.ContentType)
	if err != nil {
		return nil, postgres.MapError(err, "report attachment", fmt.Sprintf("%s/%d", id, index))
	}
	return &a, nil
}

type typeCountRow struct {
	PollutionType string `db:"pollution_type"`
	Count         int    `db:"count"`
}

// Stats counts reports per pollution type.
func (r *Repo) Stats(ctx context.Context) (*domain.ReportStats, error) {
	query, args, err := psql.
		Select("pollution_type", "count(*) AS count").
		From("reports").
		GroupBy("pollution_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}

	var rows []typeCountRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "reports", "stats")
	}

	counts := make(map[domain.PollutionType]int, len(rows))
	for _, row := range rows {
		counts[domain.PollutionType(row.PollutionType)] = row.Count
	}
	stats := domain.NewReportStats(counts, time.Now().UTC())
	return &stats, nil
}

// Ping checks database connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
