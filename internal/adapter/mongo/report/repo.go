// Package report implements the report store on MongoDB. Each report is a
// single document with its attachments embedded, so one insert is atomic.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	mongoadapter "github.com/heartmarshall/pollution-reporter/internal/adapter/mongo"
	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// MaxAttachmentBytes bounds the combined attachment size of one report,
// leaving headroom below MongoDB's 16 MiB document limit.
const MaxAttachmentBytes = 15 << 20

// Repo provides report persistence backed by MongoDB.
type Repo struct {
	col *mongo.Collection
}

// New creates a new report repository over db.
func New(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(mongoadapter.ReportsCollection)}
}

type attachmentDoc struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"content_type"`
}

type reportDoc struct {
	ID              string          `bson:"_id"`
	VehicleCategory string          `bson:"vehicle_category"`
	VehicleNumber   string          `bson:"vehicle_number"`
	PollutionType   string          `bson:"pollution_type"`
	Location        string          `bson:"location"`
	PhoneNumber     string          `bson:"phone_number"`
	Details         string          `bson:"details"`
	Attachments     []attachmentDoc `bson:"attachments"`
	AttachmentCount int             `bson:"attachment_count"`
	SubmittedBy     *string         `bson:"submitted_by,omitempty"`
	CreatedAt       time.Time       `bson:"created_at"`
}

func toDoc(r *domain.Report) reportDoc {
	doc := reportDoc{
		ID:              r.ID.String(),
		VehicleCategory: r.Fields.VehicleCategory,
		VehicleNumber:   r.Fields.VehicleNumber,
		PollutionType:   string(r.Fields.PollutionType),
		Location:        r.Fields.Location,
		PhoneNumber:     r.Fields.PhoneNumber,
		Details:         r.Fields.Details,
		Attachments:     make([]attachmentDoc, len(r.Attachments)),
		AttachmentCount: len(r.Attachments),
		CreatedAt:       r.CreatedAt,
	}
	for i, a := range r.Attachments {
		doc.Attachments[i] = attachmentDoc{Data: a.Data, ContentType: a.ContentType}
	}
	if r.SubmittedBy != nil {
		s := r.SubmittedBy.String()
		doc.SubmittedBy = &s
	}
	return doc
}

func (d reportDoc) toSummary() (domain.ReportSummary, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.ReportSummary{}, fmt.Errorf("report %q: bad id: %w", d.ID, err)
	}
	return domain.ReportSummary{
		ID: id,
		Fields: domain.ReportFields{
			VehicleCategory: d.VehicleCategory,
			VehicleNumber:   d.VehicleNumber,
			PollutionType:   domain.PollutionType(d.PollutionType),
			Location:        d.Location,
			PhoneNumber:     d.PhoneNumber,
			Details:         d.Details,
		},
		HasAttachments: d.AttachmentCount > 0,
		CreatedAt:      d.CreatedAt.UTC(),
	}, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts the report as one document. Reports whose attachments
// together exceed MaxAttachmentBytes are rejected with domain.ErrValidation.
func (r *Repo) Create(ctx context.Context, rep *domain.Report) error {
	total := 0
	for _, a := range rep.Attachments {
		total += len(a.Data)
	}
	if total > MaxAttachmentBytes {
		return fmt.Errorf("report %s: attachments total %d bytes, limit %d: %w",
			rep.ID, total, MaxAttachmentBytes, domain.ErrValidation)
	}

	if _, err := r.col.InsertOne(ctx, toDoc(rep)); err != nil {
		return mongoadapter.MapError(err, "report", rep.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

func listOptions(f domain.ReportFilter) *options.FindOptions {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(bson.D{{Key: "attachments", Value: 0}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}
	return opts
}

// List returns report summaries, most recent first. The attachments array
// is excluded by projection.
func (r *Repo) List(ctx context.Context, f domain.ReportFilter) ([]domain.ReportSummary, error) {
	filter := bson.D{}
	if f.PollutionType != nil {
		filter = append(filter, bson.E{Key: "pollution_type", Value: string(*f.PollutionType)})
	}

	cur, err := r.col.Find(ctx, filter, listOptions(f))
	if err != nil {
		return nil, mongoadapter.MapError(err, "reports", "list")
	}

	var docs []reportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mongoadapter.MapError(err, "reports", "list")
	}

	out := make([]domain.ReportSummary, 0, len(docs))
	for _, d := range docs {
		s, err := d.toSummary()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// GetAttachment returns the attachment at index, fetching only that array
// element with a $slice projection.
func (r *Repo) GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error) {
	if index < 0 {
		return nil, fmt.Errorf("report %s attachment %d: %w", id, index, domain.ErrNotFound)
	}

	opts := options.FindOne().SetProjection(bson.D{
		{Key: "attachments", Value: bson.D{{Key: "$slice", Value: bson.A{index, 1}}}},
		{Key: "attachment_count", Value: 1},
	})

	var doc struct {
		Attachments     []attachmentDoc `bson:"attachments"`
		AttachmentCount int             `bson:"attachment_count"`
	}
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}, opts).Decode(&doc)
	if err != nil {
		return nil, mongoadapter.MapError(err, "report", id)
	}

	if index >= doc.AttachmentCount || len(doc.Attachments) == 0 {
		return nil, fmt.Errorf("report %s attachment %d: %w", id, index, domain.ErrNotFound)
	}

	a := doc.Attachments[0]
	return &domain.Attachment{Data: a.Data, ContentType: a.ContentType}, nil
}

// Stats counts reports per pollution type with a $group aggregation.
func (r *Repo) Stats(ctx context.Context) (*domain.ReportStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$pollution_type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mongoadapter.MapError(err, "reports", "stats")
	}

	var rows []struct {
		PollutionType string `bson:"_id"`
		Count         int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, mongoadapter.MapError(err, "reports", "stats")
	}

	counts := make(map[domain.PollutionType]int, len(rows))
	for _, row := range rows {
		counts[domain.PollutionType(row.PollutionType)] = row.Count
	}
	stats := domain.NewReportStats(counts, time.Now().UTC())
	return &stats, nil
}

// Ping checks connectivity to the primary.
func (r *Repo) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, readpref.Primary())
}
