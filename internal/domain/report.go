package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportFields holds the textual part of a pollution report.
type ReportFields struct {
	VehicleCategory string
	VehicleNumber   string
	PollutionType   PollutionType
	Location        string // free text or "lat, lon"
	PhoneNumber     string // optional
	Details         string // optional
}

// Attachment is one binary file embedded in a Report. It has no identity
// of its own and is addressed by (report id, position).
type Attachment struct {
	Data        []byte
	ContentType string
}

// Report is one citizen-submitted pollution complaint. It is created once
// with its full attachment sequence and never mutated afterwards.
type Report struct {
	ID          uuid.UUID
	Fields      ReportFields
	Attachments []Attachment
	SubmittedBy *uuid.UUID
	CreatedAt   time.Time
}

// HasAttachments reports whether the attachment sequence is non-empty.
func (r *Report) HasAttachments() bool {
	return len(r.Attachments) > 0
}

// Summary projects the report without attachment bytes.
func (r *Report) Summary() ReportSummary {
	return ReportSummary{
		ID:             r.ID,
		Fields:         r.Fields,
		HasAttachments: r.HasAttachments(),
		CreatedAt:      r.CreatedAt,
	}
}

// ReportSummary is the attachment-free projection returned by listing.
type ReportSummary struct {
	ID             uuid.UUID
	Fields         ReportFields
	HasAttachments bool
	CreatedAt      time.Time
}

// ReportFilter narrows a report listing. The zero value selects every
// report; Limit 0 means no limit.
type ReportFilter struct {
	PollutionType *PollutionType
	Limit         int
	Offset        int
}

// ReportStats holds aggregate report counts for the public dashboard.
type ReportStats struct {
	Total       int
	ByType      map[PollutionType]int
	GeneratedAt time.Time
}

// NewReportStats builds ReportStats from per-type counts. Every known type
// is present in ByType, zero when absent from counts.
func NewReportStats(counts map[PollutionType]int, now time.Time) ReportStats {
	stats := ReportStats{
		ByType:      make(map[PollutionType]int, len(PollutionTypes)),
		GeneratedAt: now,
	}
	for _, p := range PollutionTypes {
		stats.ByType[p] = 0
	}
	for p, n := range counts {
		stats.ByType[p] += n
		stats.Total += n
	}
	return stats
}
