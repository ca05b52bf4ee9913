package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
	"github.com/heartmarshall/pollution-reporter/internal/service/report"
)

// ImageField is the multipart field name shared by every uploaded file.
const ImageField = "image"

const maxTextFieldBytes = 8 << 10

type reportService interface {
	Submit(ctx context.Context, input report.SubmitInput) (*domain.Report, error)
	List(ctx context.Context, input report.ListInput) ([]domain.ReportSummary, error)
	GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error)
	Stats(ctx context.Context) (*domain.ReportStats, error)
}

// UploadLimits bounds a single multipart submission before it reaches the
// service.
type UploadLimits struct {
	MaxRequestBytes int64
	MaxFileBytes    int64
	MaxFiles        int
}

// ReportHandler serves report submission, listing and attachment endpoints.
type ReportHandler struct {
	svc    reportService
	limits UploadLimits
	log    *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc reportService, limits UploadLimits, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, limits: limits, log: logger.With("handler", "report")}
}

type submitResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type reportSummaryResponse struct {
	ID              string    `json:"id"`
	VehicleCategory string    `json:"vehicleCategory"`
	VehicleNumber   string    `json:"vehicleNumber"`
	PollutionType   string    `json:"pollutionType"`
	Location        string    `json:"location"`
	PhoneNumber     string    `json:"phoneNumber"`
	Details         string    `json:"details"`
	HasAttachments  bool      `json:"hasAttachments"`
	CreatedAt       time.Time `json:"createdAt"`
}

type statsResponse struct {
	Total       int            `json:"total"`
	ByType      map[string]int `json:"byType"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// Submit handles POST /api/reports (multipart/form-data).
func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxRequestBytes)

	input, err := h.readSubmission(r)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	rep, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{ID: rep.ID.String(), CreatedAt: rep.CreatedAt})
}

// readSubmission buffers every part of the multipart body in memory, keeping
// files in submission order. Files are read up to one byte past the per-file
// limit so that the service can reject them without unbounded reads.
func (h *ReportHandler) readSubmission(r *http.Request) (report.SubmitInput, error) {
	var input report.SubmitInput

	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "multipart/form-data" {
		return input, domain.NewValidationError("body", "expected multipart/form-data")
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return input, domain.NewValidationError("body", "malformed multipart body")
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return input, multipartError(err)
		}

		name := part.FormName()
		if part.FileName() != "" || name == ImageField {
			if name != ImageField {
				part.Close()
				return input, domain.NewValidationError(name, "unexpected file field")
			}
			data, err := io.ReadAll(io.LimitReader(part, h.limits.MaxFileBytes+1))
			part.Close()
			if err != nil {
				return input, multipartError(err)
			}
			// Browsers send an unselected file input as an empty part with
			// no filename.
			if part.FileName() == "" && len(data) == 0 {
				continue
			}
			if len(input.Attachments) >= h.limits.MaxFiles {
				return input, domain.NewValidationError(ImageField, "too many files")
			}
			input.Attachments = append(input.Attachments, report.AttachmentInput{
				Filename:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			})
			continue
		}

		value, err := io.ReadAll(io.LimitReader(part, maxTextFieldBytes+1))
		part.Close()
		if err != nil {
			return input, multipartError(err)
		}
		if len(value) > maxTextFieldBytes {
			return input, domain.NewValidationError(name, "too long")
		}
		setSubmitField(&input, name, string(value))
	}

	return input, nil
}

func setSubmitField(input *report.SubmitInput, name, value string) {
	switch name {
	case "vehicleCategory":
		input.VehicleCategory = value
	case "vehicleNumber":
		input.VehicleNumber = value
	case "pollutionType":
		input.PollutionType = value
	case "location":
		input.Location = value
	case "phoneNumber":
		input.PhoneNumber = value
	case "details":
		input.Details = value
	}
}

func multipartError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return err
	}
	return fmt.Errorf("%w: malformed multipart body: %v", domain.ErrValidation, err)
}

// List handles GET /api/reports?pollutionType=&limit=&offset=.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := report.ListInput{PollutionType: q.Get("pollutionType")}

	var errs []domain.FieldError
	var err error
	if input.Limit, err = queryInt(q.Get("limit"), 0); err != nil {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
	}
	if input.Offset, err = queryInt(q.Get("offset"), 0); err != nil {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
	}
	if len(errs) > 0 {
		writeServiceError(w, r, h.log, domain.NewValidationErrors(errs))
		return
	}

	list, err := h.svc.List(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := make([]reportSummaryResponse, len(list))
	for i, s := range list {
		resp[i] = reportSummaryResponse{
			ID:              s.ID.String(),
			VehicleCategory: s.Fields.VehicleCategory,
			VehicleNumber:   s.Fields.VehicleNumber,
			PollutionType:   s.Fields.PollutionType.String(),
			Location:        s.Fields.Location,
			PhoneNumber:     s.Fields.PhoneNumber,
			Details:         s.Fields.Details,
			HasAttachments:  s.HasAttachments,
			CreatedAt:       s.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Image handles GET /api/reports/{id}/image?index=N. The stored bytes are
// written verbatim with the stored content type.
func (h *ReportHandler) Image(w http.ResponseWriter, r *http.Request) {
	index, err := queryInt(r.URL.Query().Get("index"), 0)
	if err != nil {
		writeServiceError(w, r, h.log, domain.NewValidationError("index", "must be an integer"))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "attachment not found")
		return
	}

	a, err := h.svc.GetAttachment(r.Context(), id, index)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "attachment not found")
		return
	}
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	// Reports are immutable, so an attachment never changes once served.
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Data); err != nil {
		h.log.DebugContext(r.Context(), "write attachment", slog.String("error", err.Error()))
	}
}

// Stats handles GET /api/stats.
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := statsResponse{
		Total:       stats.Total,
		ByType:      make(map[string]int, len(stats.ByType)),
		GeneratedAt: stats.GeneratedAt,
	}
	for t, n := range stats.ByType {
		resp.ByType[t.String()] = n
	}
	writeJSON(w, http.StatusOK, resp)
}

func queryInt(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
