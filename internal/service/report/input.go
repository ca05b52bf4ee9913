package report

import (
	"mime"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

const (
	maxVehicleCategoryLen = 64
	maxVehicleNumberLen   = 32
	maxLocationLen        = 256
	maxDetailsLen         = 2000
)

var phonePattern = regexp.MustCompile(`^[0-9 +()\-]{6,20}$`)

// AttachmentInput is one uploaded file, fully buffered.
type AttachmentInput struct {
	Filename    string
	ContentType string // declared by the client; may be empty
	Data        []byte
}

// SubmitInput holds the parameters of a new report. Attachments are kept in
// submission order.
type SubmitInput struct {
	VehicleCategory string
	VehicleNumber   string
	PollutionType   string
	Location        string
	PhoneNumber     string
	Details         string
	Attachments     []AttachmentInput
}

// normalized trims the text fields and collapses inner whitespace where it
// carries no meaning.
func (i SubmitInput) normalized() SubmitInput {
	i.VehicleCategory = domain.CollapseSpaces(i.VehicleCategory)
	i.VehicleNumber = domain.CollapseSpaces(i.VehicleNumber)
	i.PollutionType = strings.TrimSpace(i.PollutionType)
	i.Location = domain.CollapseSpaces(i.Location)
	i.PhoneNumber = strings.TrimSpace(i.PhoneNumber)
	i.Details = strings.TrimSpace(i.Details)
	return i
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate(limits Limits) error {
	var errs []domain.FieldError

	errs = requiredMax(errs, "vehicleCategory", i.VehicleCategory, maxVehicleCategoryLen)
	errs = requiredMax(errs, "vehicleNumber", i.VehicleNumber, maxVehicleNumberLen)
	errs = requiredMax(errs, "location", i.Location, maxLocationLen)

	if i.PollutionType == "" {
		errs = append(errs, domain.FieldError{Field: "pollutionType", Message: "required"})
	} else if _, ok := domain.ParsePollutionType(i.PollutionType); !ok {
		errs = append(errs, domain.FieldError{Field: "pollutionType", Message: "must be one of Smoke, Noise, Leak, Other"})
	}

	if i.PhoneNumber != "" && !phonePattern.MatchString(i.PhoneNumber) {
		errs = append(errs, domain.FieldError{Field: "phoneNumber", Message: "6 to 20 digits, spaces or + - ( )"})
	}

	if utf8.RuneCountInString(i.Details) > maxDetailsLen {
		errs = append(errs, domain.FieldError{Field: "details", Message: "max 2000 characters"})
	}

	if len(i.Attachments) > limits.MaxFiles {
		errs = append(errs, domain.FieldError{Field: "image", Message: "too many files"})
	}
	for _, a := range i.Attachments {
		switch {
		case len(a.Data) == 0:
			errs = append(errs, domain.FieldError{Field: "image", Message: fileLabel(a) + " is empty"})
		case int64(len(a.Data)) > limits.MaxFileBytes:
			errs = append(errs, domain.FieldError{Field: "image", Message: fileLabel(a) + " is too large"})
		case !isMediaType(resolveContentType(a)):
			errs = append(errs, domain.FieldError{Field: "image", Message: fileLabel(a) + " must be an image or video"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func requiredMax(errs []domain.FieldError, field, value string, maxLen int) []domain.FieldError {
	if value == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if utf8.RuneCountInString(value) > maxLen {
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}

func fileLabel(a AttachmentInput) string {
	if a.Filename != "" {
		return "file " + a.Filename
	}
	return "file"
}

// resolveContentType returns the declared media type without parameters,
// or a sniffed one when the declaration is missing or generic.
func resolveContentType(a AttachmentInput) string {
	declared := strings.TrimSpace(a.ContentType)
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(a.Data))
	return mt
}

func isMediaType(ct string) bool {
	return strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/")
}

// ListInput holds the parameters for listing reports.
type ListInput struct {
	PollutionType string
	Limit         int
	Offset        int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 500"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if i.PollutionType != "" {
		if _, ok := domain.ParsePollutionType(i.PollutionType); !ok {
			errs = append(errs, domain.FieldError{Field: "pollutionType", Message: "unknown pollution type"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
