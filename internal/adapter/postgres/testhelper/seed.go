package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedAccount inserts an account with the given role and a dummy password
// hash.
func SeedAccount(t *testing.T, pool *pgxpool.Pool, role domain.AccountRole) domain.Account {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	acc := domain.Account{
		ID:           uuid.New(),
		Email:        "account-" + suffix + "@example.com",
		Name:         "Account " + suffix,
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderpla",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO accounts (id, email, name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		acc.ID, acc.Email, acc.Name, acc.PasswordHash, string(acc.Role), acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount: %v", err)
	}

	return acc
}

// NewReport builds an unsaved report with the given pollution type and
// attachment count. Attachment i carries the bytes {i, i, i}.
func NewReport(pt domain.PollutionType, attachments int) *domain.Report {
	id, _ := uuid.NewV7()
	r := &domain.Report{
		ID: id,
		Fields: domain.ReportFields{
			VehicleCategory: "Bus",
			VehicleNumber:   "GA 1 PA " + uniqueSuffix(),
			PollutionType:   pt,
			Location:        "Lakeside",
			PhoneNumber:     "",
			Details:         "Heavy black smoke",
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	for i := range attachments {
		b := byte(i)
		r.Attachments = append(r.Attachments, domain.Attachment{
			Data:        []byte{b, b, b},
			ContentType: "image/jpeg",
		})
	}
	return r
}
