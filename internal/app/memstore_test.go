package app

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// memStore is an in-memory ReportStore and AccountStore for router tests.
type memStore struct {
	mu       sync.Mutex
	reports  []*domain.Report
	accounts map[uuid.UUID]*domain.Account
}

var (
	_ ReportStore  = &memStore{}
	_ AccountStore = memAccounts{}
)

func newMemStore() *memStore {
	return &memStore{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (m *memStore) Create(ctx context.Context, r *domain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, r)
	return nil
}

func (m *memStore) List(ctx context.Context, f domain.ReportFilter) ([]domain.ReportSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.ReportSummary
	for _, r := range m.reports {
		if f.PollutionType != nil && r.Fields.PollutionType != *f.PollutionType {
			continue
		}
		out = append(out, r.Summary())
	}
	slices.SortFunc(out, func(a, b domain.ReportSummary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID.String(), a.ID.String())
	})
	if f.Offset >= len(out) {
		return []domain.ReportSummary{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memStore) GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reports {
		if r.ID == id && index >= 0 && index < len(r.Attachments) {
			a := r.Attachments[index]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) Stats(ctx context.Context) (*domain.ReportStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[domain.PollutionType]int)
	for _, r := range m.reports {
		counts[r.Fields.PollutionType]++
	}
	s := domain.NewReportStats(counts, time.Now())
	return &s, nil
}

func (m *memStore) Ping(ctx context.Context) error { return nil }

// Account methods live on a separate type: the report and account
// contracts both declare Create.
type memAccounts struct{ *memStore }

func (m memAccounts) Create(ctx context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.accounts {
		if x.Email == a.Email {
			return domain.ErrAlreadyExists
		}
	}
	m.accounts[a.ID] = a
	return nil
}

func (m memAccounts) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (m memAccounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memAccounts) UpdateRole(ctx context.Context, id uuid.UUID, role domain.AccountRole) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Role = role
	return a, nil
}

func (m memAccounts) ListStaff(ctx context.Context) ([]*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Account
	for _, a := range m.accounts {
		if a.Role.IsStaff() {
			out = append(out, a)
		}
	}
	return out, nil
}
