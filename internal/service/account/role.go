package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// SetRole changes the role of the account with the given email.
func (s *Service) SetRole(ctx context.Context, email string, role domain.AccountRole) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if errs := validateEmail(nil, email); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "unknown role")
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("account.SetRole get account: %w", err)
	}

	if a.Role == role {
		return a, nil
	}

	updated, err := s.accounts.UpdateRole(ctx, a.ID, role)
	if err != nil {
		return nil, fmt.Errorf("account.SetRole: %w", err)
	}

	s.log.InfoContext(ctx, "account role changed",
		slog.String("account_id", a.ID.String()),
		slog.String("from", a.Role.String()),
		slog.String("to", role.String()))

	return updated, nil
}

// ListStaff returns every traffic and admin account.
func (s *Service) ListStaff(ctx context.Context) ([]*domain.Account, error) {
	list, err := s.accounts.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("account.ListStaff: %w", err)
	}
	return list, nil
}
