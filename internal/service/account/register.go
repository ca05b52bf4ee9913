package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// Register creates a citizen account and signs it in.
// Returns ErrAlreadyExists if the email is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	a, err := s.create(ctx, input, domain.AccountRoleCitizen)
	if err != nil {
		return nil, fmt.Errorf("account.Register: %w", err)
	}

	result, err := s.issue(a)
	if err != nil {
		return nil, fmt.Errorf("account.Register issue token: %w", err)
	}

	s.log.InfoContext(ctx, "account registered",
		slog.String("account_id", a.ID.String()))

	return result, nil
}

// CreateAccount creates an account with an arbitrary role. It is not
// exposed over HTTP; operators use it to provision traffic staff.
func (s *Service) CreateAccount(ctx context.Context, input RegisterInput, role domain.AccountRole) (*domain.Account, error) {
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "unknown role")
	}

	a, err := s.create(ctx, input, role)
	if err != nil {
		return nil, fmt.Errorf("account.CreateAccount: %w", err)
	}

	s.log.InfoContext(ctx, "account created",
		slog.String("account_id", a.ID.String()),
		slog.String("role", role.String()))

	return a, nil
}

func (s *Service) create(ctx context.Context, input RegisterInput, role domain.AccountRole) (*domain.Account, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	a := &domain.Account{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Email uniqueness is enforced by the store.
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
