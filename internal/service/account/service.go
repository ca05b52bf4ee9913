// Package account implements sign-up, sign-in and staff management for the
// single role-based account model shared by citizens and traffic staff.
package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/auth"
	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

type accountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.AccountRole) (*domain.Account, error)
	ListStaff(ctx context.Context) ([]*domain.Account, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type tokenManager interface {
	Issue(accountID uuid.UUID, role domain.AccountRole) (string, time.Time, error)
	Validate(token string) (*auth.Claims, error)
}

// Service provides account operations.
type Service struct {
	accounts accountRepo
	hasher   passwordHasher
	tokens   tokenManager
	log      *slog.Logger
}

// NewService creates a new account service.
func NewService(
	log *slog.Logger,
	accounts accountRepo,
	hasher passwordHasher,
	tokens tokenManager,
) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		log:      log.With("service", "account"),
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Account     *domain.Account
}

func (s *Service) issue(a *domain.Account) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(a.ID, a.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, ExpiresAt: exp, Account: a}, nil
}
