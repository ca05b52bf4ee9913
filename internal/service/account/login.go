package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pollution-reporter/internal/auth"
	"github.com/heartmarshall/pollution-reporter/internal/domain"
	"github.com/heartmarshall/pollution-reporter/pkg/ctxutil"
)

// Login authenticates an account with email + password.
// Returns ErrUnauthorized if the email is not found or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	a, err := s.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("account.Login get account: %w", err)
	}

	if err := s.hasher.Compare(a.PasswordHash, input.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("account.Login compare password: %w", err)
	}

	result, err := s.issue(a)
	if err != nil {
		return nil, fmt.Errorf("account.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "account logged in",
		slog.String("account_id", a.ID.String()))

	return result, nil
}

// ValidateToken verifies an access token and returns the caller it
// identifies. The role comes from the stored account, not the token, so a
// role change takes effect on the next request. Any token problem is
// reported as ErrUnauthorized.
func (s *Service) ValidateToken(ctx context.Context, token string) (ctxutil.Caller, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return ctxutil.Caller{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	a, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ctxutil.Caller{}, domain.ErrUnauthorized
		}
		return ctxutil.Caller{}, fmt.Errorf("account.ValidateToken: %w", err)
	}

	if a.Role != claims.Role {
		s.log.DebugContext(ctx, "token role is stale",
			slog.String("account_id", a.ID.String()),
			slog.String("token_role", claims.Role.String()),
			slog.String("role", a.Role.String()))
	}
	return ctxutil.Caller{AccountID: a.ID, Role: a.Role.String()}, nil
}

// Me returns the account of the authenticated caller.
func (s *Service) Me(ctx context.Context) (*domain.Account, error) {
	id, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("account.Me: %w", err)
	}
	return a, nil
}
