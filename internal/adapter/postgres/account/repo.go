// Package account implements the account repository using PostgreSQL.
package account

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pollution-reporter/internal/adapter/postgres"
	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var accountColumns = []string{"id", "email", "name", "password_hash", "role", "created_at", "updated_at"}

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new account repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

type accountRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row accountRow) toDomain() *domain.Account {
	return &domain.Account{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		Role:         domain.AccountRole(row.Role),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an account by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id)
}

// GetByEmail returns an account by email. The comparison is
// case-insensitive.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, sq.Expr("lower(email) = lower(?)", email), email)
}

func (r *Repo) getOne(ctx context.Context, where sq.Sqlizer, key any) (*domain.Account, error) {
	query, args, err := psql.Select(accountColumns...).From("accounts").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build account query: %w", err)
	}

	var row accountRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "account", key)
	}
	return row.toDomain(), nil
}

// ListStaff returns traffic and admin accounts ordered by email.
func (r *Repo) ListStaff(ctx context.Context) ([]*domain.Account, error) {
	query, args, err := psql.Select(accountColumns...).
		From("accounts").
		Where(sq.Eq{"role": []string{string(domain.AccountRoleTraffic), string(domain.AccountRoleAdmin)}}).
		OrderBy("email").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build staff query: %w", err)
	}

	var rows []accountRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "accounts", "staff")
	}

	out := make([]*domain.Account, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new account. Returns domain.ErrAlreadyExists when the
// email is taken.
func (r *Repo) Create(ctx context.Context, a *domain.Account) error {
	query, args, err := psql.Insert("accounts").
		Columns(accountColumns...).
		Values(a.ID, a.Email, a.Name, a.PasswordHash, string(a.Role), a.CreatedAt, a.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build account insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "account", a.Email)
	}
	return nil
}

// UpdateRole changes the role of an account and returns the updated row.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.AccountRole) (*domain.Account, error) {
	query, args, err := psql.Update("accounts").
		Set("role", string(role)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, email, name, password_hash, role, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build role update: %w", err)
	}

	var row accountRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "account", id)
	}
	return row.toDomain(), nil
}
