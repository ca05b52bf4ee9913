package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	mongoadapter "github.com/heartmarshall/pollution-reporter/internal/adapter/mongo"
	mongoaccount "github.com/heartmarshall/pollution-reporter/internal/adapter/mongo/account"
	mongoreport "github.com/heartmarshall/pollution-reporter/internal/adapter/mongo/report"
	"github.com/heartmarshall/pollution-reporter/internal/adapter/postgres"
	pgaccount "github.com/heartmarshall/pollution-reporter/internal/adapter/postgres/account"
	pgreport "github.com/heartmarshall/pollution-reporter/internal/adapter/postgres/report"
	"github.com/heartmarshall/pollution-reporter/internal/config"
	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// ReportStore is the report persistence contract shared by both backends.
type ReportStore interface {
	Create(ctx context.Context, r *domain.Report) error
	List(ctx context.Context, f domain.ReportFilter) ([]domain.ReportSummary, error)
	GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error)
	Stats(ctx context.Context) (*domain.ReportStats, error)
	Ping(ctx context.Context) error
}

// AccountStore is the account persistence contract shared by both backends.
type AccountStore interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.AccountRole) (*domain.Account, error)
	ListStaff(ctx context.Context) ([]*domain.Account, error)
}

// Storage holds the explicitly constructed persistence handles. Close
// releases the underlying connections.
type Storage struct {
	Driver   string
	Reports  ReportStore
	Accounts AccountStore

	close func()
}

// Close releases the storage connections.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStorage connects to the configured backend. With the postgres driver
// and migrate set, pending migrations are applied first.
func OpenStorage(ctx context.Context, cfg *config.Config, migrate bool, log *slog.Logger) (*Storage, error) {
	var st *Storage

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		st = &Storage{
			Reports:  pgreport.New(pool, postgres.NewTxManager(pool)),
			Accounts: pgaccount.New(pool),
			close:    pool.Close,
		}

	case config.DriverMongo:
		client, db, err := mongoadapter.Connect(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, err
		}
		st = &Storage{
			Reports:  mongoreport.New(db),
			Accounts: mongoaccount.New(db),
			close: func() {
				dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(dctx); err != nil {
					log.Warn("mongo disconnect", slog.String("error", err.Error()))
				}
			},
		}

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	st.Driver = cfg.Storage.Driver
	if d := cfg.Storage.OpTimeout; d > 0 {
		st.Reports = &timeoutReports{next: st.Reports, d: d}
		st.Accounts = &timeoutAccounts{next: st.Accounts, d: d}
	}

	log.InfoContext(ctx, "storage ready", slog.String("driver", st.Driver))
	return st, nil
}

// ---------------------------------------------------------------------------
// Per-operation deadlines
// ---------------------------------------------------------------------------

type timeoutReports struct {
	next ReportStore
	d    time.Duration
}

func (t *timeoutReports) Create(ctx context.Context, r *domain.Report) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Create(ctx, r)
}

func (t *timeoutReports) List(ctx context.Context, f domain.ReportFilter) ([]domain.ReportSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.List(ctx, f)
}

func (t *timeoutReports) GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.GetAttachment(ctx, id, index)
}

func (t *timeoutReports) Stats(ctx context.Context) (*domain.ReportStats, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Stats(ctx)
}

func (t *timeoutReports) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Ping(ctx)
}

type timeoutAccounts struct {
	next AccountStore
	d    time.Duration
}

func (t *timeoutAccounts) Create(ctx context.Context, a *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Create(ctx, a)
}

func (t *timeoutAccounts) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.GetByID(ctx, id)
}

func (t *timeoutAccounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.GetByEmail(ctx, email)
}

func (t *timeoutAccounts) UpdateRole(ctx context.Context, id uuid.UUID, role domain.AccountRole) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.UpdateRole(ctx, id, role)
}

func (t *timeoutAccounts) ListStaff(ctx context.Context) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.ListStaff(ctx)
}
