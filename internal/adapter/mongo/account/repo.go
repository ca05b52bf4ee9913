// Package account implements the account repository using MongoDB.
package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoadapter "github.com/heartmarshall/pollution-reporter/internal/adapter/mongo"
	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// Repo provides account persistence backed by MongoDB. Emails are stored
// lowercased so the unique index is case-insensitive.
type Repo struct {
	col *mongo.Collection
}

// New creates a new account repository over db.
func New(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(mongoadapter.AccountsCollection)}
}

type accountDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d accountDoc) toDomain() (*domain.Account, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("account %q: bad id: %w: %w", d.ID, domain.ErrStorage, err)
	}
	return &domain.Account{
		ID:           id,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         domain.AccountRole(d.Role),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}, nil
}

// GetByID returns an account by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}}, id)
}

// GetByEmail returns an account by email, ignoring case.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: strings.ToLower(email)}}, email)
}

func (r *Repo) findOne(ctx context.Context, filter bson.D, key any) (*domain.Account, error) {
	var doc accountDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mongoadapter.MapError(err, "account", key)
	}
	return doc.toDomain()
}

// ListStaff returns traffic and admin accounts ordered by email.
func (r *Repo) ListStaff(ctx context.Context) ([]*domain.Account, error) {
	filter := bson.D{{Key: "role", Value: bson.D{{Key: "$in", Value: bson.A{
		string(domain.AccountRoleTraffic), string(domain.AccountRoleAdmin),
	}}}}}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, mongoadapter.MapError(err, "accounts", "staff")
	}

	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mongoadapter.MapError(err, "accounts", "staff")
	}

	out := make([]*domain.Account, 0, len(docs))
	for _, d := range docs {
		a, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Create inserts a new account. Returns domain.ErrAlreadyExists when the
// email is taken.
func (r *Repo) Create(ctx context.Context, a *domain.Account) error {
	doc := accountDoc{
		ID:           a.ID.String(),
		Email:        strings.ToLower(a.Email),
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return mongoadapter.MapError(err, "account", a.Email)
	}
	return nil
}

// UpdateRole changes the role of an account and returns the updated document.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.AccountRole) (*domain.Account, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "role", Value: string(role)},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc accountDoc
	err := r.col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id.String()}}, update, opts).Decode(&doc)
	if err != nil {
		return nil, mongoadapter.MapError(err, "account", id)
	}
	return doc.toDomain()
}
