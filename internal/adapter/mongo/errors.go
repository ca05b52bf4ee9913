package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

// MapError converts driver errors to domain errors. Context errors pass
// through; anything unrecognised is wrapped with domain.ErrStorage.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
	}

	return fmt.Errorf("%s %v: %w: %w", entity, key, domain.ErrStorage, err)
}
