package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// wrapErr maps driver failures onto the domain error taxonomy so callers
// never see mongo types.
func wrapErr(op, resource, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &domain.NotFoundError{Resource: resource, Key: key}
	}
	if mongo.IsDuplicateKeyError(err) {
		return &domain.ConflictError{Resource: resource, Key: key}
	}
	return &domain.UpstreamError{Op: op, Err: err}
}
