// Package services implements the marketplace use cases on top of the repositories.
package services

import (
	"errors"
	"fmt"

	"craftedbyher/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error carries a client-facing message and the kind used for status mapping.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func fail(kind error, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// storeErr translates repository sentinels; what names the entity for not-found messages.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fail(ErrNotFound, "%s not found", what)
	case errors.Is(err, repository.ErrStale):
		return fail(ErrConflict, "%s was modified concurrently, please retry", what)
	case errors.Is(err, repository.ErrDuplicate):
		return fail(ErrConflict, "%s already exists", what)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

func parseID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return id, fail(ErrValidation, "Invalid %s id", what)
	}
	return id, nil
}
