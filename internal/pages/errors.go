package pages

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("pages: not found")
	ErrPageRequired     = errors.New("pages: page id required")
	ErrTitleRequired    = errors.New("pages: title is required")
	ErrSlugInvalid      = errors.New("pages: slug contains invalid characters")
	ErrSlugExists       = errors.New("pages: slug already exists in scope")
	ErrLayoutInvalid    = errors.New("pages: layout must be between 1 and 5")
	ErrSectionsInvalid  = errors.New("pages: sections are invalid")
	ErrDirectionInvalid = errors.New("pages: move direction must be up or down")
	ErrDatabaseRequired = errors.New("pages: database not configured")
)

// NotFoundError is returned when a page cannot be located or is not visible
// to the requesting viewer.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(key string) error {
	return &NotFoundError{Resource: "page", Key: key}
}
