package commands

import (
	"context"
	"errors"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/importer"
	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/goliatone/go-sitekit/internal/pages"
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command failures.
const (
	TextCodeInvalidMessage     = "SITEKIT_COMMAND_INVALID"
	TextCodeCanceled           = "SITEKIT_COMMAND_CANCELED"
	TextCodeTimeout            = "SITEKIT_COMMAND_TIMEOUT"
	TextCodeContext            = "SITEKIT_COMMAND_CONTEXT"
	TextCodeDisabled           = "SITEKIT_COMMAND_DISABLED"
	TextCodeFailed             = "SITEKIT_COMMAND_FAILED"
	TextCodeScopeInvalid       = "SITEKIT_SCOPE_INVALID"
	TextCodePageNotFound       = "SITEKIT_PAGE_NOT_FOUND"
	TextCodePageSlugTaken      = "SITEKIT_PAGE_SLUG_TAKEN"
	TextCodePageInvalid        = "SITEKIT_PAGE_INVALID"
	TextCodeNavigationNotFound = "SITEKIT_NAVIGATION_NOT_FOUND"
	TextCodeNavigationInvalid  = "SITEKIT_NAVIGATION_INVALID"
	TextCodeDocumentInvalid    = "SITEKIT_DOCUMENT_INVALID"
)

// ErrDisabled is wrapped by the disabled sentinels of every command package
// so a feature gate refusal is classified the same way everywhere.
var ErrDisabled = errors.New("commands: disabled")

type failureClass struct {
	targets  []error
	category goerrors.Category
	code     string
	message  string
}

// failureClasses is checked in order; the first class with a matching
// target tags the error.
var failureClasses = []failureClass{
	{
		targets:  []error{ErrDisabled},
		category: goerrors.CategoryOperation,
		code:     TextCodeDisabled,
		message:  "command disabled",
	},
	{
		targets:  []error{domain.ErrInvalidScope, domain.ErrUnknownCollection, domain.ErrScopeMismatch},
		category: goerrors.CategoryBadInput,
		code:     TextCodeScopeInvalid,
		message:  "scope rejected",
	},
	{
		targets:  []error{pages.ErrNotFound},
		category: goerrors.CategoryNotFound,
		code:     TextCodePageNotFound,
		message:  "page not found",
	},
	{
		targets:  []error{pages.ErrSlugExists},
		category: goerrors.CategoryConflict,
		code:     TextCodePageSlugTaken,
		message:  "page slug already taken",
	},
	{
		targets: []error{
			pages.ErrPageRequired, pages.ErrTitleRequired, pages.ErrSlugInvalid,
			pages.ErrLayoutInvalid, pages.ErrSectionsInvalid, pages.ErrDirectionInvalid,
		},
		category: goerrors.CategoryBadInput,
		code:     TextCodePageInvalid,
		message:  "page rejected",
	},
	{
		targets:  []error{navigation.ErrNotFound},
		category: goerrors.CategoryNotFound,
		code:     TextCodeNavigationNotFound,
		message:  "navigation item not found",
	},
	{
		targets: []error{
			navigation.ErrItemRequired, navigation.ErrLabelRequired, navigation.ErrLinkTypeInvalid,
			navigation.ErrTargetRequired, navigation.ErrTargetInvalid, navigation.ErrTargetScope,
			navigation.ErrParentInvalid, navigation.ErrParentCycle, navigation.ErrSyntheticItem,
			navigation.ErrKeyInvalid,
		},
		category: goerrors.CategoryBadInput,
		code:     TextCodeNavigationInvalid,
		message:  "navigation item rejected",
	},
	{
		targets:  []error{importer.ErrDocumentInvalid},
		category: goerrors.CategoryBadInput,
		code:     TextCodeDocumentInvalid,
		message:  "markdown document rejected",
	},
}

// TextCode returns the text code a command failure was tagged with, or ""
// when err was not produced by a Handler.
func TextCode(err error) string {
	var tagged *goerrors.Error
	if errors.As(err, &tagged) {
		return tagged.TextCode
	}
	return ""
}

// Rejected reports whether err is a domain refusal (missing record, bad
// input, conflict or a disabled gate) rather than a failure of the command.
func Rejected(err error) bool {
	var tagged *goerrors.Error
	if !errors.As(err, &tagged) {
		return false
	}
	switch tagged.Category {
	case goerrors.CategoryNotFound, goerrors.CategoryBadInput, goerrors.CategoryConflict, goerrors.CategoryOperation:
		return true
	default:
		return false
	}
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message invalid").
		WithTextCode(TextCodeInvalidMessage)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").
			WithTextCode(TextCodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").
			WithTextCode(TextCodeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(TextCodeContext)
	}
}

// wrapExecuteError tags a failure returned by the command body. Known page,
// navigation and importer sentinels keep their own category; anything else
// is a generic command failure.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	for _, class := range failureClasses {
		for _, target := range class.targets {
			if errors.Is(err, target) {
				return goerrors.Wrap(err, class.category, class.message).
					WithTextCode(class.code)
			}
		}
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapContextError(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(TextCodeFailed)
}
