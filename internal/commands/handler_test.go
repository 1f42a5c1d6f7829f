package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/goliatone/go-sitekit/internal/pages"
	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct{}

func (testMessage) Type() string { return "sitekit.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "sitekit.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerReportsTelemetryWithMessageFields(t *testing.T) {
	var got TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("test.run"),
		WithMessageFields[testMessage](func(testMessage) map[string]any {
			return map[string]any{"page_id": "p-1"}
		}),
		WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
			got = info
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Status != TelemetryStatusSuccess || got.Command != "sitekit.test.message" || got.Operation != "test.run" {
		t.Fatalf("unexpected telemetry: %+v", got)
	}
	if got.Fields["page_id"] != "p-1" {
		t.Fatalf("expected message fields in telemetry, got %v", got.Fields)
	}
}

func TestHandlerTelemetryFailureStatus(t *testing.T) {
	var status TelemetryStatus
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	}, WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
		status = info.Status
	}))

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error")
	}
	if status != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %s", status)
	}
}

func TestHandlerTagsPageAndNavigationFailures(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category goerrors.Category
		code     string
	}{
		{name: "missing page", err: &pages.NotFoundError{Resource: "page", Key: "about"}, category: goerrors.CategoryNotFound, code: TextCodePageNotFound},
		{name: "slug taken", err: fmt.Errorf("create: %w", pages.ErrSlugExists), category: goerrors.CategoryConflict, code: TextCodePageSlugTaken},
		{name: "bad layout", err: pages.ErrLayoutInvalid, category: goerrors.CategoryBadInput, code: TextCodePageInvalid},
		{name: "missing item", err: &navigation.NotFoundError{Resource: "navigation item", Key: "x"}, category: goerrors.CategoryNotFound, code: TextCodeNavigationNotFound},
		{name: "parent cycle", err: navigation.ErrParentCycle, category: goerrors.CategoryBadInput, code: TextCodeNavigationInvalid},
		{name: "bad scope", err: domain.ErrInvalidScope, category: goerrors.CategoryBadInput, code: TextCodeScopeInvalid},
		{name: "gate closed", err: fmt.Errorf("pages command: %w", ErrDisabled), category: goerrors.CategoryOperation, code: TextCodeDisabled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var status TelemetryStatus
			h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
				return tc.err
			}, WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
				status = info.Status
			}))

			err := h.Execute(context.Background(), testMessage{})
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected original error in chain, got %v", err)
			}
			if !goerrors.IsCategory(err, tc.category) {
				t.Fatalf("expected category %s, got %v", tc.category, err)
			}
			if got := TextCode(err); got != tc.code {
				t.Fatalf("expected text code %s, got %q", tc.code, got)
			}
			if status != TelemetryStatusRejected {
				t.Fatalf("expected rejected status, got %s", status)
			}
		})
	}
}

func TestHandlerTagsUnknownFailuresAsCommandErrors(t *testing.T) {
	err := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("disk full")
	}).Execute(context.Background(), testMessage{})
	if TextCode(err) != TextCodeFailed || Rejected(err) {
		t.Fatalf("expected generic command failure, got %q (rejected=%t)", TextCode(err), Rejected(err))
	}
}
