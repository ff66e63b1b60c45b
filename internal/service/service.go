package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/splitbill/internal/auth"
	"github.com/mmynk/splitbill/internal/display"
	"github.com/mmynk/splitbill/internal/middleware"
	"github.com/mmynk/splitbill/internal/storage"
)

// validate checks request messages. Bills and people carry their own rules
// and are checked with their Validate methods.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest returns an InvalidArgument error when msg fails its struct tags.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid request: %w", err))
	}
	return nil
}

// requireUser returns the authenticated user ID from the context.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// storageError maps a repository error to a Connect error.
func storageError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, fmt.Errorf("failed to %s: %w", op, err))
}

// formatterFor picks the request locale, then the caller's, then the default.
func formatterFor(ctx context.Context, locale string) *display.Formatter {
	if locale == "" {
		locale = middleware.GetLocale(ctx)
	}
	if locale == "" {
		locale = display.DefaultLocale
	}
	return display.NewFormatter(locale)
}
