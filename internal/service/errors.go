package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/kasir/internal/calculator"
	"github.com/mmynk/kasir/internal/cart"
	"github.com/mmynk/kasir/internal/recorder"
	"github.com/mmynk/kasir/internal/storage"
)

var (
	errSessionNotFound = errors.New("cart session not found")
	errInvalidMenuItem = errors.New("menu item needs a name and a positive unit price")
	errInvalidID       = errors.New("id must be positive")
)

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, recorder.ErrInvalidPayment),
		errors.Is(err, calculator.ErrEmptyCart),
		errors.Is(err, calculator.ErrInvalidLine),
		errors.Is(err, calculator.ErrInvalidTotal),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, errInvalidMenuItem),
		errors.Is(err, errInvalidID):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, errSessionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrDuplicateName), errors.Is(err, storage.ErrDuplicateID):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
