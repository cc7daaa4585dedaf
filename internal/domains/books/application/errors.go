package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid book input")
	// ErrInvalidRange signals a search range whose lower bound exceeds the upper bound.
	ErrInvalidRange = errors.New("rating range minimum exceeds maximum")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := validation.Fields(err); ok || errors.Is(err, ErrInvalidRange) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
