package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

var (
	ErrInvalidInput = errors.New("invalid sales ticket input")
	ErrInvalidRange = errors.New("date range start is after its end")
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
