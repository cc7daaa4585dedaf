package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

var (
	ErrInvalidInput = errors.New("invalid student input")
	ErrInvalidRange = errors.New("gpa range minimum exceeds maximum")
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
