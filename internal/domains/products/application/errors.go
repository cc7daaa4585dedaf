package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

var ErrInvalidInput = errors.New("invalid product input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := validation.Fields(err); ok {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
