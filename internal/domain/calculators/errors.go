// internal/domain/calculators/errors.go
package calculators

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for non-positive terms, principals, incomes or household sizes.
var ErrInvalidInput = errors.New("INVALID_INPUT")

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
