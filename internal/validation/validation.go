// Package validation checks request bodies and path parameters before they
// reach the service layer.
package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}
