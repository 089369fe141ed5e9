package analysis

import (
	"errors"
	"strings"
)

// ErrMissingDemographics is matched by every MissingDemographicsError
var ErrMissingDemographics = errors.New("missing demographics")

// MissingDemographicsError is returned when age, height or weight cannot be
// resolved from a submission. No partial result accompanies it.
type MissingDemographicsError struct {
	Fields []string
}

func (e *MissingDemographicsError) Error() string {
	return ErrMissingDemographics.Error() + ": " + strings.Join(e.Fields, ", ")
}

// Is makes errors.Is(err, ErrMissingDemographics) hold
func (e *MissingDemographicsError) Is(target error) bool {
	return target == ErrMissingDemographics
}
