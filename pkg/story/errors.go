package story

import (
	"errors"
	"fmt"

	"plotlines/pkg/inference"
	"plotlines/pkg/schema"
)

var (
	// ErrGeneration marks a failed or unusable provider call.
	ErrGeneration = errors.New("story generation failed")
	// ErrStructure marks provider text that could not be split into steps.
	ErrStructure = errors.New("story structure invalid")
)

// StepCountError reports how many steps were recovered instead of ten.
type StepCountError struct {
	Got int
}

func (e *StepCountError) Error() string {
	return fmt.Sprintf("Expected %d steps, got %d", schema.StepCount, e.Got)
}

func (e *StepCountError) Is(target error) bool {
	return target == ErrStructure
}

// Kind classifies err for error responses: configuration, structure or provider.
func Kind(err error) string {
	var cred *inference.CredentialError
	switch {
	case errors.As(err, &cred):
		return "configuration"
	case errors.Is(err, ErrStructure):
		return "structure"
	default:
		return "provider"
	}
}
