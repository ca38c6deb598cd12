package inference

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
)

// Inferencer defines an interface for running model inference and verification.
type Inferencer interface {
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
	Verify(ctx context.Context, result string) (bool, error)
	Name() string
}

// ErrEmptyCompletion is returned when a provider answers without any text.
var ErrEmptyCompletion = errors.New("empty completion content")

// CredentialError reports a provider credential that is not configured.
type CredentialError struct {
	Setting string
}

func (e *CredentialError) Error() string {
	return e.Setting + " environment variable is not set"
}
