package story

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"plotlines/pkg/inference"
	"plotlines/pkg/metrics"
	"plotlines/pkg/schema"
	"plotlines/pkg/utils"
)

const maxCompletionTokens = 1500

// Deriver turns story parameters into a StoryDraft with a single provider call.
type Deriver struct {
	inf        inference.Inferencer
	model      string
	structured bool
}

// NewDeriver returns a Deriver backed by inf. When structured is set the
// provider is asked for the JSON story shape through a strict response format.
func NewDeriver(inf inference.Inferencer, model string, structured bool) *Deriver {
	return &Deriver{inf: inf, model: model, structured: structured}
}

// Derive builds the prompt, calls the provider once and parses the answer.
// Missing credentials surface as *inference.CredentialError, other provider
// failures wrap ErrGeneration and unusable text wraps ErrStructure.
func (d *Deriver) Derive(ctx context.Context, p schema.StoryParameters) (*schema.StoryDraft, error) {
	system, user := BuildPrompt(p, d.structured)

	params := openai.ChatCompletionNewParams{
		Model:               d.model,
		MaxCompletionTokens: openai.Int(maxCompletionTokens),
		Temperature:         openai.Float(0.6),
	}
	if d.structured {
		params.ResponseFormat = schema.StructuredOutputsResponseFormat()
	}

	if tokens, err := utils.NumTokens(d.model, system+"\n"+user); err != nil {
		log.Debug("could not count prompt tokens", "model", d.model, "error", err)
	} else {
		metrics.AIPromptTokens.Observe(float64(tokens))
		log.Debug("prompt tokens", "model", d.model, "tokens", tokens, "structured", d.structured)
	}

	provider := d.inf.Name()
	start := time.Now()
	text, err := d.inf.Infer(ctx, &params, system, user)
	metrics.AIRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues(provider, "error").Inc()
		var cred *inference.CredentialError
		if errors.As(err, &cred) {
			return nil, fmt.Errorf("story: %w", err)
		}
		log.Error("story generation request failed", "provider", provider, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	if ok, err := d.inf.Verify(ctx, text); !ok {
		metrics.AIRequestsTotal.WithLabelValues(provider, "empty").Inc()
		if err == nil {
			err = inference.ErrEmptyCompletion
		}
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	draft, err := ParseResponse(text)
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues(provider, "structure").Inc()
		log.Error("could not parse story", "provider", provider, "error", err, "raw", utils.LimitStr(text, 500))
		return nil, err
	}

	metrics.AIRequestsTotal.WithLabelValues(provider, "success").Inc()
	log.Info("derived story", "provider", provider, "steps", len(draft.Steps), "cover_terms", len(draft.CoverTerms))
	return draft, nil
}
