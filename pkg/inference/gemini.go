package inference

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// GeminiInferencer implements Inferencer with the Google Gen AI SDK. The
// client is created on first use so a missing key fails the call, not startup.
type GeminiInferencer struct {
	mu     sync.Mutex
	client *genai.Client
	apiKey string
	model  string
}

func NewGeminiInferencer(apiKey string, model string) *GeminiInferencer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiInferencer{
		apiKey: apiKey,
		model:  model,
	}
}

func (o *GeminiInferencer) Name() string { return "gemini" }

func (o *GeminiInferencer) getClient(ctx context.Context) (*genai.Client, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.client != nil {
		return o.client, nil
	}
	if o.apiKey == "" {
		return nil, &CredentialError{Setting: "GEMINI_API_KEY"}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  o.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	o.client = client
	return client, nil
}

// Infer sends the prompts to Gemini. A JSON-schema response format in params
// switches the response MIME type to JSON.
func (o *GeminiInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	client, err := o.getClient(ctx)
	if err != nil {
		return "", err
	}
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleModel),
		MaxOutputTokens:   int32(cmp.Or(params.MaxCompletionTokens.Value, 4096)),
	}
	if params.Temperature.Valid() {
		config.Temperature = genai.Ptr(float32(params.Temperature.Value))
	}
	if params.ResponseFormat.OfJSONSchema != nil || params.ResponseFormat.OfJSONObject != nil {
		config.ResponseMIMEType = "application/json"
	}

	result, err := client.Models.GenerateContent(
		ctx,
		cmp.Or(params.Model, o.model),
		genai.Text(user),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (o *GeminiInferencer) Verify(ctx context.Context, result string) (bool, error) {
	return verify(result)
}
