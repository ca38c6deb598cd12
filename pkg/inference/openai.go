package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

// OpenAIInferencer implements Inferencer using OpenAI's official Go SDK. It
// also serves OpenAI-compatible servers through ChangeBaseURL.
type OpenAIInferencer struct {
	client  *openai.Client
	apiKey  string
	model   string
	baseURL string
}

// NewOpenAIInferencer creates a new inferencer instance using OpenAI client.
// The SDK's automatic retries are disabled; each Infer is a single request.
func NewOpenAIInferencer(apiKey string, model string) *OpenAIInferencer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)
	return &OpenAIInferencer{
		client: &client,
		apiKey: apiKey,
		model:  model,
	}
}

// ChangeBaseURL points the client at an OpenAI-compatible server. Such
// servers may run without a key.
func (o *OpenAIInferencer) ChangeBaseURL(baseURL string) {
	client := openai.NewClient(
		option.WithAPIKey(o.apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	o.client = &client
	o.baseURL = baseURL
}

func (o *OpenAIInferencer) SetModel(model string) {
	o.model = model
}

func (o *OpenAIInferencer) Name() string { return "openai" }

// Infer sends text to the OpenAI chat completion endpoint and returns the output.
func (o *OpenAIInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if o.apiKey == "" && o.baseURL == "" {
		return "", &CredentialError{Setting: "OPENAI_API_KEY"}
	}

	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	} else {
		p := *params
		params = &p
	}
	params.Model = cmp.Or(params.Model, o.model)
	params.Messages = []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Role: "system",
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: param.Opt[string]{Value: system},
				},
			}},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Role: "user",
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: param.Opt[string]{Value: user},
				},
			},
		},
	}

	params.MaxCompletionTokens = openai.Int(cmp.Or(params.MaxCompletionTokens.Value, 4096))
	params.Temperature = openai.Float(cmp.Or(params.Temperature.Value, 0.6))

	resp, err := o.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		return "", fmt.Errorf("openai inference error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	if strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

// Verify checks that the result is non-empty.
func (o *OpenAIInferencer) Verify(ctx context.Context, result string) (bool, error) {
	return verify(result)
}

func verify(result string) (bool, error) {
	if strings.TrimSpace(result) == "" {
		return false, ErrEmptyCompletion
	}
	return true, nil
}
