package schema

import (
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

// StoryResponse is the JSON shape requested from providers that support
// structured output.
type StoryResponse struct {
	Story  StoryBody  `json:"story" jsonschema_description:"The social story split into its parts"`
	Images ImageTerms `json:"images" jsonschema_description:"Image search terms for the cover and every step"`
}

type StoryBody struct {
	Intro      string   `json:"intro" jsonschema_description:"Introduction paragraph without a heading"`
	Steps      []string `json:"steps" jsonschema_description:"Exactly 10 steps, each a single line starting with its number and a period (e.g. '1. ...')"`
	Conclusion string   `json:"conclusion" jsonschema_description:"Conclusion paragraph without a heading"`
}

type ImageTerms struct {
	CoverTerms []string   `json:"coverTerms" jsonschema_description:"1 to 3 cartoon, illustration, vector art or clipart search terms for the cover"`
	StepTerms  [][]string `json:"stepTerms" jsonschema_description:"10 lists of 1 to 3 cartoon, illustration, vector art or clipart search terms, one list per step"`
}

// Draft converts the response into a StoryDraft, adding missing step markers
// and padding step terms to one slice per step.
func (r StoryResponse) Draft() *StoryDraft {
	d := &StoryDraft{
		Intro:      strings.TrimSpace(r.Story.Intro),
		Conclusion: strings.TrimSpace(r.Story.Conclusion),
		CoverTerms: r.Images.CoverTerms,
	}
	for i, step := range r.Story.Steps {
		d.Steps = append(d.Steps, EnsureMarker(i+1, step))
	}
	d.StepTerms = PadTerms(r.Images.StepTerms, len(d.Steps))
	return d
}

// PadTerms truncates or pads terms to exactly n entries.
func PadTerms(terms [][]string, n int) [][]string {
	out := make([][]string, n)
	copy(out, terms)
	return out
}

var StoryResponseSchema = generateSchema[StoryResponse]()

// StoryParametersSchema describes the request payload for form builders.
var StoryParametersSchema = jsonschema.Reflect(&StoryParameters{})

func StructuredOutputsResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "social_story",
		Description: openai.String("A ten-step social story with image search terms"),
		Schema:      StoryResponseSchema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}
