package story

import (
	"fmt"
	"strings"

	"plotlines/pkg/schema"
)

const systemPrompt = `You are a helpful assistant that writes therapeutic social stories for children. Stories are calm, concrete and positive, use short sentences, and describe what will happen and how the character can feel and respond.`

const storyBrief = `Write a Social Story with exactly 10 steps for a character named "%s", written in the %s person perspective.

Context:
- Motivating interest: "%s"
- Story category: "%s"
- Specific activity: "%s"
- Additional notes: "%s"
`

const plainRequirements = `
Output requirements:
- An introduction paragraph (no heading).
- Exactly 10 steps, each as a single line starting with its number and a period (e.g., "1. ...", "2. ...", ..., "10. ..."). No blank lines between steps.
- A conclusion paragraph (no heading).
- No other headings, titles, or commentary.`

const structuredRequirements = `
Output requirements:
1) The story MUST have:
   - An introduction paragraph (no heading).
   - Exactly 10 steps, each as a single line starting with its number and a period (e.g., "1. ...", "2. ...", ..., "10. ...").
   - A conclusion paragraph (no heading).

2) ALSO choose 1 to 3 short, concrete image search terms that describe what should be visually depicted,
   focusing on cartoon, illustration, or vector art style (e.g., "cartoon boy brushing teeth", "vector classroom illustration").
   - For the cover image: 1 to 3 terms describing the overall story theme.
   - For EACH step: 1 to 3 terms that capture the main idea of the step.
   All search terms must include one of the words: "cartoon", "illustration", "vector art", or "clipart".

3) Respond ONLY as strict JSON (no prose, no Markdown):
{"story":{"intro":"string","steps":["1. ...","2. ...","...","10. ..."],"conclusion":"string"},"images":{"coverTerms":["term"],"stepTerms":[["term"],["term"],["term"],["term"],["term"],["term"],["term"],["term"],["term"],["term"]]}}`

// BuildPrompt returns the system and user prompts for p. structured selects
// the JSON output template over the plain numbered-lines template.
func BuildPrompt(p schema.StoryParameters, structured bool) (system, user string) {
	var b strings.Builder
	fmt.Fprintf(&b, storyBrief,
		p.CharacterName,
		p.PersonPerspective,
		p.MotivatingInterest,
		p.CategoryLabel(),
		p.SpecificActivity,
		p.AdditionalNotes,
	)
	if structured {
		b.WriteString(structuredRequirements)
	} else {
		b.WriteString(plainRequirements)
	}
	return systemPrompt, b.String()
}
