package story

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"plotlines/pkg/schema"
	"plotlines/pkg/utils"
)

var (
	stepLineRX = regexp.MustCompile(`^\d{1,2}[.)-]\s+`)
	// recovery scan only: no whitespace required, number must be the next step
	looseStepRX = regexp.MustCompile(`^(\d{1,2})[.)-]`)
)

// ParseText splits free-form provider text into an introduction, exactly ten
// steps and a conclusion. Wrapped step lines are joined onto the step they
// continue. Extra numbered lines move to the conclusion.
func ParseText(text string) (*schema.StoryDraft, error) {
	lines := splitLines(text)

	var intro, steps, conclusion []string
	for _, line := range lines {
		switch {
		case len(conclusion) > 0:
			conclusion = append(conclusion, line)
		case stepLineRX.MatchString(line):
			steps = append(steps, line)
		case len(steps) == 0:
			intro = append(intro, line)
		case len(steps) < schema.StepCount:
			steps[len(steps)-1] += " " + line
		default:
			conclusion = append(conclusion, line)
		}
	}

	if len(steps) > schema.StepCount {
		conclusion = append(steps[schema.StepCount:len(steps):len(steps)], conclusion...)
		steps = steps[:schema.StepCount]
	}

	if len(steps) < schema.StepCount {
		// intro lines are never steps; rescan from the first step line on
		steps, conclusion = rescan(lines[len(intro):])
		if len(steps) < schema.StepCount {
			return nil, &StepCountError{Got: len(steps)}
		}
	}

	return &schema.StoryDraft{
		Intro:      strings.TrimSpace(strings.Join(intro, " ")),
		Steps:      steps,
		Conclusion: strings.TrimSpace(strings.Join(conclusion, " ")),
		StepTerms:  make([][]string, schema.StepCount),
	}, nil
}

// rescan takes step lines verbatim, dropping wrapped text between them. A
// line with a tight marker such as "3.Brush" counts only when 3 is the next
// step number. Everything after the tenth step is conclusion.
func rescan(region []string) (steps, conclusion []string) {
	for _, line := range region {
		switch {
		case len(steps) == schema.StepCount:
			conclusion = append(conclusion, line)
		case stepLineRX.MatchString(line), isNextMarker(line, len(steps)+1):
			steps = append(steps, line)
		}
	}
	return steps, conclusion
}

func isNextMarker(line string, n int) bool {
	m := looseStepRX.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	got, err := strconv.Atoi(m[1])
	return err == nil && got == n
}

func splitLines(text string) []string {
	var lines []string
	for line := range strings.Lines(text) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParseResponse reads a provider answer that may be structured JSON. JSON
// with exactly ten steps is used as-is. Anything else goes through ParseText,
// with JSON content flattened back into lines first.
func ParseResponse(raw string) (*schema.StoryDraft, error) {
	raw = strings.TrimSpace(utils.StripThink(raw))

	var resp schema.StoryResponse
	if err := json.Unmarshal([]byte(utils.CleanJSON(raw)), &resp); err != nil {
		return ParseText(raw)
	}

	draft := resp.Draft()
	if len(draft.Steps) == schema.StepCount {
		return draft, nil
	}

	parsed, err := ParseText(draft.Text())
	if err != nil {
		return nil, err
	}
	parsed.CoverTerms = draft.CoverTerms
	parsed.StepTerms = schema.PadTerms(resp.Images.StepTerms, schema.StepCount)
	return parsed, nil
}
