package story

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotlines/pkg/schema"
)

func numbered(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d. Step number %d.\n", i, i)
	}
	return b.String()
}

func TestParseText_WellFormed(t *testing.T) {
	text := "Sam likes trains.\nToday Sam washes hands.\n\n" + numbered(10) + "\nGreat job, Sam!\nAll done."

	draft, err := ParseText(text)
	require.NoError(t, err)

	assert.Equal(t, "Sam likes trains. Today Sam washes hands.", draft.Intro)
	assert.Equal(t, "Great job, Sam! All done.", draft.Conclusion)
	require.Len(t, draft.Steps, schema.StepCount)
	for i, step := range draft.Steps {
		assert.Equal(t, fmt.Sprintf("%d. Step number %d.", i+1, i+1), step)
	}
	assert.Len(t, draft.StepTerms, schema.StepCount)
}

func TestParseText_MarkerVariants(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 10; i++ {
		sep := []string{".", ")", "-"}[i%3]
		fmt.Fprintf(&b, "%d%s  Do thing %d\n", i, sep, i)
	}

	draft, err := ParseText(b.String())
	require.NoError(t, err)
	assert.Empty(t, draft.Intro)
	assert.Empty(t, draft.Conclusion)
	assert.Equal(t, "Do thing 10", draft.StepText(9))
}

func TestParseText_Continuation(t *testing.T) {
	text := "Intro.\n1. Walk to the sink\nand turn on the water.\n" + strings.TrimPrefix(numbered(10), "1. Step number 1.\n") + "Bye."

	draft, err := ParseText(text)
	require.NoError(t, err)
	assert.Equal(t, "1. Walk to the sink and turn on the water.", draft.Steps[0])
	assert.Equal(t, "2. Step number 2.", draft.Steps[1])
	assert.Equal(t, "Bye.", draft.Conclusion)
}

func TestParseText_ContinuationAfterTenthStepIsConclusion(t *testing.T) {
	text := numbered(10) + "You did it!"

	draft, err := ParseText(text)
	require.NoError(t, err)
	assert.Equal(t, "10. Step number 10.", draft.Steps[9])
	assert.Equal(t, "You did it!", draft.Conclusion)
}

func TestParseText_ExcessStepsMoveToConclusion(t *testing.T) {
	text := "Intro.\n" + numbered(12) + "The end."

	draft, err := ParseText(text)
	require.NoError(t, err)
	require.Len(t, draft.Steps, schema.StepCount)
	assert.Equal(t, "10. Step number 10.", draft.Steps[9])
	assert.Equal(t, "11. Step number 11. 12. Step number 12. The end.", draft.Conclusion)
}

func TestParseText_RecoveryScan(t *testing.T) {
	// markers without a following space are only picked up by the rescan
	var b strings.Builder
	b.WriteString("Intro.\n")
	for i := 1; i <= 10; i++ {
		if i%2 == 0 {
			fmt.Fprintf(&b, "%d.Step %d\n", i, i)
		} else {
			fmt.Fprintf(&b, "%d. Step %d\n", i, i)
		}
		if i == 3 {
			b.WriteString("and rinse well\n")
		}
	}
	b.WriteString("All done.\nSee you tomorrow.")

	draft, err := ParseText(b.String())
	require.NoError(t, err)
	require.Len(t, draft.Steps, schema.StepCount)
	assert.Equal(t, "Intro.", draft.Intro)
	assert.Equal(t, "1. Step 1", draft.Steps[0])
	assert.Equal(t, "2.Step 2", draft.Steps[1])
	assert.Equal(t, "3. Step 3", draft.Steps[2])
	assert.Equal(t, "Step 2", draft.StepText(1))
	assert.Equal(t, "10.Step 10", draft.Steps[9])
	assert.Equal(t, "All done. See you tomorrow.", draft.Conclusion)
}

func TestParseText_NumberedWordsAreNotSteps(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"intro", "5-year-old Sam loves trains.\n" + numbered(9) + "Great job!"},
		{"intro and continuation", "10-minute routine for Sam.\n1. Step number 1.\n2. Step number 2.\n10-minute timer helps.\n" +
			strings.Join(strings.Split(numbered(9), "\n")[2:], "\n") + "Great job!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText(tt.text)
			var sce *StepCountError
			require.ErrorAs(t, err, &sce)
			assert.Equal(t, 9, sce.Got)
			assert.EqualError(t, err, "Expected 10 steps, got 9")
		})
	}
}

func TestParseText_TooFewSteps(t *testing.T) {
	_, err := ParseText("Intro.\n" + numbered(6) + "Done.")
	require.Error(t, err)
	assert.EqualError(t, err, "Expected 10 steps, got 6")
	assert.True(t, errors.Is(err, ErrStructure))

	var sce *StepCountError
	require.True(t, errors.As(err, &sce))
	assert.Equal(t, 6, sce.Got)
}

func TestParseText_Empty(t *testing.T) {
	_, err := ParseText("   \n\n")
	assert.EqualError(t, err, "Expected 10 steps, got 0")
}

func TestParseResponse_StructuredJSON(t *testing.T) {
	steps := make([]string, 10)
	terms := make([]string, 10)
	for i := range steps {
		steps[i] = fmt.Sprintf("%q", fmt.Sprintf("Step %d", i+1))
		terms[i] = `["cartoon sink"]`
	}
	raw := "```json\n{\"story\":{\"intro\":\"Hi.\",\"steps\":[" + strings.Join(steps, ",") +
		"],\"conclusion\":\"Bye.\"},\"images\":{\"coverTerms\":[\"cartoon train\"],\"stepTerms\":[" +
		strings.Join(terms, ",") + "]}}\n```"

	draft, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Hi.", draft.Intro)
	assert.Equal(t, "Bye.", draft.Conclusion)
	assert.Equal(t, "1. Step 1", draft.Steps[0])
	assert.Equal(t, []string{"cartoon train"}, draft.CoverTerms)
	assert.Equal(t, []string{"cartoon sink"}, draft.Terms(9))
}

func TestParseResponse_JSONWithWrongStepCountFallsBack(t *testing.T) {
	// eleven steps in JSON: flattened and the extra step moves to the conclusion
	steps := make([]string, 11)
	for i := range steps {
		steps[i] = fmt.Sprintf(`"%d. Step %d"`, i+1, i+1)
	}
	raw := `{"story":{"intro":"Hi.","steps":[` + strings.Join(steps, ",") + `],"conclusion":"Bye."},"images":{"coverTerms":["cartoon"],"stepTerms":[["a"]]}}`

	draft, err := ParseResponse(raw)
	require.NoError(t, err)
	require.Len(t, draft.Steps, schema.StepCount)
	assert.Equal(t, "11. Step 11 Bye.", draft.Conclusion)
	assert.Equal(t, []string{"cartoon"}, draft.CoverTerms)
	assert.Equal(t, []string{"a"}, draft.Terms(0))
	assert.Nil(t, draft.Terms(1))
}

func TestParseResponse_PlainTextWithThink(t *testing.T) {
	raw := "<think>planning the story</think>\nIntro.\n" + numbered(10) + "Outro."

	draft, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Intro.", draft.Intro)
	assert.Equal(t, "Outro.", draft.Conclusion)
}
