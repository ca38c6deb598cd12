package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() StoryParameters {
	return StoryParameters{
		CharacterName:      "Sam",
		PersonPerspective:  ThirdPerson,
		MotivatingInterest: "trains",
		StoryCategory:      DailyLiving,
		SpecificActivity:   "washing hands",
	}
}

func TestValidate_Accepts(t *testing.T) {
	p := validParams()
	assert.NoError(t, NewValidator().Validate(&p))
}

func TestValidate_RequiredFields(t *testing.T) {
	p := StoryParameters{PersonPerspective: FirstPerson}
	err := NewValidator().Validate(&p)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make(map[string]string)
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "characterName is required", fields["characterName"])
	assert.Equal(t, "motivatingInterest is required", fields["motivatingInterest"])
	assert.Equal(t, "specificActivity is required", fields["specificActivity"])
	assert.Contains(t, fields, "storyCategory")
}

func TestValidate_UnknownCategory(t *testing.T) {
	p := validParams()
	p.StoryCategory = "cooking"

	var verr *ValidationError
	require.ErrorAs(t, NewValidator().Validate(&p), &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "storyCategory", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Message, "daily_living")
}

func TestValidate_OtherNeedsCustomCategory(t *testing.T) {
	p := validParams()
	p.StoryCategory = OtherCategory

	var verr *ValidationError
	require.ErrorAs(t, NewValidator().Validate(&p), &verr)
	assert.Equal(t, "customCategory", verr.Fields[0].Field)
	assert.Equal(t, "customCategory is required when StoryCategory is other", verr.Fields[0].Message)

	p.CustomCategory = "bedtime"
	assert.NoError(t, NewValidator().Validate(&p))
}

func TestNormalize(t *testing.T) {
	p := StoryParameters{
		CharacterName:     "  Sam ",
		PersonPerspective: "Third-Person",
		StoryCategory:     " Daily_Living ",
		SpecificActivity:  " washing hands\n",
	}
	p.Normalize()

	assert.Equal(t, "Sam", p.CharacterName)
	assert.Equal(t, ThirdPerson, p.PersonPerspective)
	assert.Equal(t, DailyLiving, p.StoryCategory)
	assert.Equal(t, "washing hands", p.SpecificActivity)

	empty := StoryParameters{}
	empty.Normalize()
	assert.Equal(t, FirstPerson, empty.PersonPerspective)
}

func TestNormalize_WhitespaceOnlyIsRequired(t *testing.T) {
	p := validParams()
	p.CharacterName = "   "
	p.Normalize()
	assert.Error(t, NewValidator().Validate(&p))
}
