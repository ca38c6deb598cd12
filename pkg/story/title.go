package story

import (
	"unicode"
	"unicode/utf8"

	"plotlines/pkg/schema"
)

// Title names the story after its activity: "My Guide to X" in first person,
// "Name's Guide to X" otherwise. Only the first letter of X is upper-cased.
func Title(p schema.StoryParameters) string {
	activity := "Activity"
	if r, size := utf8.DecodeRuneInString(p.SpecificActivity); p.SpecificActivity != "" {
		activity = string(unicode.ToUpper(r)) + p.SpecificActivity[size:]
	}
	if p.PersonPerspective == schema.FirstPerson {
		return "My Guide to " + activity
	}
	return p.CharacterName + "'s Guide to " + activity
}
