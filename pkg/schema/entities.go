package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Perspective is the narrative voice of a story.
type Perspective string

const (
	FirstPerson Perspective = "first"
	ThirdPerson Perspective = "third"
)

// Category is one of the fixed story categories offered by the form.
type Category string

const (
	DailyLiving            Category = "daily_living"
	SocialSkills           Category = "social_skills"
	EmotionalRegulation    Category = "emotional_regulation"
	MotorSkills            Category = "motor_skills"
	SensoryRegulation      Category = "sensory_regulation"
	Communication          Category = "communication"
	CommunityParticipation Category = "community_participation"
	OtherCategory          Category = "other"
)

// StoryParameters is the validated form input for a single generation request.
type StoryParameters struct {
	CharacterName      string      `json:"characterName" validate:"required" jsonschema:"minLength=1" jsonschema_description:"Name of the story's main character"`
	PersonPerspective  Perspective `json:"personPerspective" validate:"oneof=first third" jsonschema:"enum=first,enum=third,default=first" jsonschema_description:"Narrative perspective"`
	MotivatingInterest string      `json:"motivatingInterest" validate:"required" jsonschema:"minLength=1" jsonschema_description:"Something the character loves, woven into the story"`
	StoryCategory      Category    `json:"storyCategory" validate:"required,oneof=daily_living social_skills emotional_regulation motor_skills sensory_regulation communication community_participation other" jsonschema:"enum=daily_living,enum=social_skills,enum=emotional_regulation,enum=motor_skills,enum=sensory_regulation,enum=communication,enum=community_participation,enum=other"`
	CustomCategory     string      `json:"customCategory,omitempty" validate:"required_if=StoryCategory other" jsonschema_description:"Required when storyCategory is other"`
	SpecificActivity   string      `json:"specificActivity" validate:"required" jsonschema:"minLength=1" jsonschema_description:"The activity the story teaches"`
	AdditionalNotes    string      `json:"additionalNotes,omitempty" jsonschema_description:"Optional notes for the writer"`
}

// Normalize trims every field and maps perspective spellings such as
// "third-person" onto the canonical values. An empty perspective becomes first.
func (p *StoryParameters) Normalize() {
	p.CharacterName = strings.TrimSpace(p.CharacterName)
	p.MotivatingInterest = strings.TrimSpace(p.MotivatingInterest)
	p.StoryCategory = Category(strings.ToLower(strings.TrimSpace(string(p.StoryCategory))))
	p.CustomCategory = strings.TrimSpace(p.CustomCategory)
	p.SpecificActivity = strings.TrimSpace(p.SpecificActivity)
	p.AdditionalNotes = strings.TrimSpace(p.AdditionalNotes)

	perspective := strings.ToLower(strings.TrimSpace(string(p.PersonPerspective)))
	perspective = strings.TrimSuffix(strings.TrimSuffix(perspective, "-person"), " person")
	if perspective == "" {
		perspective = string(FirstPerson)
	}
	p.PersonPerspective = Perspective(perspective)
}

// CategoryLabel returns the category as it should read in a prompt. The
// custom text replaces "other" when present.
func (p StoryParameters) CategoryLabel() string {
	if p.StoryCategory == OtherCategory && p.CustomCategory != "" {
		return p.CustomCategory
	}
	return string(p.StoryCategory)
}

// Illustration is a resolved image plus an optional credit line.
type Illustration struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution,omitempty"`
}

// StoryStep is one of the ten numbered lines of a story.
type StoryStep struct {
	StepNumber  int    `json:"stepNumber"`
	StepText    string `json:"stepText"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Attribution string `json:"attribution,omitempty"`
}

// GeneratedStory is the assembled response for a successful generation.
type GeneratedStory struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Story            string          `json:"story"`
	ImageURL         string          `json:"imageUrl,omitempty"`
	ImageAttribution string          `json:"imageAttribution,omitempty"`
	StepImages       []StoryStep     `json:"stepImages"`
	Request          StoryParameters `json:"request"`
	CreatedAt        string          `json:"createdAt"`
}

// StepCount is the number of steps every story carries.
const StepCount = 10

var stepMarkerRX = regexp.MustCompile(`^\s*\d{1,2}[.)-]\s*`)

// StoryDraft is the text split into its three parts, plus any image search
// terms the model proposed. Steps keep their leading "N." marker.
type StoryDraft struct {
	Intro      string
	Steps      []string
	Conclusion string
	CoverTerms []string
	StepTerms  [][]string
}

// Text joins the draft back into the newline-delimited story body.
func (d *StoryDraft) Text() string {
	return d.Intro + "\n\n" + strings.Join(d.Steps, "\n") + "\n\n" + d.Conclusion
}

// StepText returns step i without its enumeration marker.
func (d *StoryDraft) StepText(i int) string {
	return CleanStep(d.Steps[i])
}

// Terms returns the search terms for step i, or nil.
func (d *StoryDraft) Terms(i int) []string {
	if i < 0 || i >= len(d.StepTerms) {
		return nil
	}
	return d.StepTerms[i]
}

// CleanStep strips a leading "N.", "N)" or "N-" marker.
func CleanStep(line string) string {
	return strings.TrimSpace(stepMarkerRX.ReplaceAllString(line, ""))
}

// EnsureMarker prefixes line with "n. " unless it already carries a marker.
func EnsureMarker(n int, line string) string {
	line = strings.TrimSpace(line)
	if stepMarkerRX.MatchString(line) {
		return line
	}
	return fmt.Sprintf("%d. %s", n, line)
}
