package assessment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Instrument is a questionnaire definition. Items and subscales are
// reference data and are never modified.
type Instrument struct {
	Code           string     `json:"code"`
	Title          string     `json:"title"`
	ShortTitle     string     `json:"short_title"`
	Description    string     `json:"description"`
	ItemCodePrefix string     `json:"item_code_prefix"`
	Subscales      []Subscale `json:"subscales"`
	Items          []Item     `json:"items"`
	RetakeInterval Interval   `json:"retake_interval"`
}

// Score scores answers against the instrument's items, using catalog
// subscale titles and item codes of the form PREFIX_NN.
func (in *Instrument) Score(answers []Answer) (*Result, error) {
	titles := make(map[string]string, len(in.Subscales))
	for _, s := range in.Subscales {
		titles[s.ID] = s.Title
	}
	return score(answers, in.Items, titles, func(i int, _ Item) string {
		return fmt.Sprintf("%s_%02d", in.ItemCodePrefix, i+1)
	})
}

// Instrument codes.
const (
	CodePOMS       = "POMS"
	CodeIDEP       = "IDEP"
	CodeSelfEsteem = "SELF_ESTEEM"
)

// Instruments returns the built-in catalog in display order. Each call
// returns fresh copies; changing them does not affect the catalog.
func Instruments() []*Instrument {
	return []*Instrument{poms.clone(), idep.clone(), selfEsteem.clone()}
}

func (in *Instrument) clone() *Instrument {
	c := *in
	c.Subscales = slices.Clone(in.Subscales)
	c.Items = slices.Clone(in.Items)
	return &c
}

// Lookup finds an instrument by code, case-insensitively.
func Lookup(code string) (*Instrument, error) {
	for _, in := range Instruments() {
		if strings.EqualFold(in.Code, code) {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, code)
}

// ErrUnknownInstrument is returned by Lookup for a code not in the catalog.
var ErrUnknownInstrument = errors.New("unknown instrument")

// items builds a non-reversed item list cycling through subscales in order,
// which is how POMS and IDEP interleave their items.
func items(prefix string, subscales []string, prompts []string) []Item {
	out := make([]Item, len(prompts))
	for i, p := range prompts {
		out[i] = Item{
			ID:         fmt.Sprintf("%s_%02d", prefix, i+1),
			Prompt:     p,
			SubscaleID: subscales[i%len(subscales)],
		}
	}
	return out
}

var poms = &Instrument{
	Code:           CodePOMS,
	Title:          "POMS",
	ShortTitle:     "POMS",
	Description:    "Profiles mood states such as tension, vigor and fatigue to tune mental load.",
	ItemCodePrefix: "POMS",
	RetakeInterval: DefaultRetakeInterval,
	Subscales: []Subscale{
		{ID: "tension", Title: "Tension", Description: "Perceived nervousness and stress."},
		{ID: "vigor", Title: "Vigor", Description: "Perceived energy and motivation."},
		{ID: "fatigue", Title: "Fatigue", Description: "Physical or mental tiredness."},
		{ID: "calm", Title: "Calm", Description: "Emotional balance and control."},
	},
	Items: items("poms", []string{"tension", "vigor", "fatigue", "calm"}, []string{
		"I feel tense",
		"I am full of energy",
		"I feel worn out",
		"I feel at ease",
		"I am worried about something",
		"I want to train",
		"I feel short of energy",
		"I am in control of my emotions",
		"I feel restless",
		"I am excited about my goals",
		"Tiredness makes it hard to concentrate",
		"I am breathing calmly",
		"I feel under pressure",
		"I feel strong and ready",
		"My body feels heavy",
		"I am relaxed",
		"I am anxious about the next challenge",
		"I feel positive",
		"My mind is tired",
		"I am focused and present",
	}),
}

var idep = &Instrument{
	Code:           CodeIDEP,
	Title:          "IDEP",
	ShortTitle:     "IDEP",
	Description:    "Identifies psychological well-being indicators and coping resources in athletes.",
	ItemCodePrefix: "IDEP",
	RetakeInterval: DefaultRetakeInterval,
	Subscales: []Subscale{
		{ID: "self_efficacy", Title: "Self-efficacy", Description: "Confidence in your own resources."},
		{ID: "regulation", Title: "Emotional regulation", Description: "Ability to manage emotions."},
		{ID: "support", Title: "Social support", Description: "Perceived backing from your surroundings."},
		{ID: "stress", Title: "Competitive stress", Description: "Perceived pressure around performance."},
	},
	Items: items("idep", []string{"self_efficacy", "regulation", "support", "stress"}, []string{
		"I know how to adapt to difficult situations",
		"I can stay calm under pressure",
		"I have people who support me",
		"Competitions make me very tense",
		"I trust my decisions under pressure",
		"I recognize my emotions easily",
		"The people around me know my sporting goals",
		"I think too much about possible mistakes",
		"I have mental tools to stay focused",
		"I can breathe and lower my heart rate",
		"My coaches give me emotional support",
		"Before competing I have intrusive thoughts",
		"I believe I can always improve",
		"I can regain focus when distracted",
		"I feel accompanied in my sporting journey",
		"I worry about disappointing others",
		"I have strategies for handling stress",
		"I notice when my emotions overwhelm me",
		"My family understands my sporting goals",
		"I struggle to sleep before important moments",
		"I can motivate myself even after failing",
		"I am aware of tension in my body",
		"I know who to turn to when I need help",
		"I fear missing opportunities if I do not stand out",
		"I learn quickly from my mental mistakes",
		"I use techniques to balance my emotions",
		"My teammates encourage me when I need it",
		"Outside expectations put pressure on me",
	}),
}

var selfEsteem = &Instrument{
	Code:           CodeSelfEsteem,
	Title:          "Self-esteem (Rosenberg)",
	ShortTitle:     "Self-esteem",
	Description:    "Measures self-perception and confidence to personalize motivational feedback.",
	ItemCodePrefix: "SELF",
	RetakeInterval: DefaultRetakeInterval,
	Subscales: []Subscale{
		{ID: "self_esteem", Title: "Global self-esteem", Description: "Overall sense of self-worth."},
	},
	Items: []Item{
		{ID: "self_01", Prompt: "I feel that I am a person of worth, at least on an equal plane with others", SubscaleID: "self_esteem"},
		{ID: "self_02", Prompt: "I feel that I have a number of good qualities", SubscaleID: "self_esteem"},
		{ID: "self_03", Prompt: "All in all, I am inclined to feel that I am a failure", SubscaleID: "self_esteem", Reversed: true},
		{ID: "self_04", Prompt: "I am able to do things as well as most other people", SubscaleID: "self_esteem"},
		{ID: "self_05", Prompt: "I feel I do not have much to be proud of", SubscaleID: "self_esteem", Reversed: true},
		{ID: "self_06", Prompt: "I take a positive attitude toward myself", SubscaleID: "self_esteem"},
		{ID: "self_07", Prompt: "On the whole, I am satisfied with myself", SubscaleID: "self_esteem"},
		{ID: "self_08", Prompt: "I wish I could have more respect for myself", SubscaleID: "self_esteem", Reversed: true},
		{ID: "self_09", Prompt: "At times I think I am no good at all", SubscaleID: "self_esteem", Reversed: true},
		{ID: "self_10", Prompt: "I consider myself worthy of respect", SubscaleID: "self_esteem"},
	},
}
