// Package lexicon holds the marker word tables used by the stylometric and
// semantic extractors. The built-in tables can be overridden list-by-list from
// a YAML file so product tuning never touches the formulas.
package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon is the full set of tunable word lists.
type Lexicon struct {
	// Conjunctions mark a sentence as complex.
	Conjunctions []string `yaml:"conjunctions"`
	// ClauseMarkers are counted per sentence for the clause ratio.
	ClauseMarkers []string `yaml:"clause_markers"`
	Cliches       []string `yaml:"cliches"`
	Formal        []string `yaml:"formal"`
	Informal      []string `yaml:"informal"`
	Punctuation   []string `yaml:"punctuation"`

	Creativity    []string `yaml:"creativity"`
	Emotion       []string `yaml:"emotion"`
	Persuasion    []string `yaml:"persuasion"`
	Narrative     []string `yaml:"narrative"`
	Analytical    []string `yaml:"analytical"`
	PersonalVoice []string `yaml:"personal_voice"`
	Abstract      []string `yaml:"abstract"`

	Denominators Denominators `yaml:"denominators"`
}

// Denominators scale raw marker hit counts into [0,1] embedding dimensions.
type Denominators struct {
	Creativity    float64 `yaml:"creativity"`
	Emotion       float64 `yaml:"emotion"`
	Persuasion    float64 `yaml:"persuasion"`
	Narrative     float64 `yaml:"narrative"`
	Analytical    float64 `yaml:"analytical"`
	PersonalVoice float64 `yaml:"personal_voice"`
}

func Default() *Lexicon {
	return &Lexicon{
		Conjunctions:  []string{"and", "but", "or", "because", "since", "although", "while", "if", "when"},
		ClauseMarkers: []string{"and", "but", "or", "because", "since", "although", "while", "when", "which", "who", "that"},
		Cliches: []string{
			"at the end of the day",
			"think outside the box",
			"leverage",
			"synergy",
			"paradigm shift",
			"game changer",
			"low-hanging fruit",
			"move the needle",
			"circle back",
			"best practices",
		},
		Formal: []string{
			"therefore", "furthermore", "moreover", "consequently", "nevertheless", "however",
			"thus", "hence", "accordingly", "subsequently", "notwithstanding", "whereas",
			"herein", "wherein", "regarding", "pursuant", "additionally",
		},
		Informal: []string{
			"gonna", "wanna", "gotta", "yeah", "yep", "nope", "kinda",
			"sorta", "stuff", "cool", "awesome", "okay", "hey", "lol",
		},
		Punctuation: []string{".", ",", ";", ":", "!", "?", "-", "(", ")", `"`, "'"},

		Creativity:    []string{"imagine", "dream", "vivid", "whimsical", "invent", "wonder", "curious", "spark", "playful", "unexpected"},
		Emotion:       []string{"love", "fear", "joy", "anger", "sad", "happy", "hope", "grief", "angry", "excited", "afraid", "proud"},
		Persuasion:    []string{"must", "should", "clearly", "obviously", "undeniably", "essential", "crucial", "proven", "guarantee", "consider"},
		Narrative:     []string{"then", "once", "suddenly", "later", "remember", "story", "walked", "told", "finally", "before", "after"},
		Analytical:    []string{"analysis", "data", "evidence", "therefore", "compare", "result", "because", "measure", "factor", "conclude"},
		PersonalVoice: []string{"i", "me", "my", "mine", "i'm", "i've", "i'd", "myself", "we", "our"},
		Abstract: []string{
			"concept", "theory", "idea", "meaning", "truth", "freedom", "justice", "identity",
			"knowledge", "philosophy", "principle", "essence", "purpose", "perspective",
		},

		Denominators: Denominators{
			Creativity:    5,
			Emotion:       5,
			Persuasion:    5,
			Narrative:     5,
			Analytical:    5,
			PersonalVoice: 10,
		},
	}
}

// Load reads a YAML override file on top of the defaults. Lists present in the
// file replace the built-in list wholesale; absent lists keep their defaults.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := Default()
	lex.merge(override)
	return lex, nil
}

func (l *Lexicon) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}

func (l *Lexicon) merge(o Lexicon) {
	replace(&l.Conjunctions, o.Conjunctions)
	replace(&l.ClauseMarkers, o.ClauseMarkers)
	replace(&l.Cliches, o.Cliches)
	replace(&l.Formal, o.Formal)
	replace(&l.Informal, o.Informal)
	replace(&l.Punctuation, o.Punctuation)
	replace(&l.Creativity, o.Creativity)
	replace(&l.Emotion, o.Emotion)
	replace(&l.Persuasion, o.Persuasion)
	replace(&l.Narrative, o.Narrative)
	replace(&l.Analytical, o.Analytical)
	replace(&l.PersonalVoice, o.PersonalVoice)
	replace(&l.Abstract, o.Abstract)

	positive(&l.Denominators.Creativity, o.Denominators.Creativity)
	positive(&l.Denominators.Emotion, o.Denominators.Emotion)
	positive(&l.Denominators.Persuasion, o.Denominators.Persuasion)
	positive(&l.Denominators.Narrative, o.Denominators.Narrative)
	positive(&l.Denominators.Analytical, o.Denominators.Analytical)
	positive(&l.Denominators.PersonalVoice, o.Denominators.PersonalVoice)
}

func replace(dst *[]string, src []string) {
	if len(src) == 0 {
		return
	}
	out := make([]string, 0, len(src))
	for _, w := range src {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}

func positive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

// Set builds a lookup set from a word list.
func Set(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[strings.ToLower(w)] = struct{}{}
	}
	return out
}

// Count returns how many tokens appear in set.
func Count(tokens []string, set map[string]struct{}) int {
	n := 0
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}
