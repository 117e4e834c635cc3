package traits

import (
	"math"

	"voiceprint/internal/semantic"
	"voiceprint/internal/stylometry"
	"voiceprint/internal/textstat"
)

type traitRule struct {
	id          string
	name        string
	description string
	category    string
	eval        func(stylometry.Metrics, semantic.Signature) (float64, bool)
}

type pitfallRule struct {
	id          string
	name        string
	description string
	suggestion  string
	category    string
	eval        func(stylometry.Metrics, semantic.Signature) (Severity, bool)
}

type IdealRange struct {
	Metric    string
	IdealMin  float64
	IdealMax  float64
	Tolerance float64
}

var IdealRanges = []IdealRange{
	{Metric: "typeTokenRatio", IdealMin: 0.5, IdealMax: 0.8, Tolerance: 0.1},
	{Metric: "averageSentenceLength", IdealMin: 15, IdealMax: 22, Tolerance: 3},
	{Metric: "sentenceLengthStdDev", IdealMin: 5, IdealMax: 10, Tolerance: 2},
	{Metric: "complexSentenceRatio", IdealMin: 0.3, IdealMax: 0.6, Tolerance: 0.1},
	{Metric: "formalityScore", IdealMin: 0.4, IdealMax: 0.6, Tolerance: 0.1},
	{Metric: "rareWordRatio", IdealMin: 0.1, IdealMax: 0.25, Tolerance: 0.05},
	{Metric: "semanticCohesion", IdealMin: 0.6, IdealMax: 0.9, Tolerance: 0.1},
	{Metric: "clicheRatio", IdealMin: 0, IdealMax: 0.01, Tolerance: 0.005},
}

const distinctiveVoiceMinUnigrams = 5

var traitRules = []traitRule{
	{
		id:          "rich-vocabulary",
		name:        "Rich Vocabulary",
		description: "You draw on a wide range of words and rarely repeat yourself.",
		category:    "vocabulary",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (float64, bool) {
			return math.Min(m.TypeTokenRatio, 1), m.TypeTokenRatio > 0.7
		},
	},
	{
		id:          "varied-rhythm",
		name:        "Varied Rhythm",
		description: "Your sentence lengths rise and fall, which keeps the reader moving.",
		category:    "rhythm",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (float64, bool) {
			return math.Min(m.SentenceLengthStdDev/15, 1), m.SentenceLengthStdDev > 8
		},
	},
	{
		id:          "sophisticated-structure",
		name:        "Sophisticated Structure",
		description: "You build layered sentences that connect ideas.",
		category:    "structure",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (float64, bool) {
			return math.Min(m.ComplexSentenceRatio, 1), m.ComplexSentenceRatio > 0.4
		},
	},
	{
		id:          "thematic-consistency",
		name:        "Thematic Consistency",
		description: "Your samples stay close to a recognisable set of themes.",
		category:    "semantic",
		eval: func(_ stylometry.Metrics, s semantic.Signature) (float64, bool) {
			return math.Min(s.SemanticCohesion, 1), s.SemanticCohesion > 0.7
		},
	},
	{
		id:          "balanced-tone",
		name:        "Balanced Tone",
		description: "You move easily between formal and conversational registers.",
		category:    "tone",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (float64, bool) {
			f := m.FormalityScore
			return 1 - 2*math.Abs(0.5-f), f > 0.3 && f < 0.7
		},
	},
	{
		id:          "precise-diction",
		name:        "Precise Diction",
		description: "You reach for specific, longer words where they earn their place.",
		category:    "vocabulary",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (float64, bool) {
			return math.Min(m.RareWordRatio/0.3, 1), m.RareWordRatio > 0.15
		},
	},
	{
		id:          "distinctive-voice",
		name:        "Distinctive Voice",
		description: "Certain words and phrases recur in a way that marks the writing as yours.",
		category:    "voice",
		eval: func(_ stylometry.Metrics, s semantic.Signature) (float64, bool) {
			grams := s.DistinctiveNGrams.Unigrams
			if len(grams) < distinctiveVoiceMinUnigrams {
				return 0, false
			}
			return textstat.Clamp01(meanDistinctiveness(grams) / 3), true
		},
	},
	{
		id:          "conceptual-depth",
		name:        "Conceptual Depth",
		description: "You engage with abstract ideas rather than surface detail alone.",
		category:    "semantic",
		eval: func(_ stylometry.Metrics, s semantic.Signature) (float64, bool) {
			return math.Min(s.ConceptualDepth, 1), s.ConceptualDepth > 0.4
		},
	},
}

var pitfallRules = []pitfallRule{
	{
		id:          "repetitive-vocabulary",
		name:        "Repetitive Vocabulary",
		description: "The same words come back often enough to be noticeable.",
		suggestion:  "Swap repeated words for synonyms or restructure the sentence around a new verb.",
		category:    "vocabulary",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (Severity, bool) {
			if m.Stats.Words == 0 || m.TypeTokenRatio >= 0.4 {
				return "", false
			}
			if m.TypeTokenRatio < 0.3 {
				return SeverityHigh, true
			}
			return SeverityMedium, true
		},
	},
	{
		id:          "complex-sentence-length",
		name:        "Complex Sentence Length",
		description: "Sentences run long enough to strain the reader.",
		suggestion:  "Split sentences over 25 words at their natural joins.",
		category:    "structure",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (Severity, bool) {
			if m.Stats.Sentences == 0 || m.AverageSentenceLength <= 25 {
				return "", false
			}
			if m.AverageSentenceLength > 35 {
				return SeverityHigh, true
			}
			return SeverityMedium, true
		},
	},
	{
		id:          "choppy-rhythm",
		name:        "Choppy Rhythm",
		description: "Short sentences follow each other without relief.",
		suggestion:  "Join related short sentences with a conjunction or a subordinate clause.",
		category:    "rhythm",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (Severity, bool) {
			if m.Stats.Sentences == 0 || m.AverageSentenceLength >= 12 {
				return "", false
			}
			if m.AverageSentenceLength < 8 {
				return SeverityHigh, true
			}
			return SeverityMedium, true
		},
	},
	{
		id:          "monotonous-structure",
		name:        "Monotonous Structure",
		description: "Most sentences are about the same length.",
		suggestion:  "Mix in a very short sentence or a long one after every few of average length.",
		category:    "rhythm",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (Severity, bool) {
			if m.Stats.Sentences < 2 || m.SentenceLengthStdDev >= 4 {
				return "", false
			}
			if m.SentenceLengthStdDev < 2 {
				return SeverityMedium, true
			}
			return SeverityLow, true
		},
	},
	{
		id:          "overly-formal",
		name:        "Overly Formal",
		description: "Formal connectives dominate and the prose feels stiff.",
		suggestion:  "Replace some connectives like \"furthermore\" or \"consequently\" with plainer words.",
		category:    "tone",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (Severity, bool) {
			return SeverityMedium, m.FormalityScore > 0.8
		},
	},
	{
		id:          "too-casual",
		name:        "Too Casual",
		description: "Slang and filler words outweigh the rest of the register.",
		suggestion:  "Trim filler such as \"stuff\" or \"kinda\" where the context is not conversational.",
		category:    "tone",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (Severity, bool) {
			return SeverityMedium, m.FormalityScore < 0.2
		},
	},
	{
		id:          "cliche-usage",
		name:        "Cliché Usage",
		description: "Stock business phrases stand in for specific language.",
		suggestion:  "Say exactly what the cliché was gesturing at.",
		category:    "originality",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (Severity, bool) {
			if m.ClicheRatio <= 0.02 {
				return "", false
			}
			if m.ClicheRatio > 0.05 {
				return SeverityHigh, true
			}
			return SeverityMedium, true
		},
	},
	{
		id:          "inconsistent-themes",
		name:        "Inconsistent Themes",
		description: "The samples wander across unrelated subjects and registers.",
		suggestion:  "Pick samples that represent the voice you want to keep, or focus each piece on one theme.",
		category:    "semantic",
		eval: func(_ stylometry.Metrics, s semantic.Signature) (Severity, bool) {
			return SeverityMedium, s.Centroid != nil && s.SemanticCohesion < 0.4
		},
	},
	{
		id:          "passive-voice-overuse",
		name:        "Passive Voice Overuse",
		description: "Many sentences hide who is doing the action.",
		suggestion:  "Put the actor first: \"the team shipped it\" rather than \"it was shipped\".",
		category:    "structure",
		eval: func(m stylometry.Metrics, _ semantic.Signature) (Severity, bool) {
			if m.PassiveVoiceRatio <= 0.3 {
				return "", false
			}
			if m.PassiveVoiceRatio > 0.5 {
				return SeverityHigh, true
			}
			return SeverityMedium, true
		},
	},
}
