// Package traits turns stylometric metrics and a semantic signature into a
// voiceprint: ranked signature traits, ranked pitfalls, target ranges and a
// one-line summary. Everything here is a pure function of its inputs.
package traits

import (
	"math"
	"sort"

	"voiceprint/internal/semantic"
	"voiceprint/internal/stylometry"
	"voiceprint/internal/textstat"
)

const maxListed = 3

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

type Trait struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Strength    float64 `json:"strength"`
	Category    string  `json:"category"`
}

type Pitfall struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Suggestion  string   `json:"suggestion"`
	Category    string   `json:"category"`
}

type Threshold struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Optimal float64 `json:"optimal"`
}

// Thresholds is keyed by metric name, e.g. "typeTokenRatio".
type Thresholds map[string]Threshold

type Voiceprint struct {
	SignatureTraits  []Trait    `json:"signatureTraits"`
	Pitfalls         []Pitfall  `json:"pitfalls"`
	TargetThresholds Thresholds `json:"targetThresholds"`
	Summary          string     `json:"summary"`
}

func Generate(m stylometry.Metrics, s semantic.Signature) Voiceprint {
	traits := Traits(m, s)
	pitfalls := Pitfalls(m, s)
	return Voiceprint{
		SignatureTraits:  traits,
		Pitfalls:         pitfalls,
		TargetThresholds: TargetThresholds(m, s),
		Summary:          Summary(traits, pitfalls),
	}
}

// Traits evaluates every trait rule in order, then keeps the strongest three.
// Equal strengths keep rule order.
func Traits(m stylometry.Metrics, s semantic.Signature) []Trait {
	out := make([]Trait, 0, len(traitRules))
	for _, rule := range traitRules {
		strength, ok := rule.eval(m, s)
		if !ok {
			continue
		}
		out = append(out, Trait{
			ID:          rule.id,
			Name:        rule.name,
			Description: rule.description,
			Strength:    finite(strength),
			Category:    rule.category,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Strength > out[j].Strength })
	if len(out) > maxListed {
		out = out[:maxListed]
	}
	return out
}

// Pitfalls evaluates every pitfall rule in order, then keeps the three most
// severe. Equal severities keep rule order.
func Pitfalls(m stylometry.Metrics, s semantic.Signature) []Pitfall {
	out := make([]Pitfall, 0, len(pitfallRules))
	for _, rule := range pitfallRules {
		severity, ok := rule.eval(m, s)
		if !ok {
			continue
		}
		out = append(out, Pitfall{
			ID:          rule.id,
			Name:        rule.name,
			Description: rule.description,
			Severity:    severity,
			Suggestion:  rule.suggestion,
			Category:    rule.category,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Severity.rank() > out[j].Severity.rank() })
	if len(out) > maxListed {
		out = out[:maxListed]
	}
	return out
}

// TargetThresholds applies one clamp formula to every metric in IdealRanges.
// The upper bound is capped at 1 even for word-count metrics such as
// averageSentenceLength, so their min can exceed their max.
func TargetThresholds(m stylometry.Metrics, s semantic.Signature) Thresholds {
	current := map[string]float64{
		"typeTokenRatio":        m.TypeTokenRatio,
		"averageSentenceLength": m.AverageSentenceLength,
		"sentenceLengthStdDev":  m.SentenceLengthStdDev,
		"complexSentenceRatio":  m.ComplexSentenceRatio,
		"formalityScore":        m.FormalityScore,
		"rareWordRatio":         m.RareWordRatio,
		"semanticCohesion":      s.SemanticCohesion,
		"clicheRatio":           m.ClicheRatio,
	}
	out := make(Thresholds, len(IdealRanges))
	for _, r := range IdealRanges {
		out[r.Metric] = r.target(finite(current[r.Metric]))
	}
	return out
}

func (r IdealRange) target(current float64) Threshold {
	optimal := math.Min(math.Max(current, r.IdealMin), r.IdealMax)
	return Threshold{
		Min:     math.Max(0, optimal-r.Tolerance),
		Max:     math.Min(1, optimal+r.Tolerance),
		Optimal: optimal,
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func meanDistinctiveness(grams []semantic.NGram) float64 {
	total := 0.0
	for _, g := range grams {
		total += g.Distinctiveness
	}
	return textstat.SafeDiv(total, len(grams))
}
