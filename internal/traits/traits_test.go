package traits

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"voiceprint/internal/semantic"
	"voiceprint/internal/stylometry"
	"voiceprint/internal/textstat"
)

func profile(texts ...string) (stylometry.Metrics, semantic.Signature) {
	m := stylometry.Extract(strings.Join(texts, "\n\n"))
	s := semantic.Extract(context.Background(), texts, nil)
	return m, s
}

func TestRepeatedShortSentenceScenario(t *testing.T) {
	m, s := profile(strings.Repeat("The cat sat. ", 20))
	vp := Generate(m, s)

	want := []struct {
		id       string
		severity Severity
	}{
		{"repetitive-vocabulary", SeverityHigh},
		{"choppy-rhythm", SeverityHigh},
		{"monotonous-structure", SeverityMedium},
	}
	if len(vp.Pitfalls) != len(want) {
		t.Fatalf("expected %d pitfalls, got %+v", len(want), vp.Pitfalls)
	}
	for i, w := range want {
		if vp.Pitfalls[i].ID != w.id || vp.Pitfalls[i].Severity != w.severity {
			t.Fatalf("pitfall %d: expected %s/%s, got %s/%s", i, w.id, w.severity, vp.Pitfalls[i].ID, vp.Pitfalls[i].Severity)
		}
	}
	for _, tr := range vp.SignatureTraits {
		switch tr.Category {
		case "vocabulary", "rhythm", "structure":
			t.Fatalf("unexpected stylistic trait %s", tr.ID)
		}
	}
}

func neutralParagraph(topic string) string {
	sentences := []string{
		"The " + topic + " sat near the old road where travelers stopped to rest their tired feet.",
		"Each morning a small group of people gathered there to share bread and news from town.",
		"Children ran between the tall trees while their parents talked about the coming harvest season.",
		"By noon the sun was high and the air smelled of dry grass and distant rain clouds.",
	}
	var b strings.Builder
	for len(textstat.TokenizeWords(b.String())) < 200 {
		for _, s := range sentences {
			b.WriteString(s)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

func TestNeutralParagraphsScenario(t *testing.T) {
	m, s := profile(neutralParagraph("inn"), neutralParagraph("farm"), neutralParagraph("mill"))
	if m.FormalityScore != 0.5 {
		t.Fatalf("expected neutral formality 0.5, got %.3f", m.FormalityScore)
	}
	vp := Generate(m, s)
	for _, p := range vp.Pitfalls {
		if p.ID == "overly-formal" || p.ID == "too-casual" || p.ID == "cliche-usage" {
			t.Fatalf("unexpected pitfall %s", p.ID)
		}
	}
}

func TestTraitsSortedByStrengthTopThree(t *testing.T) {
	m := stylometry.Metrics{
		TypeTokenRatio:       0.75,
		SentenceLengthStdDev: 12,
		ComplexSentenceRatio: 0.9,
		FormalityScore:       0.5,
	}
	got := Traits(m, semantic.DefaultSignature())
	ids := []string{"balanced-tone", "sophisticated-structure", "varied-rhythm"}
	if len(got) != 3 {
		t.Fatalf("expected 3 traits, got %+v", got)
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Fatalf("trait %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if math.Abs(got[2].Strength-0.8) > 1e-9 {
		t.Fatalf("expected varied rhythm strength 0.8, got %.3f", got[2].Strength)
	}
}

func TestPitfallsSortedBySeverity(t *testing.T) {
	m := stylometry.Metrics{
		Stats:                 textstat.Stats{Words: 100, Sentences: 5},
		TypeTokenRatio:        0.5,
		AverageSentenceLength: 15,
		SentenceLengthStdDev:  3,
		FormalityScore:        0.9,
		ClicheRatio:           0.03,
		PassiveVoiceRatio:     0.6,
	}
	got := Pitfalls(m, semantic.DefaultSignature())
	ids := []string{"passive-voice-overuse", "overly-formal", "cliche-usage"}
	if len(got) != 3 {
		t.Fatalf("expected 3 pitfalls, got %+v", got)
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Fatalf("pitfall %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if got[0].Severity != SeverityHigh || got[1].Severity != SeverityMedium {
		t.Fatalf("unexpected severities %+v", got)
	}
	if got[0].Suggestion == "" {
		t.Fatalf("pitfalls must carry a suggestion")
	}
}

func TestInconsistentThemesNeedsCentroid(t *testing.T) {
	m := stylometry.Metrics{FormalityScore: 0.5}
	s := semantic.DefaultSignature()
	for _, p := range Pitfalls(m, s) {
		if p.ID == "inconsistent-themes" {
			t.Fatalf("default signature must not trigger inconsistent themes")
		}
	}
	s.Centroid = semantic.Vector{0.1}
	s.SemanticCohesion = 0.2
	found := false
	for _, p := range Pitfalls(m, s) {
		found = found || p.ID == "inconsistent-themes"
	}
	if !found {
		t.Fatalf("expected inconsistent themes for low cohesion")
	}
}

func TestMonotonousStructureNeedsTwoSentences(t *testing.T) {
	m, s := profile("A single sentence with nothing to compare it against")
	if m.SentenceLengthStdDev != 0 {
		t.Fatalf("expected zero deviation for one sentence, got %v", m.SentenceLengthStdDev)
	}
	for _, p := range Pitfalls(m, s) {
		if p.ID == "monotonous-structure" {
			t.Fatalf("one sentence must not count as monotonous: %+v", p)
		}
	}
}

func TestDistinctiveVoiceNeedsFiveUnigrams(t *testing.T) {
	s := semantic.DefaultSignature()
	for i := 0; i < 4; i++ {
		s.DistinctiveNGrams.Unigrams = append(s.DistinctiveNGrams.Unigrams, semantic.NGram{Phrase: "w", Frequency: 5, Distinctiveness: 1.5})
	}
	if hasTrait(Traits(stylometry.Metrics{}, s), "distinctive-voice") {
		t.Fatalf("four unigrams must not fire distinctive voice")
	}
	s.DistinctiveNGrams.Unigrams = append(s.DistinctiveNGrams.Unigrams, semantic.NGram{Phrase: "x", Frequency: 5, Distinctiveness: 1.5})
	got := Traits(stylometry.Metrics{}, s)
	if !hasTrait(got, "distinctive-voice") || got[0].Strength != 0.5 {
		t.Fatalf("expected distinctive voice at 0.5, got %+v", got)
	}
}

func hasTrait(list []Trait, id string) bool {
	for _, tr := range list {
		if tr.ID == id {
			return true
		}
	}
	return false
}

func TestTargetThresholdsClampOptimal(t *testing.T) {
	got := TargetThresholds(stylometry.Metrics{TypeTokenRatio: 0}, semantic.DefaultSignature())
	ttr := got["typeTokenRatio"]
	if ttr.Optimal != 0.5 || math.Abs(ttr.Min-0.4) > 1e-9 || math.Abs(ttr.Max-0.6) > 1e-9 {
		t.Fatalf("unexpected ttr threshold %+v", ttr)
	}
	high := TargetThresholds(stylometry.Metrics{TypeTokenRatio: 0.95}, semantic.DefaultSignature())["typeTokenRatio"]
	if high.Optimal != 0.8 || math.Abs(high.Max-0.9) > 1e-9 {
		t.Fatalf("unexpected clamped ttr threshold %+v", high)
	}
	if len(got) != len(IdealRanges) {
		t.Fatalf("expected %d thresholds, got %d", len(IdealRanges), len(got))
	}
}

func TestTargetThresholdsWordCountMetricCappedAtOne(t *testing.T) {
	got := TargetThresholds(stylometry.Metrics{AverageSentenceLength: 18}, semantic.DefaultSignature())["averageSentenceLength"]
	if got.Optimal != 18 || got.Min != 15 || got.Max != 1 {
		t.Fatalf("expected {15 1 18}, got %+v", got)
	}
}

func TestTinyInputHasNoNaN(t *testing.T) {
	m, s := profile("hi!!!")
	vp := Generate(m, s)
	for _, tr := range vp.SignatureTraits {
		if math.IsNaN(tr.Strength) || tr.Strength < 0 || tr.Strength > 1 {
			t.Fatalf("bad strength for %s: %v", tr.ID, tr.Strength)
		}
	}
	for name, th := range vp.TargetThresholds {
		if math.IsNaN(th.Min) || math.IsNaN(th.Max) || math.IsNaN(th.Optimal) {
			t.Fatalf("NaN threshold for %s", name)
		}
	}
	if _, err := json.Marshal(vp); err != nil {
		t.Fatalf("voiceprint must marshal: %v", err)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	m, s := profile("I walked home. The rain was heavy, and the streets were empty.", "Later I wrote about it.")
	a, _ := json.Marshal(Generate(m, s))
	b, _ := json.Marshal(Generate(m, s))
	if string(a) != string(b) {
		t.Fatalf("output differs between runs:\n%s\n%s", a, b)
	}
}

func TestSummaryVariants(t *testing.T) {
	traits := []Trait{{Name: "Rich Vocabulary"}, {Name: "Varied Rhythm"}}
	pitfalls := []Pitfall{{Name: "Choppy Rhythm"}}
	if got := Summary(traits, pitfalls); got != "Your writing stands out for rich vocabulary and varied rhythm. Watch out for choppy rhythm." {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := Summary(nil, nil); !strings.Contains(got, "No major pitfalls") {
		t.Fatalf("unexpected empty summary %q", got)
	}
	if got := Summary(traits[:1], nil); !strings.HasPrefix(got, "Your writing stands out for rich vocabulary.") {
		t.Fatalf("unexpected single trait summary %q", got)
	}
}
