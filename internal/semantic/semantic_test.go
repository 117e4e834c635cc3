package semantic

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

type analyzerFunc func(ctx context.Context, text string) (string, error)

func (f analyzerFunc) Analyze(ctx context.Context, text string) (string, error) { return f(ctx, text) }

type embedderFunc func(ctx context.Context, text string) (Vector, error)

func (f embedderFunc) Embed(ctx context.Context, text string) (Vector, error) { return f(ctx, text) }

type captureLogger struct{ lines []string }

func (c *captureLogger) Log(level, stage, message, detail string) {
	c.lines = append(c.lines, level+" "+stage+" "+message+" "+detail)
}

const tenNumbers = "scores: 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0"

func TestCentroidAndCohesionEdges(t *testing.T) {
	if c := Centroid(nil); len(c) != 0 {
		t.Fatalf("expected empty centroid, got %v", c)
	}
	if got := SemanticCohesion(nil); got != 0 {
		t.Fatalf("expected cohesion 0 for no vectors, got %.3f", got)
	}
	if got := SemanticCohesion([]Vector{{0.2, 0.4}}); got != 1 {
		t.Fatalf("expected cohesion 1 for one vector, got %.3f", got)
	}
	if got := TopicDiversity([]Vector{{0.2, 0.4}}); got != 0 {
		t.Fatalf("expected diversity 0 for one vector, got %.3f", got)
	}
}

func TestCentroidIsElementwiseMean(t *testing.T) {
	got := Centroid([]Vector{{0, 1}, {1, 0}})
	if !reflect.DeepEqual(got, Vector{0.5, 0.5}) {
		t.Fatalf("unexpected centroid %v", got)
	}
}

func TestCohesionAndDiversity(t *testing.T) {
	vectors := []Vector{{0, 0}, {1, 0}}
	// each vector sits 0.5 from the centroid; sqrt(2) normalizes the distance
	want := 1 - 0.5/math.Sqrt(2)
	if got := SemanticCohesion(vectors); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected cohesion %.4f, got %.4f", want, got)
	}
	if got := TopicDiversity(vectors); got != 1 {
		t.Fatalf("expected diversity 1, got %.4f", got)
	}
	same := []Vector{{0.3, 0.3}, {0.3, 0.3}, {0.3, 0.3}}
	if got := SemanticCohesion(same); got != 1 {
		t.Fatalf("expected identical vectors to be fully cohesive, got %.4f", got)
	}
	if got := TopicDiversity(same); got != 0 {
		t.Fatalf("expected identical vectors to have zero diversity, got %.4f", got)
	}
}

func TestParseVector(t *testing.T) {
	v, err := ParseVector("dims 12 and 3.5 ignored. " + tenNumbers)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(v) != Dimensions || v[0] != 0.1 || v[9] != 1 {
		t.Fatalf("unexpected vector %v", v)
	}
	if _, err := ParseVector("0.1 0.2 0.3"); !errors.Is(err, ErrInsufficientVector) {
		t.Fatalf("expected ErrInsufficientVector, got %v", err)
	}
}

func TestParseVectorSkipsNegativeNumbers(t *testing.T) {
	reply := "Scores: -0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 0.1"
	if v, err := ParseVector(reply); !errors.Is(err, ErrInsufficientVector) {
		t.Fatalf("expected ErrInsufficientVector for a negative score, got %v %v", v, err)
	}
	v, err := ParseVector("-0.5 " + tenNumbers)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v[0] != 0.1 {
		t.Fatalf("negative value must be skipped, got %v", v)
	}
}

func TestHeuristicVectorDeterministicAndBounded(t *testing.T) {
	h := NewHeuristicEmbedder(nil)
	text := "I imagine the data. Therefore we must consider the evidence, and I love it!"
	a := h.Vector(text)
	b := h.Vector(text)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("heuristic vector not deterministic: %v vs %v", a, b)
	}
	if len(a) != Dimensions {
		t.Fatalf("expected %d dims, got %d", Dimensions, len(a))
	}
	for i, x := range a {
		if math.IsNaN(x) || x < 0 || x > 1 {
			t.Fatalf("dimension %d out of range: %v", i, x)
		}
	}
	for i, x := range h.Vector("") {
		if math.IsNaN(x) || x < 0 || x > 1 {
			t.Fatalf("empty text dimension %d out of range: %v", i, x)
		}
	}
}

func TestHeuristicTechnicalDepthCountsAllCaps(t *testing.T) {
	v := NewHeuristicEmbedder(nil).Vector("the API uses JSON over HTTP")
	if got := v[3]; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected technical depth 0.5, got %.3f", got)
	}
}

func TestFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	f := &FallbackEmbedder{Primary: AnalyzerEmbedder{Analyzer: analyzerFunc(func(context.Context, string) (string, error) {
		return tenNumbers, nil
	})}}
	v, err := f.Embed(context.Background(), "anything")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if v[0] != 0.1 {
		t.Fatalf("expected remote vector, got %v", v)
	}
}

func TestFallbackOnFailures(t *testing.T) {
	text := "A short sample. With two sentences."
	want := NewHeuristicEmbedder(nil).Vector(text)

	cases := map[string]Embedder{
		"error": AnalyzerEmbedder{Analyzer: analyzerFunc(func(context.Context, string) (string, error) {
			return "", errors.New("connection refused")
		})},
		"short reply": AnalyzerEmbedder{Analyzer: analyzerFunc(func(context.Context, string) (string, error) {
			return "0.1 0.2", nil
		})},
		"timeout": AnalyzerEmbedder{Analyzer: analyzerFunc(func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})},
		"wrong length": embedderFunc(func(context.Context, string) (Vector, error) {
			return Vector{0.1, 0.2}, nil
		}),
		"no analyzer": AnalyzerEmbedder{},
	}
	for name, primary := range cases {
		log := &captureLogger{}
		f := &FallbackEmbedder{Primary: primary, Timeout: 20 * time.Millisecond, Logger: log}
		got, err := f.Embed(context.Background(), text)
		if err != nil {
			t.Fatalf("%s: fallback must not error, got %v", name, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: expected heuristic vector, got %v", name, got)
		}
		if len(log.lines) != 1 || !strings.HasPrefix(log.lines[0], "RISK EMBEDDING") {
			t.Fatalf("%s: expected one RISK line, got %v", name, log.lines)
		}
	}
}

func TestFallbackLimiterDeniesWithoutCalling(t *testing.T) {
	called := false
	log := &captureLogger{}
	f := &FallbackEmbedder{
		Primary: AnalyzerEmbedder{Analyzer: analyzerFunc(func(context.Context, string) (string, error) {
			called = true
			return tenNumbers, nil
		})},
		Limiter: rate.NewLimiter(0, 0),
		Logger:  log,
	}
	if _, err := f.Embed(context.Background(), "text"); err != nil {
		t.Fatalf("embed: %v", err)
	}
	if called {
		t.Fatalf("primary must not be called when the limiter denies")
	}
	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "rate_limited") {
		t.Fatalf("expected rate_limited log line, got %v", log.lines)
	}
}

func TestExtractNGrams(t *testing.T) {
	got := ExtractNGrams([]string{
		"The quiet river runs. The quiet river sleeps!",
		"A quiet river, again.",
	})
	if len(got.Unigrams) == 0 || got.Unigrams[0].Phrase != "quiet" && got.Unigrams[0].Phrase != "river" {
		t.Fatalf("unexpected top unigram %+v", got.Unigrams)
	}
	if got.Unigrams[0].Frequency != 3 {
		t.Fatalf("expected frequency 3, got %d", got.Unigrams[0].Frequency)
	}
	if got.Bigrams[0].Phrase != "quiet river" || got.Bigrams[0].Frequency != 3 {
		t.Fatalf("unexpected top bigram %+v", got.Bigrams[0])
	}
	want := math.Log(4) + 0.2
	if math.Abs(got.Bigrams[0].Distinctiveness-want) > 1e-9 {
		t.Fatalf("expected distinctiveness %.4f, got %.4f", want, got.Bigrams[0].Distinctiveness)
	}
	for _, g := range got.Unigrams {
		if isShortWord(g.Phrase) {
			t.Fatalf("short words must be dropped, found %q", g.Phrase)
		}
	}
	if len(got.Unigrams) > 10 || len(got.Bigrams) > 5 || len(got.Trigrams) > 3 {
		t.Fatalf("n-gram lists exceed limits: %d/%d/%d", len(got.Unigrams), len(got.Bigrams), len(got.Trigrams))
	}
}

func isShortWord(phrase string) bool {
	return len([]rune(phrase)) <= 2
}

func TestExtractNGramsTieBreakIsDeterministic(t *testing.T) {
	a := ExtractNGrams([]string{"delta charlie bravo alpha"})
	b := ExtractNGrams([]string{"delta charlie bravo alpha"})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("n-gram ranking not deterministic")
	}
	if a.Unigrams[0].Phrase != "alpha" {
		t.Fatalf("expected alphabetical tie break, got %q", a.Unigrams[0].Phrase)
	}
}

func TestExtractSignature(t *testing.T) {
	texts := []string{
		"The theory of freedom shapes every idea. We walked along the river.",
		"Justice and truth guide the concept. Then the story ended.",
	}
	sig := Extract(context.Background(), texts, nil)
	if len(sig.Centroid) != Dimensions {
		t.Fatalf("expected %d-dim centroid, got %v", Dimensions, sig.Centroid)
	}
	if len(sig.Embeddings) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(sig.Embeddings))
	}
	if sig.SemanticCohesion <= 0 || sig.SemanticCohesion > 1 {
		t.Fatalf("cohesion out of range: %.3f", sig.SemanticCohesion)
	}
	if sig.ConceptualDepth <= 0.4 {
		t.Fatalf("expected abstract-heavy text to score depth > 0.4, got %.3f", sig.ConceptualDepth)
	}
	again := Extract(context.Background(), texts, nil)
	if !reflect.DeepEqual(sig, again) {
		t.Fatalf("signature not deterministic")
	}
}

func TestExtractWritingTempo(t *testing.T) {
	if got := writingTempo(0, 0); got != 0.5 {
		t.Fatalf("expected 0.5 for no sentences, got %.3f", got)
	}
	if got := writingTempo(15, 1); got != 0.5 {
		t.Fatalf("expected 0.5 at pivot, got %.3f", got)
	}
	if got := writingTempo(3, 1); got <= 0.5 {
		t.Fatalf("expected short sentences to raise tempo, got %.3f", got)
	}
}

func TestExtractDimensionMismatchYieldsDefault(t *testing.T) {
	calls := 0
	mixed := embedderFunc(func(context.Context, string) (Vector, error) {
		calls++
		if calls == 1 {
			return Vector{0.1, 0.2, 0.3}, nil
		}
		return Vector{0.1, 0.2}, nil
	})
	sig, err := ExtractWithError(context.Background(), []string{"one", "two"}, mixed)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if !reflect.DeepEqual(sig, DefaultSignature()) {
		t.Fatalf("expected default signature, got %+v", sig)
	}
}

func TestExtractRecoversFromPanic(t *testing.T) {
	boom := embedderFunc(func(context.Context, string) (Vector, error) { panic("boom") })
	sig := Extract(context.Background(), []string{"text"}, boom)
	want := DefaultSignature()
	if !reflect.DeepEqual(sig, want) {
		t.Fatalf("expected default signature, got %+v", sig)
	}
	if sig.Centroid != nil || sig.VocabularyRichness != 0.5 || sig.ConceptualDepth != 0.3 || sig.WritingTempo != 0.5 {
		t.Fatalf("unexpected default values %+v", sig)
	}
}

func TestExtractEmptySampleSet(t *testing.T) {
	sig := Extract(context.Background(), nil, nil)
	if sig.Centroid != nil || sig.SemanticCohesion != 0 || sig.TopicDiversity != 0 {
		t.Fatalf("expected empty semantic aggregate, got %+v", sig)
	}
	if sig.WritingTempo != 0.5 {
		t.Fatalf("expected neutral tempo, got %.3f", sig.WritingTempo)
	}
}
