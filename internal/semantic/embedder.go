package semantic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/time/rate"

	"voiceprint/internal/lexicon"
	"voiceprint/internal/stylometry"
	"voiceprint/internal/textstat"
)

// Dimensions is the length of every vector this package produces.
const Dimensions = 10

const (
	DefaultTimeout      = 8 * time.Second
	idealSentenceLength = 15.0
	technicalMinRunes   = 9
)

type Embedder interface {
	Embed(ctx context.Context, text string) (Vector, error)
}

// Analyzer is the remote semantic-analysis capability: text in, free text out.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

type Logger interface {
	Log(level, stage, message, detail string)
}

// HeuristicEmbedder derives a deterministic vector from marker densities. It never fails.
type HeuristicEmbedder struct {
	lex       *lexicon.Lexicon
	style     *stylometry.Extractor
	creative  map[string]struct{}
	emotion   map[string]struct{}
	persuade  map[string]struct{}
	narrative map[string]struct{}
	analytic  map[string]struct{}
	personal  map[string]struct{}
}

func NewHeuristicEmbedder(lex *lexicon.Lexicon) *HeuristicEmbedder {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &HeuristicEmbedder{
		lex:       lex,
		style:     stylometry.NewExtractor(lex),
		creative:  lexicon.Set(lex.Creativity),
		emotion:   lexicon.Set(lex.Emotion),
		persuade:  lexicon.Set(lex.Persuasion),
		narrative: lexicon.Set(lex.Narrative),
		analytic:  lexicon.Set(lex.Analytical),
		personal:  lexicon.Set(lex.PersonalVoice),
	}
}

func (h *HeuristicEmbedder) Embed(_ context.Context, text string) (Vector, error) {
	return h.Vector(text), nil
}

// Vector dimensions, in order: length-complexity, formality, creativity,
// technical depth, emotion, clarity, persuasiveness, narrative, analytical,
// personal voice.
func (h *HeuristicEmbedder) Vector(text string) Vector {
	raw := textstat.SplitWords(text)
	words := textstat.TokenizeWords(text)
	sentences := textstat.TokenizeSentences(text)

	avgWordLen := 0.0
	technical := 0
	for _, w := range raw {
		n := textstat.RuneLen(w)
		avgWordLen += float64(n)
		if n >= technicalMinRunes || isAllCaps(w) {
			technical++
		}
	}
	avgWordLen = textstat.SafeDiv(avgWordLen, len(raw))
	avgSentLen := textstat.SafeDiv(float64(len(words)), len(sentences))

	d := h.lex.Denominators
	return Vector{
		0.5*textstat.Clamp01(avgWordLen/8) + 0.5*textstat.Clamp01(avgSentLen/30),
		h.style.FormalityScore(words),
		density(words, h.creative, d.Creativity),
		textstat.SafeDiv(float64(technical), len(raw)),
		density(words, h.emotion, d.Emotion),
		clarity(avgSentLen, len(sentences)),
		density(words, h.persuade, d.Persuasion),
		density(words, h.narrative, d.Narrative),
		density(words, h.analytic, d.Analytical),
		density(words, h.personal, d.PersonalVoice),
	}
}

func density(words []string, set map[string]struct{}, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return textstat.Clamp01(float64(lexicon.Count(words, set)) / denominator)
}

func clarity(avgSentenceLength float64, sentences int) float64 {
	if sentences == 0 {
		return 0
	}
	return textstat.Clamp01(1 - math.Abs(avgSentenceLength-idealSentenceLength)/30)
}

func isAllCaps(word string) bool {
	letters := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

// AnalyzerEmbedder turns a free-text remote reply into a vector by pulling out
// the first Dimensions numbers that fall inside [0,1].
type AnalyzerEmbedder struct {
	Analyzer Analyzer
}

var numberPattern = regexp.MustCompile(`-?\d*\.?\d+`)

func (a AnalyzerEmbedder) Embed(ctx context.Context, text string) (Vector, error) {
	if a.Analyzer == nil {
		return nil, ErrAnalyzerUnavailable
	}
	reply, err := a.Analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	return ParseVector(reply)
}

func ParseVector(reply string) (Vector, error) {
	out := make(Vector, 0, Dimensions)
	for _, tok := range numberPattern.FindAllString(reply, -1) {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || v < 0 || v > 1 {
			continue
		}
		out = append(out, v)
		if len(out) == Dimensions {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: got %d of %d", ErrInsufficientVector, len(out), Dimensions)
}

// FallbackEmbedder tries Primary once and substitutes Fallback on any failure.
// It never retries, never waits on the limiter and never returns an error.
type FallbackEmbedder struct {
	Primary  Embedder
	Fallback *HeuristicEmbedder
	Timeout  time.Duration
	Limiter  *rate.Limiter
	Logger   Logger
}

func (f *FallbackEmbedder) Embed(ctx context.Context, text string) (Vector, error) {
	if f.Primary != nil {
		v, err := f.tryPrimary(ctx, text)
		if err == nil {
			return v, nil
		}
		f.log("RISK", "EMBEDDING", "Remote embedding unavailable, using heuristic vector", classifyErr(err)+": "+err.Error())
	}
	return f.fallback().Vector(text), nil
}

func (f *FallbackEmbedder) tryPrimary(ctx context.Context, text string) (Vector, error) {
	if f.Limiter != nil && !f.Limiter.Allow() {
		return nil, ErrRateLimited
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	v, err := f.Primary.Embed(callCtx, text)
	if err != nil {
		return nil, err
	}
	if len(v) != Dimensions {
		return nil, fmt.Errorf("%w: got %d of %d", ErrInsufficientVector, len(v), Dimensions)
	}
	return v, nil
}

func (f *FallbackEmbedder) fallback() *HeuristicEmbedder {
	if f.Fallback != nil {
		return f.Fallback
	}
	return defaultHeuristic
}

func (f *FallbackEmbedder) log(level, stage, message, detail string) {
	if f.Logger != nil {
		f.Logger.Log(level, stage, message, detail)
	}
}

var defaultHeuristic = NewHeuristicEmbedder(nil)

// GenerateTextEmbedding uses embedder when given, the heuristic otherwise.
func GenerateTextEmbedding(ctx context.Context, embedder Embedder, text string) Vector {
	if embedder == nil {
		return defaultHeuristic.Vector(text)
	}
	v, err := embedder.Embed(ctx, text)
	if err != nil || len(v) == 0 {
		return defaultHeuristic.Vector(text)
	}
	return v
}

func classifyErr(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrInsufficientVector):
		return "bad_response"
	case errors.Is(err, ErrAnalyzerUnavailable):
		return "tool_unavailable"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "timeout"
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "unavailable"):
		return "tool_unavailable"
	default:
		return "exception"
	}
}
