package analysis

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"voiceprint/internal/chunk"
	"voiceprint/internal/lexicon"
	"voiceprint/internal/pipeline"
	"voiceprint/internal/semantic"
	"voiceprint/internal/stylometry"
	"voiceprint/internal/textstat"
	"voiceprint/internal/traits"
)

type Input struct {
	Samples []chunk.Segment `json:"samples"`
}

// FromTexts wraps plain strings as samples without a source.
func FromTexts(texts ...string) Input {
	in := Input{Samples: make([]chunk.Segment, 0, len(texts))}
	for i, t := range texts {
		in.Samples = append(in.Samples, chunk.Segment{Index: i, Text: t})
	}
	return in
}

type ErrorEntry struct {
	Stage     string `json:"stage"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Retryable bool   `json:"retryable"`
}

type SpanTrace struct {
	Name       string `json:"name"`
	DurationMs int64  `json:"duration_ms"`
	Status     string `json:"status"`
}

type SampleReport struct {
	chunk.Segment
	Stats   textstat.Stats     `json:"stats"`
	Metrics stylometry.Metrics `json:"metrics"`
}

type Report struct {
	RunID       string             `json:"run_id"`
	CreatedAt   time.Time          `json:"created_at"`
	Samples     []SampleReport     `json:"samples"`
	Stylometric stylometry.Metrics `json:"stylometric"`
	Semantic    semantic.Signature `json:"semantic"`
	Voiceprint  traits.Voiceprint  `json:"voiceprint"`
	Errors      []ErrorEntry       `json:"errors"`
	Traces      []SpanTrace        `json:"traces"`
	DurationMs  int64              `json:"duration_ms"`
}

type Config struct {
	Workers int
	// Lexicon defaults to lexicon.Default when nil.
	Lexicon *lexicon.Lexicon
}

type Logger interface {
	Log(level, stage, message, detail string)
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Analyze profiles one sample set. It always returns a structurally complete
// report; problems are recorded in Report.Errors rather than returned.
func Analyze(ctx context.Context, in Input, cfg Config, embedder semantic.Embedder, logger Logger) Report {
	startAll := time.Now()
	report := Report{
		RunID:     newRunID(),
		CreatedAt: startAll.UTC(),
		Samples:   []SampleReport{},
		Errors:    []ErrorEntry{},
		Traces:    []SpanTrace{},
	}
	lex := cfg.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	if embedder == nil {
		embedder = semantic.NewHeuristicEmbedder(lex)
	}
	style := stylometry.NewExtractor(lex)

	var samples []chunk.Segment
	withSpan(&report, "normalize_input", func() error {
		samples = normalizeSamples(in.Samples)
		return nil
	})
	logf(logger, "INFO", "NORMALIZE", fmt.Sprintf("%d of %d samples usable", len(samples), len(in.Samples)), report.RunID)

	if len(samples) == 0 {
		report.Errors = append(report.Errors, ErrorEntry{
			Stage:     "bad_input",
			Message:   "no non-empty samples",
			Type:      "bad_input",
			Retryable: false,
		})
		report.Stylometric = style.Extract("")
		report.Semantic = semantic.DefaultSignature()
		report.Voiceprint = traits.Generate(report.Stylometric, report.Semantic)
		report.DurationMs = time.Since(startAll).Milliseconds()
		logf(logger, "RISK", "INPUT", "Empty sample set, returning neutral voiceprint", "")
		return report
	}

	withSpan(&report, "sample_metrics", func() error {
		slots := make([]SampleReport, len(samples))
		filled := make([]bool, len(samples))
		errs := pipeline.Run(ctx, samples, cfg.Workers, func(_ context.Context, seg chunk.Segment) error {
			m := style.Extract(seg.Text)
			slots[seg.Index] = SampleReport{Segment: seg, Stats: m.Stats, Metrics: m}
			filled[seg.Index] = true
			return nil
		})
		report.Samples = compactSamples(slots, filled)
		return errors.Join(errs...)
	})

	texts := chunk.Texts(samples)
	withSpan(&report, "stylometric_profile", func() error {
		report.Stylometric = style.Extract(strings.Join(texts, "\n\n"))
		return nil
	})
	logf(logger, "ANALYSIS", "STYLOMETRY",
		fmt.Sprintf("%d words across %d sentences", report.Stylometric.Stats.Words, report.Stylometric.Stats.Sentences),
		fmt.Sprintf("ttr=%.3f formality=%.3f", report.Stylometric.TypeTokenRatio, report.Stylometric.FormalityScore))

	withSpan(&report, "semantic_signature", func() error {
		sig, err := semantic.NewExtractor(lex).ExtractWithError(ctx, texts, embedder)
		report.Semantic = sig
		return err
	})
	if report.Semantic.Centroid == nil {
		logf(logger, "RISK", "SEMANTIC", "Semantic signature fell back to defaults", "")
	} else {
		logf(logger, "ANALYSIS", "SEMANTIC", "Semantic signature ready",
			fmt.Sprintf("cohesion=%.3f diversity=%.3f", report.Semantic.SemanticCohesion, report.Semantic.TopicDiversity))
	}

	withSpan(&report, "voiceprint_traits", func() error {
		report.Voiceprint = traits.Generate(report.Stylometric, report.Semantic)
		return nil
	})
	report.DurationMs = time.Since(startAll).Milliseconds()
	logf(logger, "INFO", "DONE", report.Voiceprint.Summary, fmt.Sprintf("%dms", report.DurationMs))
	return report
}

// compactSamples drops slots the pool never reached, keeping each report's
// original Index.
func compactSamples(slots []SampleReport, filled []bool) []SampleReport {
	out := slots[:0]
	for i, s := range slots {
		if filled[i] {
			out = append(out, s)
		}
	}
	return out
}

func normalizeSamples(in []chunk.Segment) []chunk.Segment {
	out := make([]chunk.Segment, 0, len(in))
	for _, s := range in {
		s.Text = strings.TrimSpace(strings.ReplaceAll(s.Text, "\r\n", "\n"))
		if s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	return chunk.Reindex(out)
}

func withSpan(report *Report, name string, fn func() error) {
	start := time.Now()
	status := "ok"
	if err := fn(); err != nil {
		status = "error"
		kind := classifyErr(err)
		report.Errors = append(report.Errors, ErrorEntry{
			Stage:     name,
			Message:   err.Error(),
			Type:      kind,
			Retryable: kind == "timeout" || kind == "cancelled",
		})
	}
	report.Traces = append(report.Traces, SpanTrace{
		Name:       name,
		DurationMs: time.Since(start).Milliseconds(),
		Status:     status,
	})
}

func classifyErr(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, semantic.ErrDimensionMismatch):
		return "bad_response"
	default:
		return "exception"
	}
}

func logf(logger Logger, level, stage, message, detail string) {
	if logger != nil {
		logger.Log(level, stage, message, detail)
	}
}
