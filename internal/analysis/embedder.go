package analysis

import (
	"time"

	"golang.org/x/time/rate"

	"voiceprint/internal/config"
	"voiceprint/internal/lexicon"
	"voiceprint/internal/semantic"
	"voiceprint/internal/xai"
)

// NewEmbedder returns the heuristic embedder, wrapped behind the remote
// analyzer when cfg has one configured.
func NewEmbedder(cfg config.Config, lex *lexicon.Lexicon, logger Logger) semantic.Embedder {
	heuristic := semantic.NewHeuristicEmbedder(lex)
	if !cfg.RemoteReady() {
		return heuristic
	}
	client := &xai.Client{
		BaseURL: cfg.Remote.BaseURL,
		APIKey:  cfg.Remote.APIKey,
		Model:   cfg.Remote.Model,
	}
	return &semantic.FallbackEmbedder{
		Primary:  semantic.AnalyzerEmbedder{Analyzer: client},
		Fallback: heuristic,
		Timeout:  cfg.Remote.Timeout(),
		Limiter:  newLimiter(cfg.Remote.RatePerMinute),
		Logger:   logger,
	}
}

// newLimiter allows perMinute calls per minute with a full-minute burst.
// Zero or negative means unlimited.
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}
