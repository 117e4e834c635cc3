package semantic

import "errors"

var (
	// ErrInsufficientVector means a remote reply held fewer than Dimensions usable numbers.
	ErrInsufficientVector = errors.New("insufficient numeric values for embedding")

	// ErrDimensionMismatch means embeddings in one sample set disagree on length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrRateLimited means the remote call budget was spent and the call was skipped.
	ErrRateLimited = errors.New("remote analyzer rate limited")

	// ErrAnalyzerUnavailable means no remote analyzer is configured.
	ErrAnalyzerUnavailable = errors.New("remote analyzer unavailable")
)
