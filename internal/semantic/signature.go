package semantic

import (
	"context"
	"fmt"
	"strings"

	"voiceprint/internal/lexicon"
	"voiceprint/internal/stylometry"
	"voiceprint/internal/textstat"
)

// Signature is the semantic side of a voiceprint for one sample set.
type Signature struct {
	// Centroid is nil when no sample produced a usable vector.
	Centroid           Vector   `json:"centroid"`
	SemanticCohesion   float64  `json:"semanticCohesion"`
	TopicDiversity     float64  `json:"topicDiversity"`
	DistinctiveNGrams  NGrams   `json:"distinctiveNGrams"`
	VocabularyRichness float64  `json:"vocabularyRichness"`
	ConceptualDepth    float64  `json:"conceptualDepth"`
	WritingTempo       float64  `json:"writingTempo"`
	Embeddings         []Vector `json:"embeddings,omitempty"`
}

const (
	defaultRichness = 0.5
	defaultDepth    = 0.3
	defaultTempo    = 0.5

	depthScale = 10.0
	tempoPivot = 15.0
	tempoSpan  = 30.0
)

// DefaultSignature is returned whenever the signature pipeline cannot finish.
func DefaultSignature() Signature {
	return Signature{
		DistinctiveNGrams:  emptyNGrams(),
		VocabularyRichness: defaultRichness,
		ConceptualDepth:    defaultDepth,
		WritingTempo:       defaultTempo,
	}
}

type Extractor struct {
	abstract map[string]struct{}
}

func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Extractor{abstract: lexicon.Set(lex.Abstract)}
}

var defaultExtractor = NewExtractor(nil)

func Extract(ctx context.Context, texts []string, embedder Embedder) Signature {
	return defaultExtractor.Extract(ctx, texts, embedder)
}

func ExtractWithError(ctx context.Context, texts []string, embedder Embedder) (Signature, error) {
	return defaultExtractor.ExtractWithError(ctx, texts, embedder)
}

// Extract never fails: any error inside the pipeline yields DefaultSignature.
func (e *Extractor) Extract(ctx context.Context, texts []string, embedder Embedder) Signature {
	sig, err := e.ExtractWithError(ctx, texts, embedder)
	if err != nil {
		return DefaultSignature()
	}
	return sig
}

// ExtractWithError is Extract with the failure reason kept. The returned
// signature is DefaultSignature whenever err is non-nil.
func (e *Extractor) ExtractWithError(ctx context.Context, texts []string, embedder Embedder) (sig Signature, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig = DefaultSignature()
			err = fmt.Errorf("semantic signature: recovered: %v", r)
		}
	}()

	vectors := make([]Vector, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return DefaultSignature(), err
		}
		v := GenerateTextEmbedding(ctx, embedder, text)
		if len(v) == 0 {
			continue
		}
		vectors = append(vectors, v)
	}

	sig = Signature{
		DistinctiveNGrams: ExtractNGrams(texts),
		Embeddings:        vectors,
	}
	if len(vectors) > 0 {
		if err := checkDimensions(vectors); err != nil {
			return DefaultSignature(), err
		}
		sig.Centroid = Centroid(vectors)
	}
	sig.SemanticCohesion = SemanticCohesion(vectors)
	sig.TopicDiversity = TopicDiversity(vectors)

	combined := strings.Join(texts, "\n\n")
	words := textstat.TokenizeWords(combined)
	sentences := textstat.TokenizeSentences(combined)
	sig.VocabularyRichness = stylometry.TypeTokenRatio(words)
	sig.ConceptualDepth = textstat.Clamp01(textstat.SafeDiv(float64(lexicon.Count(words, e.abstract)), len(words)) * depthScale)
	sig.WritingTempo = writingTempo(len(words), len(sentences))
	return sig, nil
}

// writingTempo is 0.5 at 15 words per sentence, higher for shorter sentences.
func writingTempo(words, sentences int) float64 {
	if sentences == 0 {
		return defaultTempo
	}
	avg := textstat.SafeDiv(float64(words), sentences)
	return textstat.Clamp01(0.5 + (tempoPivot-avg)/tempoSpan)
}
