package stylometry

import (
	"math"
	"regexp"
	"strings"

	"voiceprint/internal/lexicon"
	"voiceprint/internal/textstat"
)

type Metrics struct {
	TypeTokenRatio        float64            `json:"typeTokenRatio"`
	UniqueWordRatio       float64            `json:"uniqueWordRatio"`
	AverageWordLength     float64            `json:"averageWordLength"`
	AverageSentenceLength float64            `json:"averageSentenceLength"`
	SentenceLengthStdDev  float64            `json:"sentenceLengthStdDev"`
	ComplexSentenceRatio  float64            `json:"complexSentenceRatio"`
	PunctuationDensity    map[string]float64 `json:"punctuationDensity"`
	// ClauseRatio is clauses per sentence, so it is >= 1 whenever the text has a sentence.
	ClauseRatio       float64        `json:"clauseRatio"`
	PassiveVoiceRatio float64        `json:"passiveVoiceRatio"`
	RareWordRatio     float64        `json:"rareWordRatio"`
	ClicheRatio       float64        `json:"clicheRatio"`
	FormalityScore    float64        `json:"formalityScore"`
	Stats             textstat.Stats `json:"stats"`
}

const (
	rareWordMinRunes = 7
	neutralFormality = 0.5
)

var passivePattern = regexp.MustCompile(`(?i)\b(is|are|was|were|been|being)\s+[\p{L}']+(ed|en)\b`)

type Extractor struct {
	conjunctions  map[string]struct{}
	clauseMarkers map[string]struct{}
	formal        map[string]struct{}
	informal      map[string]struct{}
	cliches       []*regexp.Regexp
	punctuation   []string
}

func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	cliches := make([]*regexp.Regexp, 0, len(lex.Cliches))
	for _, phrase := range lex.Cliches {
		cliches = append(cliches, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(phrase)+`\b`))
	}
	return &Extractor{
		conjunctions:  lexicon.Set(lex.Conjunctions),
		clauseMarkers: lexicon.Set(lex.ClauseMarkers),
		formal:        lexicon.Set(lex.Formal),
		informal:      lexicon.Set(lex.Informal),
		cliches:       cliches,
		punctuation:   append([]string(nil), lex.Punctuation...),
	}
}

var defaultExtractor = NewExtractor(nil)

func Extract(text string) Metrics {
	return defaultExtractor.Extract(text)
}

func (e *Extractor) Extract(text string) Metrics {
	words := textstat.TokenizeWords(text)
	sentences := textstat.TokenizeSentences(text)
	stats := textstat.BasicStats(text)

	sentenceLengths := make([]float64, 0, len(sentences))
	complexCount := 0
	passiveCount := 0
	clauseTotal := 0.0
	for _, s := range sentences {
		sw := textstat.TokenizeWords(s)
		sentenceLengths = append(sentenceLengths, float64(len(sw)))
		commas := strings.Count(s, ",")
		if commas >= 2 || lexicon.Count(sw, e.conjunctions) > 0 {
			complexCount++
		}
		clauses := lexicon.Count(sw, e.clauseMarkers) + commas/2 + 1
		clauseTotal += float64(max(1, clauses))
		if passivePattern.MatchString(s) {
			passiveCount++
		}
	}
	_, sd := meanStd(sentenceLengths)

	return Metrics{
		TypeTokenRatio:        TypeTokenRatio(words),
		UniqueWordRatio:       uniqueWordRatio(words),
		AverageWordLength:     averageWordLength(words),
		AverageSentenceLength: textstat.SafeDiv(float64(len(words)), len(sentences)),
		SentenceLengthStdDev:  sd,
		ComplexSentenceRatio:  textstat.SafeDiv(float64(complexCount), len(sentences)),
		PunctuationDensity:    e.punctuationDensity(text, stats.Characters),
		ClauseRatio:           textstat.SafeDiv(clauseTotal, len(sentences)),
		PassiveVoiceRatio:     textstat.SafeDiv(float64(passiveCount), len(sentences)),
		RareWordRatio:         rareWordRatio(words),
		ClicheRatio:           e.clicheRatio(text, len(words)),
		FormalityScore:        e.FormalityScore(words),
		Stats:                 stats,
	}
}

func TypeTokenRatio(words []string) float64 {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	return textstat.SafeDiv(float64(len(seen)), len(words))
}

func uniqueWordRatio(words []string) float64 {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}
	once := 0
	for _, n := range freq {
		if n == 1 {
			once++
		}
	}
	return textstat.SafeDiv(float64(once), len(words))
}

func averageWordLength(words []string) float64 {
	total := 0
	for _, w := range words {
		total += textstat.RuneLen(w)
	}
	return textstat.SafeDiv(float64(total), len(words))
}

func rareWordRatio(words []string) float64 {
	rare := 0
	for _, w := range words {
		if textstat.RuneLen(w) >= rareWordMinRunes {
			rare++
		}
	}
	return textstat.SafeDiv(float64(rare), len(words))
}

func (e *Extractor) punctuationDensity(text string, characters int) map[string]float64 {
	out := make(map[string]float64, len(e.punctuation))
	for _, mark := range e.punctuation {
		out[mark] = textstat.SafeDiv(float64(strings.Count(text, mark)), characters)
	}
	return out
}

func (e *Extractor) clicheRatio(text string, wordCount int) float64 {
	hits := 0
	for _, re := range e.cliches {
		hits += len(re.FindAllStringIndex(text, -1))
	}
	return textstat.Clamp01(textstat.SafeDiv(float64(hits), wordCount))
}

// FormalityScore is formal/(formal+informal) marker hits, 0.5 when neither appears.
func (e *Extractor) FormalityScore(words []string) float64 {
	formal := lexicon.Count(words, e.formal)
	informal := lexicon.Count(words, e.informal)
	if formal+informal == 0 {
		return neutralFormality
	}
	return float64(formal) / float64(formal+informal)
}

// meanStd returns the population standard deviation, 0 for fewer than two values.
func meanStd(values []float64) (mean, sd float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if len(values) == 1 {
		return mean, 0
	}
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}
