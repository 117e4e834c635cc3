package semantic

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"voiceprint/internal/textstat"
)

type NGram struct {
	Phrase          string  `json:"phrase"`
	Frequency       int     `json:"frequency"`
	Distinctiveness float64 `json:"distinctiveness"`
}

type NGrams struct {
	Unigrams []NGram `json:"unigrams"`
	Bigrams  []NGram `json:"bigrams"`
	Trigrams []NGram `json:"trigrams"`
}

const (
	topUnigrams   = 10
	topBigrams    = 5
	topTrigrams   = 3
	minNGramRunes = 3
)

var ngramPunct = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

func emptyNGrams() NGrams {
	return NGrams{Unigrams: []NGram{}, Bigrams: []NGram{}, Trigrams: []NGram{}}
}

// ExtractNGrams counts n-grams of length 1..3 over every sample and keeps the
// most distinctive ones. N-grams never span two samples.
func ExtractNGrams(texts []string) NGrams {
	counts := [3]map[string]int{{}, {}, {}}
	for _, text := range texts {
		words := ngramWords(text)
		for n := 1; n <= 3; n++ {
			for i := 0; i+n <= len(words); i++ {
				counts[n-1][strings.Join(words[i:i+n], " ")]++
			}
		}
	}
	return NGrams{
		Unigrams: rankNGrams(counts[0], 1, topUnigrams),
		Bigrams:  rankNGrams(counts[1], 2, topBigrams),
		Trigrams: rankNGrams(counts[2], 3, topTrigrams),
	}
}

func ngramWords(text string) []string {
	fields := strings.Fields(strings.ToLower(ngramPunct.ReplaceAllString(text, "")))
	out := fields[:0]
	for _, w := range fields {
		if textstat.RuneLen(w) >= minNGramRunes {
			out = append(out, w)
		}
	}
	return out
}

// Distinctiveness is ln(freq+1) + 0.1 per word in the phrase.
func Distinctiveness(frequency, words int) float64 {
	return math.Log(float64(frequency)+1) + 0.1*float64(words)
}

func rankNGrams(counts map[string]int, n, limit int) []NGram {
	out := make([]NGram, 0, len(counts))
	for phrase, freq := range counts {
		out = append(out, NGram{Phrase: phrase, Frequency: freq, Distinctiveness: Distinctiveness(freq, n)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distinctiveness != out[j].Distinctiveness {
			return out[i].Distinctiveness > out[j].Distinctiveness
		}
		return out[i].Phrase < out[j].Phrase
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
