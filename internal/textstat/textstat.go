package textstat

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Stats struct {
	Words      int `json:"wordCount"`
	Sentences  int `json:"sentenceCount"`
	Paragraphs int `json:"paragraphCount"`
	Characters int `json:"characterCount"`
}

var nonWordRunes = regexp.MustCompile(`[^\p{L}\p{N}'\-\s]+`)
var sentenceSplit = regexp.MustCompile(`[.!?]+`)
var paragraphSplit = regexp.MustCompile(`\n[ \t\r\f\v]*\n`)

func TokenizeWords(text string) []string {
	return SplitWords(strings.ToLower(text))
}

// SplitWords applies the TokenizeWords rules but keeps the original casing.
func SplitWords(text string) []string {
	return strings.Fields(nonWordRunes.ReplaceAllString(text, " "))
}

// TokenizeSentences does not know about abbreviations: "Dr. Smith" yields two pieces.
func TokenizeSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func CountParagraphs(text string) int {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	count := 0
	for _, block := range paragraphSplit.Split(text, -1) {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

func BasicStats(text string) Stats {
	return Stats{
		Words:      len(TokenizeWords(text)),
		Sentences:  len(TokenizeSentences(text)),
		Paragraphs: CountParagraphs(text),
		Characters: utf8.RuneCountInString(strings.TrimSpace(text)),
	}
}

// SafeDiv returns x/n, or 0 when n is zero.
func SafeDiv(x float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return x / float64(n)
}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
