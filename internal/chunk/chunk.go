package chunk

import (
	"regexp"
	"strings"
)

// Segment is one writing sample. StartToken and EndToken are set only for
// segments cut by SlidingWindow.
type Segment struct {
	Index      int    `json:"index"`
	Source     string `json:"source,omitempty"`
	StartToken int    `json:"startToken,omitempty"`
	EndToken   int    `json:"endToken,omitempty"`
	Text       string `json:"-"`
}

var separatorLine = regexp.MustCompile(`(?m)^[ \t]*---[ \t]*\r?$`)

// Split cuts text into samples on lines holding only "---". Blank samples are dropped.
func Split(source, text string) []Segment {
	parts := separatorLine.Split(text, -1)
	segments := make([]Segment, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		segments = append(segments, Segment{Index: len(segments), Source: source, Text: p})
	}
	return segments
}

// SlidingWindow cuts one long text into overlapping word windows so a single
// document can be profiled as several samples.
func SlidingWindow(source, text string, segmentTokens, overlapTokens int) []Segment {
	if segmentTokens <= 0 {
		return nil
	}
	if overlapTokens < 0 {
		overlapTokens = 0
	}
	if overlapTokens >= segmentTokens {
		overlapTokens = segmentTokens - 1
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	step := segmentTokens - overlapTokens
	segments := make([]Segment, 0, (len(tokens)/step)+1)
	for start := 0; start < len(tokens); start += step {
		end := start + segmentTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		segments = append(segments, Segment{
			Index:      len(segments),
			Source:     source,
			StartToken: start,
			EndToken:   end,
			Text:       strings.Join(tokens[start:end], " "),
		})
		if end == len(tokens) {
			break
		}
	}

	return segments
}

// Reindex renumbers segments gathered from several sources.
func Reindex(segments []Segment) []Segment {
	for i := range segments {
		segments[i].Index = i
	}
	return segments
}

func Texts(segments []Segment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.Text
	}
	return out
}
