package prompts

import (
	"fmt"
	"strings"
)

const SystemPrompt = `You are a writing-style analyst. You answer with numbers only.`

const SemanticFeaturesTemplate = `INPUT: %s
TASK: Rate the text on each dimension below from 0.0 to 1.0.
DIMENSIONS (in this order):
1. Length complexity
2. Formality
3. Creativity
4. Technical depth
5. Emotional intensity
6. Clarity
7. Persuasiveness
8. Narrative quality
9. Analytical reasoning
10. Personal voice
OUTPUT: exactly 10 decimal numbers separated by commas, nothing else.`

// maxPromptRunes keeps one request comfortably inside a small context window.
const maxPromptRunes = 6000

func SemanticFeaturesPrompt(text string) string {
	return strings.TrimSpace(fmt.Sprintf(SemanticFeaturesTemplate, truncate(strings.TrimSpace(text), maxPromptRunes)))
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
