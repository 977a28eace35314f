package chunk

import "strings"

// estimateTokens gives a rough token count from the word count.
// Exact tokenization is not required for chunk sizing; ~1.33 tokens per
// word tracks English text closely enough.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
