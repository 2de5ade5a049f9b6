package captioner

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel lowercases a classifier label, applies Unicode NFKC
// normalization and strips control characters. Matching against category
// keywords happens on the normalized form.
func NormalizeLabel(label string) string {
	normed := norm.NFKC.String(label)
	normed = strings.TrimSpace(strings.ToLower(normed))
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return normed
}

// HumanizeLabel turns a classifier label such as "golden_retriever" into
// display text ("golden retriever").
func HumanizeLabel(label string) string {
	cleaned := strings.ReplaceAll(NormalizeLabel(label), "_", " ")
	return strings.Join(strings.Fields(cleaned), " ")
}
