package layout

import "strings"

// Core PDF fonts only cover Latin-1. Common typographic characters are
// mapped to ASCII stand-ins; anything else outside the codepage is
// replaced rather than dropped so text width stays predictable.
var latin1Replacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"•", "*", // bullet
	"…", "...", // ellipsis
	"™", "(TM)", // trademark
)

// Sanitize rewrites text into the Latin-1 subset the built-in fonts
// can render.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = latin1Replacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r <= 0xFF {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
