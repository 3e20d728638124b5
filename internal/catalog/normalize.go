// Package catalog joins the scraped schedule to the film catalog.
//
// Schedule titles come from OCR and hand-typed PDFs, so they rarely match
// catalog titles byte for byte.  Titles are compared in normalized form,
// with an explicit alias table for the cases normalization cannot fix.
// Near misses are reported as suggestions and never applied automatically.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a title to its comparison form: accents removed,
// upper-cased, punctuation dropped and whitespace collapsed.
//
//	Normalize("  Amélie:  the  Fabulous-Destiny ") == "AMELIE THE FABULOUSDESTINY"
func Normalize(title string) string {
	folded, _, err := transform.String(foldAccents(), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}

// foldAccents returns a fresh transformer; transform.Chain values keep
// state and are not safe for concurrent use.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
