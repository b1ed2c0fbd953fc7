// Package extract contains the pure free-text field extraction heuristics
// used by the document verification pipeline. Extractors are layered: each
// exported function tries its strategies in a fixed priority order and the
// first format-valid result wins. Looser strategies come later because they
// can return false positives on noisy OCR text.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var multiSpaceRe = regexp.MustCompile(`[ ]{2,}`)

// Normalize canonicalizes whitespace: CRLF/CR to LF, tabs to spaces, runs of
// spaces collapsed, trimmed. Idempotent; this is the form echoed back to
// callers in debug output.
func Normalize(text string) string {
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining marks after NFD decomposition
// ("Prénom" -> "Prenom"). Matching only; never shown to the user.
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeMatch upper-cases, strips diacritics and collapses all whitespace
// to single spaces. Used for keyword and label matching.
func NormalizeMatch(s string) string {
	up := strings.ToUpper(StripDiacritics(s))
	return strings.Join(strings.Fields(up), " ")
}

// ContainsLoose reports whether needle occurs in haystack, case-insensitively.
func ContainsLoose(haystack, needle string) bool {
	return strings.Contains(strings.ToUpper(haystack), strings.ToUpper(needle))
}

// Lines splits normalized text into trimmed, non-empty lines.
func Lines(text string) []string {
	var out []string
	for _, l := range strings.Split(Normalize(text), "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
