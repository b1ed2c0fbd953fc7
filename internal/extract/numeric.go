package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Label sets recognized in front of SIREN/SIRET numbers. OCR frequently
// spaces out the acronym letters, hence the "S I R E N" variants.
var (
	sirenLabels = []string{"SIREN", "S I R E N", "SIREN/", "NUMERO DE SIREN", "N° SIREN", "N SIREN"}
	siretLabels = []string{"SIRET", "S I R E T", "SIRET/", "NUMERO DE SIRET", "N° SIRET", "N SIRET"}
)

var (
	ibanRe = regexp.MustCompile(`[A-Z]{2}\d{2}(?:[ ]?[A-Z0-9]){11,30}`)
	bicRe  = regexp.MustCompile(`\b[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}(?:[A-Z0-9]{3})?\b`)

	siretGroupedRe = regexp.MustCompile(`(\d{3})[.\s-]?(\d{3})[.\s-]?(\d{3})[.\s-]?(\d{5})`)
	sirenGroupedRe = regexp.MustCompile(`(\d{3})[.\s-]?(\d{3})[.\s-]?(\d{3})`)
)

// SIREN extracts a 9-digit SIREN from free text, trying label-adjacent,
// label-window, grouped-digit and bare-number strategies in that order.
func SIREN(text string) string {
	t := Normalize(text)
	if v := numberAfterLabels(t, sirenLabels, 9); v != "" {
		return v
	}
	if v := numberNearLabel(t, sirenLabels, 9); v != "" {
		return v
	}
	if v := groupedNumber(t, sirenGroupedRe, 9); v != "" {
		return v
	}
	return firstBareNumber(t, 9)
}

// SIRET extracts a 14-digit SIRET. Same waterfall as SIREN plus a loose-label
// step for values written with interior separators ("123 456 789 00012").
func SIRET(text string) string {
	t := Normalize(text)
	if v := numberAfterLabels(t, siretLabels, 14); v != "" {
		return v
	}
	if v := numberAfterLooseLabel(t, siretLabels, 14); v != "" {
		return v
	}
	if v := numberNearLabel(t, siretLabels, 14); v != "" {
		return v
	}
	if v := groupedNumber(t, siretGroupedRe, 14); v != "" {
		return v
	}
	return firstBareNumber(t, 14)
}

// IBAN extracts the first IBAN-shaped token, tolerating internal spaces.
// The compacted form (separators removed) is returned.
func IBAN(text string) string {
	m := ibanRe.FindString(NormalizeMatch(text))
	if m == "" {
		return ""
	}
	compact := strings.ReplaceAll(m, " ", "")
	if len(compact) < 15 || len(compact) > 34 {
		return ""
	}
	return compact
}

// BIC extracts the first 8-or-11 character BIC/SWIFT code.
func BIC(text string) string {
	up := NormalizeMatch(text)
	for _, loc := range bicRe.FindAllStringIndex(up, -1) {
		// The bank+country prefix is always alphabetic; an all-letter 8-char
		// token is also just a word, so require a known "BIC"/"SWIFT" label
		// nearby or a digit in the location code to cut false positives.
		m := up[loc[0]:loc[1]]
		start := loc[0] - 40
		if start < 0 {
			start = 0
		}
		window := up[start:loc[0]]
		if strings.Contains(window, "BIC") || strings.Contains(window, "SWIFT") || strings.ContainsAny(m[6:8], "0123456789") {
			return m
		}
	}
	return ""
}

// numberAfterLabels: label immediately followed by a digit run (spaces
// allowed) of at least n digits; truncated to exactly n.
func numberAfterLabels(text string, labels []string, n int) string {
	upper := strings.ToUpper(text)
	for _, label := range labels {
		re := regexp.MustCompile(fmt.Sprintf(`(?i)%s\s*[:\-\s]*([0-9\s]{%d,})`, regexp.QuoteMeta(label), n))
		m := re.FindStringSubmatch(upper)
		if m == nil {
			continue
		}
		cleaned := digitsOnly(m[1])
		if len(cleaned) >= n {
			return cleaned[:n]
		}
	}
	return ""
}

// numberNearLabel: take the 120 characters following the label position and
// keep whatever digits survive, accepting if at least n are present.
func numberNearLabel(text string, labels []string, n int) string {
	norm := NormalizeMatch(text)
	for _, label := range labels {
		idx := strings.Index(norm, NormalizeMatch(label))
		if idx == -1 {
			continue
		}
		end := idx + 120
		if end > len(norm) {
			end = len(norm)
		}
		d := digitsOnly(norm[idx:end])
		if len(d) >= n {
			return d[:n]
		}
	}
	return ""
}

// numberAfterLooseLabel: label followed within 80 chars by a digit run with
// interior separators.
func numberAfterLooseLabel(text string, labels []string, n int) string {
	norm := NormalizeMatch(text)
	for _, label := range labels {
		re := regexp.MustCompile(regexp.QuoteMeta(NormalizeMatch(label)) + fmt.Sprintf(`[^0-9]{0,80}((?:\d[\s.-]*){%d,})`, n))
		m := re.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		d := digitsOnly(m[1])
		if len(d) >= n {
			return d[:n]
		}
	}
	return ""
}

func groupedNumber(text string, re *regexp.Regexp, n int) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	joined := strings.Join(m[1:], "")
	if len(joined) != n {
		return ""
	}
	return joined
}

func firstBareNumber(text string, n int) string {
	re := regexp.MustCompile(fmt.Sprintf(`\b(\d{%d})\b`, n))
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
