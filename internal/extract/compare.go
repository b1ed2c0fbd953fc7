package extract

import (
	"regexp"
	"strings"
)

var (
	alnumOnlyRe    = regexp.MustCompile(`[^A-Z0-9]`)
	nameTokenRe    = regexp.MustCompile(`[^A-Z\s-]`)
	tokenSplitRe   = regexp.MustCompile(`[\s-]+`)
	spaceHyphensRe = regexp.MustCompile(`[\s-]+`)
)

// CompareRobust compares two strings the way identity fields are matched:
// exact after aggressive normalization, containment in either direction, or
// Levenshtein similarity of at least 0.85 over the longer string.
func CompareRobust(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	t1 := alnumOnlyRe.ReplaceAllString(strings.ToUpper(StripDiacritics(a)), "")
	t2 := alnumOnlyRe.ReplaceAllString(strings.ToUpper(StripDiacritics(b)), "")
	if t1 == "" || t2 == "" {
		return false
	}

	if t1 == t2 {
		return true
	}
	if strings.Contains(t1, t2) || strings.Contains(t2, t1) {
		return true
	}

	maxLen := len(t1)
	if len(t2) > maxLen {
		maxLen = len(t2)
	}
	if maxLen == 0 {
		return false
	}
	sim := 1 - float64(levenshtein(t1, t2))/float64(maxLen)
	return sim >= 0.85
}

// AllGivenNamesFound reports whether every whitespace/hyphen-separated token
// of the expected first name(s) appears as a substring of the found field.
// Handles multi-given-name documents ("Jean, Pierre, Marie") and OCR output
// that merges separators.
func AllGivenNamesFound(found, expected string) bool {
	if found == "" || expected == "" {
		return false
	}

	norm := func(s string) string {
		up := strings.ToUpper(StripDiacritics(s))
		up = nameTokenRe.ReplaceAllString(up, " ")
		return strings.TrimSpace(multiSpaceRe.ReplaceAllString(up, " "))
	}

	f := norm(found)
	parts := tokenSplitRe.Split(norm(expected), -1)
	var expectedTokens []string
	for _, p := range parts {
		if p != "" {
			expectedTokens = append(expectedTokens, p)
		}
	}
	if f == "" || len(expectedTokens) == 0 {
		return false
	}

	compact := spaceHyphensRe.ReplaceAllString(f, " ")
	for _, tok := range expectedTokens {
		if !strings.Contains(compact, tok) {
			return false
		}
	}
	return true
}

func levenshtein(a, b string) int {
	m, n := len(a), len(b)
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		cur[0] = i
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1]
			} else {
				cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+1)
			}
		}
		prev, cur = cur, prev
	}
	return prev[n]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
