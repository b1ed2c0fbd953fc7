package signature

import (
	"strings"

	"formadoc/internal/extract"
)

// Classification is the raw result of matching text against a signature.
// The check pipeline turns it into a verdict.
type Classification struct {
	KeywordsScore    int
	WrongTypeHits    int
	RequiredGroupsOK bool
	RequiredRegexOK  bool
}

// Text shorter than this gets the benefit of the doubt when hard markers are
// missing: a sparse scan is more likely a quality problem than a forgery.
const ShortTextThreshold = 120

// Classify scores normalized text against a signature. Keyword matching is
// case- and diacritic-insensitive substring matching; each synonym group
// contributes at most one point.
func Classify(sig Signature, text string) Classification {
	matchText := extract.NormalizeMatch(text)

	c := Classification{RequiredGroupsOK: true, RequiredRegexOK: true}

	for _, group := range sig.Keywords {
		if anyKeyword(matchText, group) {
			c.KeywordsScore++
		}
	}

	for _, kw := range sig.StrictFailKeywords {
		if containsKeyword(matchText, kw) {
			c.WrongTypeHits++
		}
	}

	for _, group := range sig.RequiredGroups {
		if !anyKeyword(matchText, group) {
			c.RequiredGroupsOK = false
			break
		}
	}
	for _, re := range sig.RequiredRegex {
		if !re.MatchString(matchText) {
			c.RequiredRegexOK = false
			break
		}
	}

	return c
}

// WrongType reports a strong negative match: the text carries at least two
// markers of another document family and none of the expected signature.
func (c Classification) WrongType() bool {
	return c.WrongTypeHits >= 2 && c.KeywordsScore == 0
}

// MissingMarkers reports that a hard anchor the document family always
// carries was not found.
func (c Classification) MissingMarkers() bool {
	return !c.RequiredGroupsOK || !c.RequiredRegexOK
}

func anyKeyword(matchText string, group []string) bool {
	for _, kw := range group {
		if containsKeyword(matchText, kw) {
			return true
		}
	}
	return false
}

func containsKeyword(matchText, kw string) bool {
	needle := extract.NormalizeMatch(kw)
	if needle == "" {
		return false
	}
	return strings.Contains(matchText, needle)
}
