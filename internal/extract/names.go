package extract

import (
	"regexp"
	"strings"
)

// IdentityFields is what the CNI/identity extractor pulls from OCR text.
// Every field is a validated string or empty, never a placeholder.
type IdentityFields struct {
	Nom        string
	Prenom     string
	Expiration string
}

var (
	surnameLabelRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\b|^)NOM(\b|$)`),
		regexp.MustCompile(`(?i)(\b|^)SURNAME(\b|$)`),
		regexp.MustCompile(`(?i)(\b|^)NAME(\b|$)`),
	}
	givenLabelRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\b|^)PR[EÉ]NOMS?(\b|$)`),
		regexp.MustCompile(`(?i)(\b|^)GIVEN(\b|$)`),
		regexp.MustCompile(`(?i)(\b|^)NAMES?(\b|$)`),
	}
	expiryLabelRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)DATE\s+D['’]?\s*EXPIR`),
		regexp.MustCompile(`(?i)\bEXPIRY\b`),
		regexp.MustCompile(`(?i)\bEXPIRATION\b`),
	}

	nameLabelWordsRe = regexp.MustCompile(`(?i)(NOM|SURNAME|NAME|PR[EÉ]NOMS?|GIVEN|NAMES?)`)
	expiryWordsRe    = regexp.MustCompile(`(?i)DATE\s+D['’]?\s*EXPIR\w*|EXPIRY|EXPIRATION`)
	nonNameCharsRe   = regexp.MustCompile(`[^A-Za-zÀ-ÖØ-öø-ÿ' -]`)
	nameStopFieldsRe = regexp.MustCompile(`(?i)SEXE|NATIONALIT|DATE\s+DE\s+NAISS|LIEU\s+DE\s+NAISS|DOCUMENT`)
	nonExpiryCharsRe = regexp.MustCompile(`[^0-9/.\-\s]`)
	hasLetterRe      = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ]`)
)

// Document-header boilerplate that OCR sometimes drops into the surname
// slot. These strings can never be a surname on a French identity card.
var headerBoilerplate = []string{
	"RÉPUBLIQUE", "REPUBLIQUE", "FRANÇAISE", "FRANCAISE",
	"CARTE", "IDENTITE", "IDENTITY", "NATIONALE",
}

// IdentityFieldsFromOCR extracts surname, given names and the expiry line
// from identity-document OCR text.
func IdentityFieldsFromOCR(text string) IdentityFields {
	lines := Lines(text)

	f := IdentityFields{
		Nom:        valueForLabels(lines, surnameLabelRes),
		Prenom:     valueForLabels(lines, givenLabelRes),
		Expiration: expiryLineValue(lines),
	}

	f.Nom = SanitizeName(f.Nom, true)
	f.Prenom = SanitizeName(f.Prenom, false)
	f.Expiration = strings.TrimSpace(multiSpaceRe.ReplaceAllString(nonExpiryCharsRe.ReplaceAllString(f.Expiration, " "), " "))

	if isFieldLabelToken(f.Nom) {
		f.Nom = ""
	}
	if isFieldLabelToken(f.Prenom) {
		f.Prenom = ""
	}
	return f
}

// PersonName extracts nom/prenom from generic administrative-document text.
// Used by the checker pipeline where a name may or may not be present.
func PersonName(text string) (nom, prenom string) {
	lines := Lines(text)
	nom = SanitizeName(valueForLabels(lines, surnameLabelRes), false)
	prenom = SanitizeName(valueForLabels(lines, givenLabelRes), false)
	return nom, prenom
}

// valueForLabels finds the value attached to a labeled field: first a value
// on the label line itself (colon-separated or label-stripped remainder),
// then the following line.
func valueForLabels(lines []string, labels []*regexp.Regexp) string {
	for _, line := range lines {
		if !anyMatch(labels, line) {
			continue
		}
		cand := inlineValue(line)
		if looksLikeName(cand) {
			return cand
		}
	}
	for i := 0; i < len(lines)-1; i++ {
		if !anyMatch(labels, lines[i]) {
			continue
		}
		if after := afterColon(lines[i]); after != "" && looksLikeName(after) {
			return after
		}
		if next := strings.TrimSpace(lines[i+1]); looksLikeName(next) {
			return next
		}
	}
	return ""
}

func expiryLineValue(lines []string) string {
	for _, line := range lines {
		if !anyMatch(expiryLabelRes, line) {
			continue
		}
		cand := afterColon(line)
		if cand == "" {
			cand = strings.TrimSpace(expiryWordsRe.ReplaceAllString(line, ""))
		}
		if cand != "" {
			return cand
		}
	}
	for i := 0; i < len(lines)-1; i++ {
		if !anyMatch(expiryLabelRes, lines[i]) {
			continue
		}
		if after := afterColon(lines[i]); after != "" {
			return after
		}
		if next := strings.TrimSpace(lines[i+1]); next != "" {
			return next
		}
	}
	return ""
}

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func afterColon(line string) string {
	i := strings.Index(line, ":")
	if i == -1 {
		return ""
	}
	return strings.TrimSpace(line[i+1:])
}

func inlineValue(line string) string {
	if after := afterColon(line); after != "" {
		return after
	}
	stripped := nameLabelWordsRe.ReplaceAllString(line, "")
	stripped = strings.ReplaceAll(stripped, "/", " ")
	return strings.TrimSpace(stripped)
}

// looksLikeName accepts 2-70 character candidates containing at least one
// letter that are not themselves field-label tokens (OCR sometimes echoes
// "Name" or "Surname" as the value).
func looksLikeName(s string) bool {
	t := strings.TrimSpace(s)
	if len(t) < 2 || len(t) > 70 {
		return false
	}
	if !hasLetterRe.MatchString(t) {
		return false
	}
	if isFieldLabelToken(t) {
		return false
	}
	cleaned := strings.TrimSpace(nonNameCharsRe.ReplaceAllString(t, ""))
	return len(cleaned) >= 2
}

func isFieldLabelToken(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NAME", "SURNAME", "GIVEN", "GIVEN NAMES", "NOM", "PRENOM", "PRENOMS", "NAMES":
		return true
	}
	return false
}

// SanitizeName cleans a raw name candidate: truncates at the next field
// label on the same OCR line, optionally rejects document-header boilerplate
// (surname slot only) and removes non-name characters.
func SanitizeName(v string, forbidHeader bool) string {
	s := strings.TrimSpace(multiSpaceRe.ReplaceAllString(strings.ReplaceAll(v, "|", " "), " "))
	if loc := nameStopFieldsRe.FindStringIndex(s); loc != nil {
		s = strings.TrimSpace(s[:loc[0]])
	}

	if forbidHeader {
		up := strings.ToUpper(s)
		for _, b := range headerBoilerplate {
			if strings.Contains(up, b) {
				return ""
			}
		}
	}

	s = nonNameCharsRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(s, " "))
}
