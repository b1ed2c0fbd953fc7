package extract

import (
	"regexp"
	"strings"
)

// CompanyFields is the structured bag extracted from company documents
// (kbis, urssaf, fiscale, assurance, declaration). Empty string means
// "not found"; numeric fields are format-validated before being set.
type CompanyFields struct {
	Siren          string `json:"siren"`
	Siret          string `json:"siret"`
	RCS            string `json:"rcs"`
	Denomination   string `json:"denomination"`
	Adresse        string `json:"adresse"`
	DateEmission   string `json:"date_emission,omitempty"`
	DateExpiration string `json:"date_expiration,omitempty"`
}

var (
	rcsRe         = regexp.MustCompile(`RCS\s+([A-Z\s-]+)\s*(\d{9})?`)
	rcsRegistreRe = regexp.MustCompile(`(?i)REGISTRE\s+DU\s+COMMERCE\s+ET\s+DES\s+SOCIETES\s+([A-Z\s-]+)`)

	denomBeforeSirenRe = regexp.MustCompile(`(?i)([A-Z0-9&\s'.-]{8,80})\s+SIREN`)
	companyFormRe      = regexp.MustCompile(`(?i)\b(SAS|SARL|SASU|SA|EURL|SCI|ASSOCIATION|ENTREPRISE)\b\s+([A-Z0-9& .-]{3,80})`)
	streetWordRe       = regexp.MustCompile(`(?i)\b(AVENUE|RUE|BOULEVARD|CHEMIN|IMPASSE|ALLEE|ALL[ÉE]E|PLACE|QUAI|ROUTE)\b`)

	addressPatternRe = regexp.MustCompile(`(\d+\s+[^\n]{6,80}\s+\d{5}\s+[A-ZÀ-ÖØ-Þ][A-Za-zÀ-ÖØ-öø-ÿ\s-]+)`)
	postalCityRe     = regexp.MustCompile(`(\d{5})[\s,]+([A-Za-zÀ-ÖØ-öø-ÿ][A-Za-zÀ-ÖØ-öø-ÿ\s-]+)`)

	roleRe  = regexp.MustCompile(`(?i)\b(G[ée]rante?|Pr[ée]sidente?|Directeur|Directrice)\b`)
	emailRe = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[\s.-]?)?(\(?\d{1,4}\)?[\s.-]?)?(\d[\s.-]?){7,}\d`)

	denomBoilerplateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^DE LA SOCIETE\s*`),
		regexp.MustCompile(`(?i)^DE LA SOCI.T.\s*`),
		regexp.MustCompile(`(?i)^NAME OF THE COMPANY\s*`),
		regexp.MustCompile(`(?i)^DENOMINATION(\s+DE\s+LA\s+SOCIETE)?\s*`),
	}

	denomStopTokens = []string{
		"ADRESSE", "ADDRESS", "ADRESSE DU", "ADRESSE DE", "ADRESSE POSTALE",
		"N° SIREN", "NUMERO SIREN", "SIRET", "CODE NAF",
	}

	denominationLabels = []string{
		"DENOMINATION SOCIALE", "DENOMINATION", "RAISON SOCIALE",
		"NOM COMMERCIAL", "DENOMINATION DE LA SOCIETE",
	}
	addressLabels = []string{
		"ADRESSE DU SIEGE", "ADRESSE DU PRINCIPAL ETABLISSEMENT",
		"ADRESSE POSTALE", "ADRESSE",
	}
)

// CompanyFieldsFromText runs every company-field extractor over normalized
// text. Pure and deterministic: same text, same result.
func CompanyFieldsFromText(text string) CompanyFields {
	t := Normalize(text)
	f := CompanyFields{
		Siren: SIREN(t),
		Siret: SIRET(t),
		RCS:   RCS(t),
	}
	f.Denomination = Denomination(t)
	f.Adresse = Address(t)
	return f
}

// RCS extracts the registration city from an "RCS PARIS 123456789" style
// mention.
func RCS(text string) string {
	if m := rcsRe.FindStringSubmatch(text); m != nil {
		return firstLine(m[1])
	}
	if m := rcsRegistreRe.FindStringSubmatch(text); m != nil {
		return firstLine(m[1])
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Denomination extracts the company name: explicit label first, then the
// text immediately preceding "SIREN", then a legal-form prefix pattern.
// Candidates that look like an address are rejected.
func Denomination(text string) string {
	if v := ValueAfterLabel(text, denominationLabels); v != "" {
		if c := cleanDenomination(v); c != "" && !LooksLikeAddress(c) {
			return c
		}
	}
	if m := denomBeforeSirenRe.FindStringSubmatch(text); m != nil {
		if c := cleanDenomination(m[1]); c != "" && !LooksLikeAddress(c) {
			return c
		}
	}
	if m := companyFormRe.FindStringSubmatch(text); m != nil {
		if c := cleanDenomination(m[1] + " " + m[2]); c != "" && !LooksLikeAddress(c) {
			return c
		}
	}
	return ""
}

// Address extracts a postal address: explicit label, then the French
// "number street 5-digit-postcode City" shape.
func Address(text string) string {
	if v := ValueAfterLabel(text, addressLabels); v != "" {
		return strings.TrimSpace(v)
	}
	if m := addressPatternRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// PostalCity splits the postal code and city out of an address.
func PostalCity(address string) (postal, city string) {
	m := postalCityRe.FindStringSubmatch(address)
	if m == nil {
		return "", ""
	}
	return m[1], strings.TrimSpace(m[2])
}

// RepresentativeRole finds a company-officer function mention.
func RepresentativeRole(text string) string {
	m := roleRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// Email returns the first email address in the text, lower-cased.
func Email(text string) string {
	return strings.ToLower(emailRe.FindString(text))
}

// Phone returns the first phone-number-shaped token, separators collapsed.
func Phone(text string) string {
	m := phoneRe.FindString(strings.Join(strings.Fields(text), " "))
	if m == "" {
		return ""
	}
	if len(digitsOnly(m)) < 8 {
		return ""
	}
	return strings.TrimSpace(m)
}

// ValueAfterLabel captures a labeled free-text value: inline
// ("LABEL: value" on one line) first, then label line followed by a value
// line. Labels are matched diacritic- and case-insensitively.
func ValueAfterLabel(text string, labels []string) string {
	raw := Normalize(text)

	for _, label := range labels {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `\s*[:\-]?\s*([^\n]{5,140})`)
		if m := re.FindStringSubmatch(raw); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	lines := Lines(raw)
	for i := 0; i < len(lines)-1; i++ {
		lineNorm := NormalizeMatch(lines[i])
		for _, label := range labels {
			if !strings.Contains(lineNorm, NormalizeMatch(label)) {
				continue
			}
			if after := afterColon(lines[i]); len(after) >= 3 {
				return after
			}
			return lines[i+1]
		}
	}
	return ""
}

// LooksLikeAddress rejects denomination candidates that are actually street
// addresses (digit-initial, or containing a street-type word).
func LooksLikeAddress(v string) bool {
	s := strings.TrimSpace(v)
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	return streetWordRe.MatchString(s)
}

// cleanDenomination strips label boilerplate and truncates at the next
// field's stop token.
func cleanDenomination(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}

	if i := strings.LastIndex(s, ":"); i != -1 && i < len(s)-1 {
		s = strings.TrimSpace(s[i+1:])
	}
	for _, re := range denomBoilerplateRes {
		s = strings.TrimSpace(re.ReplaceAllString(s, ""))
	}

	upper := strings.ToUpper(s)
	cut := len(s)
	for _, tok := range denomStopTokens {
		if pos := strings.Index(upper, tok); pos != -1 && pos < cut {
			cut = pos
		}
	}
	return strings.TrimSpace(s[:cut])
}

// CleanCompanyFields re-validates a merged extraction result so numeric
// fields keep their exact lengths and nothing but trimmed strings leaks out.
func CleanCompanyFields(f CompanyFields) CompanyFields {
	siren := digitsOnly(f.Siren)
	if len(siren) > 9 {
		siren = siren[:9]
	}
	if len(siren) != 9 {
		siren = ""
	}
	siret := digitsOnly(f.Siret)
	if len(siret) > 14 {
		siret = siret[:14]
	}
	if len(siret) != 14 {
		siret = ""
	}
	return CompanyFields{
		Siren:          siren,
		Siret:          siret,
		RCS:            strings.TrimSpace(f.RCS),
		Denomination:   strings.TrimSpace(f.Denomination),
		Adresse:        strings.TrimSpace(f.Adresse),
		DateEmission:   strings.TrimSpace(f.DateEmission),
		DateExpiration: strings.TrimSpace(f.DateExpiration),
	}
}

// MergeCompanyFields overlays non-empty fields of override onto base.
func MergeCompanyFields(base, override CompanyFields) CompanyFields {
	pick := func(b, o string) string {
		if strings.TrimSpace(o) != "" {
			return o
		}
		return b
	}
	return CompanyFields{
		Siren:          pick(base.Siren, override.Siren),
		Siret:          pick(base.Siret, override.Siret),
		RCS:            pick(base.RCS, override.RCS),
		Denomination:   pick(base.Denomination, override.Denomination),
		Adresse:        pick(base.Adresse, override.Adresse),
		DateEmission:   pick(base.DateEmission, override.DateEmission),
		DateExpiration: pick(base.DateExpiration, override.DateExpiration),
	}
}
