// Package signature holds the per-document-type signatures and the
// classification and validity rules the verification pipeline applies to
// extracted text. Tables are plain values constructed once at process start;
// classification itself is pure.
package signature

import (
	"regexp"
	"strings"

	"formadoc/internal/models"
)

// Signature describes how a document type is recognized.
//
// Keywords is an ordered list of synonym groups; the keyword score is the
// number of groups with at least one hit. RequiredGroups/RequiredRegex are
// hard markers: official anchors that must appear in any genuine document of
// the type. StrictFailKeywords mark *other* document families; two or more
// hits with a zero keyword score mean the caller uploaded the wrong document.
type Signature struct {
	Keywords           [][]string
	MinKeywordsScore   int
	RequiredGroups     [][]string
	RequiredRegex      []*regexp.Regexp
	StrictFailKeywords []string
}

// Markers of documents people actually upload in the wrong slot: identity
// cards, passports, driving licences and CVs.
var commonWrong = []string{
	"CARTE NATIONALE D'IDENTITE",
	"CARTE D'IDENTIT",
	"PASSPORT",
	"PERMIS DE CONDUIRE",
	"CV",
	"CURRICULUM VITAE",
}

var ibanShapeRe = regexp.MustCompile(`[A-Z]{2}\d{2}(?:[ ]?[A-Z0-9]){11,30}`)

var registry = map[models.DocType]Signature{
	models.DocTypeURSSAF: {
		Keywords: [][]string{
			{"URSSAF", "ACOSS"},
			{"ATTESTATION", "VIGILANCE"},
			{"COTISATION", "CONTRIBUTION"},
			{"SIRET", "SIREN"},
		},
		MinKeywordsScore:   2,
		RequiredGroups:     [][]string{{"URSSAF", "ACOSS"}},
		StrictFailKeywords: commonWrong,
	},
	models.DocTypeFiscale: {
		Keywords: [][]string{
			{"DGFIP", "IMPOTS.GOUV", "DIRECTION GENERALE DES FINANCES PUBLIQUES"},
			{"ATTESTATION", "FISCALE"},
			{"IMPOT", "TVA", "CFE"},
			{"SIRET", "SIREN"},
		},
		MinKeywordsScore:   2,
		RequiredGroups:     [][]string{{"DGFIP", "IMPOTS.GOUV", "DIRECTION GENERALE DES FINANCES PUBLIQUES"}},
		StrictFailKeywords: commonWrong,
	},
	models.DocTypeAssurance: {
		Keywords: [][]string{
			{"ATTESTATION", "ASSURANCE"},
			{"RESPONSABILITE CIVILE", "RC PRO", "RCP"},
			{"PROFESSIONNEL", "ACTIVITE"},
		},
		MinKeywordsScore:   2,
		StrictFailKeywords: commonWrong,
	},
	models.DocTypeCasier: {
		Keywords: [][]string{
			{"CASIER JUDICIAIRE", "BULLETIN N", "BULLETIN N°", "BULLETIN NO"},
			{"MINISTERE", "JUSTICE"},
			{"NEANT", "AUCUNE CONDAMNATION", "NEANT AU CASIER"},
		},
		MinKeywordsScore:   1,
		RequiredGroups:     [][]string{{"CASIER JUDICIAIRE", "BULLETIN N"}},
		StrictFailKeywords: commonWrong,
	},
	models.DocTypeDiplome: {
		Keywords: [][]string{
			{"DIPLOME", "CERTIFICAT", "ATTESTATION DE REUSSITE"},
			{"UNIVERSITE", "ECOLE", "ACADEMIE", "INSTITUT"},
			{"ANNEE", "PROMOTION", "SESSION"},
		},
		MinKeywordsScore:   1,
		StrictFailKeywords: commonWrong,
	},
	models.DocTypeDeclaration: {
		Keywords: [][]string{
			{"DECLARATION D'ACTIVITE", "DÉCLARATION D'ACTIVIT"},
			{"DREETS", "DIRECCTE"},
			{"NUMERO DE DECLARATION", "N° DE DECLARATION", "N° D'ENREGISTREMENT"},
		},
		MinKeywordsScore:   1,
		RequiredGroups:     [][]string{{"DECLARATION", "ENREGISTREMENT"}},
		StrictFailKeywords: commonWrong,
	},
	models.DocTypeKbis: {
		Keywords: [][]string{
			{"KBIS", "EXTRAIT"},
			{"RCS", "REGISTRE DU COMMERCE"},
			{"SIREN", "SIRET"},
			{"GREFFE", "TRIBUNAL DE COMMERCE"},
		},
		MinKeywordsScore:   2,
		RequiredGroups:     [][]string{{"RCS", "REGISTRE DU COMMERCE"}},
		StrictFailKeywords: commonWrong,
	},
	models.DocTypeRIB: {
		Keywords: [][]string{
			{"RIB", "RELEVE D'IDENTITE BANCAIRE"},
			{"IBAN"},
			{"BIC", "SWIFT"},
		},
		MinKeywordsScore:   2,
		RequiredRegex:      []*regexp.Regexp{ibanShapeRe},
		StrictFailKeywords: commonWrong,
	},
	models.DocTypeIdentite: {
		Keywords: [][]string{
			{"CARTE NATIONALE D'IDENTITE", "CARTE D'IDENTIT", "PASSEPORT", "PASSPORT"},
			{"NOM", "SURNAME"},
			{"PRENOM", "GIVEN"},
		},
		MinKeywordsScore: 1,
	},
	models.DocTypeCV: {
		Keywords: [][]string{
			{"CURRICULUM", "CV"},
			{"EXPERIENCE", "FORMATION", "COMPETENCE"},
		},
		MinKeywordsScore: 1,
	},
}

// Lookup resolves the signature for a document type, case-insensitively.
// Unknown types get an all-permissive empty signature so the downstream
// checks (dates, names) still run.
func Lookup(docType models.DocType) Signature {
	key := models.DocType(strings.ToLower(strings.TrimSpace(string(docType))))
	if sig, ok := registry[key]; ok {
		return sig
	}
	return Signature{StrictFailKeywords: commonWrong}
}
