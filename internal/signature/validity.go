package signature

import (
	"time"

	"formadoc/internal/extract"
	"formadoc/internal/models"
)

// Validity is the date-based verdict component for a document.
//
// Expired is three-valued: true only when a confidently parsed expiry date
// is in the past, false when the document is known not to expire (or is
// within tolerance), nil/unset (ExpiredKnown=false) when no usable date was
// found. Staleness never hard-fails company documents; it only sets
// ReviewRecommended for the human reviewer.
type Validity struct {
	Issue             string `json:"issue"`
	Expiry            string `json:"expiry"`
	Expired           *bool  `json:"expired"`
	RequiresDate      bool   `json:"requiresDate"`
	HasUsableDate     bool   `json:"hasUsableDate"`
	Rule              string `json:"rule"`
	AgeDays           int    `json:"ageDays,omitempty"`
	ReviewRecommended bool   `json:"reviewRecommended,omitempty"`
}

// IsExpired is the single place the three-valued Expired flag is collapsed:
// only an explicit true counts.
func (v Validity) IsExpired() bool {
	return v.Expired != nil && *v.Expired
}

// Staleness tolerance per document family, in days.
const (
	kbisMaxAgeDays      = 180
	casierMaxAgeDays    = 90
	assuranceMaxAgeDays = 365
	defaultMaxAgeDays   = 180
)

// EvaluateValidity applies the per-type date policy to an extracted date
// window.
func EvaluateValidity(docType models.DocType, w extract.DateWindow, now time.Time) Validity {
	guessedIssue := w.Issue
	if guessedIssue.IsZero() {
		guessedIssue = w.Earliest()
	}
	guessedExpiry := w.Expiry
	if guessedExpiry.IsZero() {
		guessedExpiry = w.Latest()
	}

	switch docType {
	case models.DocTypeDiplome, models.DocTypeRIB, models.DocTypeDeclaration:
		// No expiry expected; a diploma or bank statement never goes stale.
		return Validity{
			Issue:         extract.FormatDMY(guessedIssue),
			Expired:       boolPtr(false),
			RequiresDate:  false,
			HasUsableDate: true,
			Rule:          "no_expiry_expected",
		}

	case models.DocTypeKbis:
		return ageBasedValidity("kbis", guessedIssue, guessedExpiry, now, kbisMaxAgeDays)

	case models.DocTypeCasier:
		return ageBasedValidity("casier", guessedIssue, guessedExpiry, now, casierMaxAgeDays)
	}

	// urssaf / fiscale / assurance and anything else: a date is required but
	// staleness stays advisory. Only identity documents hard-fail on expiry.
	maxAge := defaultMaxAgeDays
	if docType == models.DocTypeAssurance {
		maxAge = assuranceMaxAgeDays
	}

	if guessedExpiry.IsZero() && guessedIssue.IsZero() {
		return Validity{
			RequiresDate:  true,
			HasUsableDate: false,
			Rule:          "missing_expiry",
		}
	}

	basis := guessedExpiry
	if basis.IsZero() {
		basis = guessedIssue
	}
	ageDays := daysBetween(basis, now)

	return Validity{
		Issue:             extract.FormatDMY(guessedIssue),
		Expiry:            extract.FormatDMY(w.Expiry),
		Expired:           boolPtr(false),
		RequiresDate:      true,
		HasUsableDate:     true,
		Rule:              "advisory_staleness",
		AgeDays:           ageDays,
		ReviewRecommended: ageDays > maxAge,
	}
}

func ageBasedValidity(family string, issue, expiry, now time.Time, maxAgeDays int) Validity {
	basis := issue
	if basis.IsZero() {
		basis = expiry
	}
	if basis.IsZero() {
		return Validity{
			RequiresDate:  true,
			HasUsableDate: false,
			Rule:          family + "_missing_date",
		}
	}

	ageDays := daysBetween(basis, now)
	rule := family + "_recent_ok"
	if ageDays > maxAgeDays {
		rule = family + "_old_review"
	}
	return Validity{
		Issue:             extract.FormatDMY(issue),
		Expired:           boolPtr(false),
		RequiresDate:      true,
		HasUsableDate:     true,
		Rule:              rule,
		AgeDays:           ageDays,
		ReviewRecommended: ageDays > maxAgeDays,
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func boolPtr(b bool) *bool { return &b }
