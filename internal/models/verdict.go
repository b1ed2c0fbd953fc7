package models

import (
	"time"

	"github.com/google/uuid"
)

// VerdictStatus is the three-way outcome of a document check.
type VerdictStatus string

const (
	StatusOK     VerdictStatus = "OK"
	StatusReview VerdictStatus = "REVIEW"
	StatusFail   VerdictStatus = "FAIL"
)

// Verdict reason slugs. Business outcomes are always delivered as a verdict,
// never as an HTTP error, so the slug is the machine-readable contract.
const (
	ReasonOK             = "ok"
	ReasonUnreadable     = "unreadable"
	ReasonWrongDocType   = "wrong_doc_type"
	ReasonLowKeywords    = "low_keyword_match"
	ReasonMissingMarker  = "missing_required_marker"
	ReasonExpired        = "expired"
	ReasonNameMismatch   = "name_mismatch"
	ReasonNoDate         = "no_date"
	ReasonPDFReceived    = "pdf_received"
	ReasonInternalError  = "internal_error"
	ReasonMissingRef     = "missing_reference"
	ReasonBadContentType = "bad_contentType"
)

// CheckRecord is one audit row per verdict, kept so a back-office reviewer
// can work the REVIEW queue. It never feeds back into classification.
type CheckRecord struct {
	ID         uuid.UUID     `db:"id"`
	DocType    DocType       `db:"doc_type"`
	Status     VerdictStatus `db:"status"`
	Reason     string        `db:"reason"`
	Confidence float64       `db:"confidence"`
	OCRMethod  string        `db:"ocr_method"`
	TextLength int           `db:"text_length"`
	CreatedAt  time.Time     `db:"created_at"`
}
