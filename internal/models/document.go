package models

import "strings"

// DocType identifies the administrative document family a caller declares
// when submitting a file for verification.
type DocType string

const (
	DocTypeURSSAF      DocType = "urssaf"
	DocTypeFiscale     DocType = "fiscale"
	DocTypeAssurance   DocType = "assurance"
	DocTypeCasier      DocType = "casier"
	DocTypeDiplome     DocType = "diplome"
	DocTypeDeclaration DocType = "declaration"
	DocTypeKbis        DocType = "kbis"
	DocTypeRIB         DocType = "rib"
	DocTypeIdentite    DocType = "identite"
	DocTypeCV          DocType = "cv"
)

// ContentType tells the pipeline whether the caller already extracted the
// PDF text layer upstream or is sending raw image bytes.
type ContentType string

const (
	ContentTypePDFText ContentType = "pdf_text"
	ContentTypeImage   ContentType = "image"
)

// OCR provenance values reported back in verdict debug info.
const (
	OCRMethodNone        = "none"
	OCRMethodPDFText     = "pdf_text"
	OCRMethodPDFDetected = "pdf_detected"
	OCRMethodOCRSpace    = "ocr.space"
	OCRMethodTesseract   = "tesseract"
	OCRMethodVision      = "vision-ai"
)

// ReferenceIdentity is the declared identity every check is compared against.
type ReferenceIdentity struct {
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
}

// Empty reports whether either half of the declared identity is blank.
func (r ReferenceIdentity) Empty() bool {
	return strings.TrimSpace(r.Nom) == "" || strings.TrimSpace(r.Prenom) == ""
}
