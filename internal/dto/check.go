package dto

import (
	"formadoc/internal/models"
	"formadoc/internal/signature"
)

type CheckRequest struct {
	DocType     string                    `json:"docType" validate:"required"`
	ContentType string                    `json:"contentType" validate:"required,oneof=pdf_text image"`
	Text        string                    `json:"text,omitempty"`
	FileBase64  string                    `json:"fileBase64,omitempty"`
	Reference   *models.ReferenceIdentity `json:"referenceData,omitempty"`
}

// VerdictResponse is the single business-outcome envelope. All pipeline
// outcomes ship with HTTP 200; only transport errors use 4xx.
type VerdictResponse struct {
	Status     string         `json:"status"`
	Reason     string         `json:"reason"`
	Confidence float64        `json:"confidence"`
	Message    string         `json:"message"`
	Extracted  *ExtractedInfo `json:"extracted,omitempty"`
	Debug      *DebugInfo     `json:"debug,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type ExtractedInfo struct {
	FoundName      string              `json:"foundName,omitempty"`
	FoundFirstName string              `json:"foundFirstName,omitempty"`
	Dates          *signature.Validity `json:"dates,omitempty"`
	KeywordsScore  int                 `json:"keywordsScore"`
	WrongHits      int                 `json:"wrongHits,omitempty"`
}

type DebugInfo struct {
	OCRMethod  string `json:"ocrMethod"`
	TextLength int    `json:"textLength"`
}
