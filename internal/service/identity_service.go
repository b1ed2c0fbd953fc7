package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"formadoc/internal/dto"
	"formadoc/internal/extract"
	"formadoc/pkg/metrics"

	"go.uber.org/zap"
)

const nonDetecte = "non détecté"

// IdentityService compares a photographed identity card against the declared
// trainer identity. An undetected expiry date never invalidates on its own:
// the fields that matter are the names.
type IdentityService struct {
	extractor textExtractor
	metrics   *metrics.Metrics
	service   string
	logger    *zap.Logger
	now       func() time.Time
}

func NewIdentityService(extractor textExtractor, m *metrics.Metrics, service string, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		extractor: extractor,
		metrics:   m,
		service:   service,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *IdentityService) VerifyIdentity(ctx context.Context, req *dto.VerifyIdentityRequest) *dto.VerifyIdentityResponse {
	nomAttendu := strings.TrimSpace(req.Nom)
	prenomAttendu := strings.TrimSpace(req.Prenom)

	data, err := DecodeBase64Payload(req.FileBase64)
	if err != nil {
		return &dto.VerifyIdentityResponse{Valide: false, Error: "fileBase64 invalide"}
	}

	// Identity cards arrive as photos; the PDF path has no reliable crop of
	// the card itself.
	if IsPDF(data) {
		return &dto.VerifyIdentityResponse{Valide: false, Error: "PDF non supporté. Envoie une image JPG/PNG."}
	}

	ocrText, ocrMethod, err := s.extractor.ExtractFromBytes(ctx, data)
	if err != nil {
		s.logger.Warn("Identity OCR failed", zap.Error(err))
	}

	if utf8.RuneCountInString(ocrText) < 20 {
		resp := &dto.VerifyIdentityResponse{
			Valide:    false,
			Reason:    "texte_non_detecte",
			Confiance: 0.1,
			Details:   "Méthode: " + ocrMethod,
			Comparison: &dto.IdentityComparison{
				NomPiece:            nonDetecte,
				NomAttendu:          nomAttendu,
				NomCorrespond:       false,
				PrenomPiece:         nonDetecte,
				PrenomAttendu:       prenomAttendu,
				PrenomCorrespond:    false,
				DateExpirationPiece: nonDetecte,
				DocumentExpire:      nil,
			},
		}
		s.record(resp)
		return resp
	}

	resp := s.verifyExtractedText(ocrText, nomAttendu, prenomAttendu)
	resp.Details = "Méthode: " + ocrMethod
	s.record(resp)
	return resp
}

// verifyExtractedText runs the comparison on already-extracted OCR text.
func (s *IdentityService) verifyExtractedText(ocrText, nomAttendu, prenomAttendu string) *dto.VerifyIdentityResponse {
	fields := extract.IdentityFieldsFromOCR(ocrText)

	nomCorrespond := extract.CompareRobust(fields.Nom, nomAttendu)
	prenomCorrespond := extract.AllGivenNamesFound(fields.Prenom, prenomAttendu)

	var documentExpire *bool
	expirationPiece := nonDetecte
	if expiry, ok := extract.LooseDate(fields.Expiration); ok {
		expired := expiry.Before(s.now())
		documentExpire = &expired
		expirationPiece = expiry.Format("2006-01-02")
	}

	// An undetected expiry does not invalidate. Only a confidently parsed
	// past date does.
	valide := nomCorrespond && prenomCorrespond && (documentExpire == nil || !*documentExpire)

	reason := ""
	switch {
	case !nomCorrespond:
		reason = "nom_mismatch"
	case !prenomCorrespond:
		reason = "prenom_mismatch"
	case documentExpire != nil && *documentExpire:
		reason = "document_expire"
	case documentExpire == nil:
		reason = "expiration_non_detectee"
	}

	confiance := 0.4
	if valide {
		confiance = 0.95
	}

	nomPiece := fields.Nom
	if nomPiece == "" {
		nomPiece = nonDetecte
	}
	prenomPiece := fields.Prenom
	if prenomPiece == "" {
		prenomPiece = nonDetecte
	}

	return &dto.VerifyIdentityResponse{
		Valide:    valide,
		Reason:    reason,
		Confiance: confiance,
		Comparison: &dto.IdentityComparison{
			NomPiece:            nomPiece,
			NomAttendu:          nomAttendu,
			NomCorrespond:       nomCorrespond,
			PrenomPiece:         prenomPiece,
			PrenomAttendu:       prenomAttendu,
			PrenomCorrespond:    prenomCorrespond,
			DateExpirationPiece: expirationPiece,
			DocumentExpire:      documentExpire,
			TexteOCRExtrait:     truncate(ocrText, 1200),
		},
	}
}

func (s *IdentityService) record(resp *dto.VerifyIdentityResponse) {
	status := "FAIL"
	if resp.Valide {
		status = "OK"
	}
	s.metrics.RecordCheck(s.service, "identite", status, resp.Confiance)

	s.logger.Info("Identity verification completed",
		zap.Bool("valide", resp.Valide),
		zap.String("reason", resp.Reason),
	)
}
