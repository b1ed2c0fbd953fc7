package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"formadoc/internal/dto"
	"formadoc/internal/extract"
	"formadoc/internal/models"
	"formadoc/internal/signature"
	"formadoc/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type textExtractor interface {
	ExtractFromBytes(ctx context.Context, data []byte) (text string, method string, err error)
}

type checkStore interface {
	Save(ctx context.Context, rec *models.CheckRecord) error
}

// CheckService runs the document verification pipeline: text acquisition,
// signature classification, date validity, identity comparison, verdict.
// Every business outcome is a verdict; the only hard errors the caller sees
// are malformed requests, handled upstream.
type CheckService struct {
	extractor textExtractor
	store     checkStore
	metrics   *metrics.Metrics
	service   string
	logger    *zap.Logger
	now       func() time.Time
}

// NewCheckService wires the pipeline. store may be nil when the audit
// database is disabled.
func NewCheckService(extractor textExtractor, store checkStore, m *metrics.Metrics, service string, logger *zap.Logger) *CheckService {
	return &CheckService{
		extractor: extractor,
		store:     store,
		metrics:   m,
		service:   service,
		logger:    logger,
		now:       time.Now,
	}
}

// Check produces a verdict for one document. It never returns an error:
// ambiguous evidence degrades to REVIEW so a human gets the case instead of
// the applicant getting auto-rejected.
func (s *CheckService) Check(ctx context.Context, req *dto.CheckRequest) *dto.VerdictResponse {
	docType := models.DocType(strings.ToLower(strings.TrimSpace(req.DocType)))

	// No declared identity means nothing to compare against, so the check
	// cannot conclude. Bail out before spending any OCR time.
	if req.Reference == nil || req.Reference.Empty() {
		return &dto.VerdictResponse{
			Status:  string(models.StatusReview),
			Reason:  models.ReasonMissingRef,
			Message: "Nom/Prénom requis",
		}
	}

	var text string
	ocrMethod := models.OCRMethodNone

	switch models.ContentType(req.ContentType) {
	case models.ContentTypePDFText:
		// Caller already ran a PDF text-layer reader upstream.
		text = req.Text
		ocrMethod = models.OCRMethodPDFText
	case models.ContentTypeImage:
		data, err := DecodeBase64Payload(req.FileBase64)
		if err != nil {
			s.logger.Warn("Failed to decode image payload", zap.Error(err))
		} else if IsPDF(data) {
			// Front ends normally send PDFs as pdf_text; a PDF on the image
			// path would only confuse the OCR chain.
			return s.finish(ctx, docType, &dto.VerdictResponse{
				Status:  string(models.StatusReview),
				Reason:  models.ReasonPDFReceived,
				Message: "PDF reçu en image. Envoie pdf_text (extraction) ou une image JPG/PNG.",
				Debug:   &dto.DebugInfo{OCRMethod: models.OCRMethodPDFDetected},
			})
		} else {
			extracted, method, err := s.extractor.ExtractFromBytes(ctx, data)
			if err != nil {
				s.logger.Warn("Text extraction failed", zap.Error(err))
			}
			text = extracted
			ocrMethod = method
		}
	default:
		return &dto.VerdictResponse{
			Status:  string(models.StatusReview),
			Reason:  models.ReasonBadContentType,
			Message: "contentType doit être image ou pdf_text",
		}
	}

	cleanText := extract.Normalize(text)
	textLen := utf8.RuneCountInString(cleanText)
	debug := &dto.DebugInfo{OCRMethod: ocrMethod, TextLength: textLen}

	if textLen < 60 {
		return s.finish(ctx, docType, &dto.VerdictResponse{
			Status:  string(models.StatusReview),
			Reason:  models.ReasonUnreadable,
			Message: "⚠️ Texte illisible (scan / mauvaise qualité). Essaie une image plus nette ou un PDF texte.",
			Debug:   debug,
		})
	}

	sig := signature.Lookup(docType)
	cls := signature.Classify(sig, cleanText)

	if cls.WrongType() {
		return s.finish(ctx, docType, &dto.VerdictResponse{
			Status:     string(models.StatusFail),
			Reason:     models.ReasonWrongDocType,
			Confidence: 0.9,
			Message:    "❌ Document ne semble pas correspondre au type demandé",
			Extracted:  &dto.ExtractedInfo{KeywordsScore: cls.KeywordsScore, WrongHits: cls.WrongTypeHits},
			Debug:      debug,
		})
	}

	if cls.KeywordsScore < sig.MinKeywordsScore {
		return s.finish(ctx, docType, &dto.VerdictResponse{
			Status:     string(models.StatusReview),
			Reason:     models.ReasonLowKeywords,
			Confidence: 0.45,
			Message:    "⚠️ Type du document incertain (mots-clés insuffisants), à vérifier",
			Extracted:  &dto.ExtractedInfo{KeywordsScore: cls.KeywordsScore},
			Debug:      debug,
		})
	}

	if cls.MissingMarkers() {
		// Sparse text gets the benefit of the doubt: the marker may simply
		// not have survived the scan.
		if textLen < signature.ShortTextThreshold {
			return s.finish(ctx, docType, &dto.VerdictResponse{
				Status:     string(models.StatusReview),
				Reason:     models.ReasonMissingMarker,
				Confidence: 0.5,
				Message:    "⚠️ Document trop court pour confirmer les mentions obligatoires, à vérifier",
				Extracted:  &dto.ExtractedInfo{KeywordsScore: cls.KeywordsScore},
				Debug:      debug,
			})
		}
		return s.finish(ctx, docType, &dto.VerdictResponse{
			Status:     string(models.StatusFail),
			Reason:     models.ReasonMissingMarker,
			Confidence: 0.85,
			Message:    "❌ Mentions obligatoires introuvables dans le document",
			Extracted:  &dto.ExtractedInfo{KeywordsScore: cls.KeywordsScore},
			Debug:      debug,
		})
	}

	refNom := req.Reference.Nom
	refPrenom := req.Reference.Prenom

	foundNom, foundPrenom := extract.PersonName(cleanText)
	nomOK := extract.CompareRobust(foundNom, refNom)
	prenomOK := extract.AllGivenNamesFound(foundPrenom, refPrenom)

	// Administrative documents are often issued to the company, so a missing
	// personal name is not a mismatch. Only detected-but-different names count.
	namePenalty := 0
	if foundNom != "" || foundPrenom != "" {
		if !nomOK {
			namePenalty++
		}
		if !prenomOK {
			namePenalty++
		}
	}

	dates := extract.Dates(cleanText)
	validity := signature.EvaluateValidity(docType, dates, s.now())

	extracted := &dto.ExtractedInfo{
		FoundName:      foundNom,
		FoundFirstName: foundPrenom,
		Dates:          &validity,
		KeywordsScore:  cls.KeywordsScore,
	}

	if validity.IsExpired() {
		return s.finish(ctx, docType, &dto.VerdictResponse{
			Status:     string(models.StatusFail),
			Reason:     models.ReasonExpired,
			Confidence: 0.95,
			Message:    "❌ Document expiré",
			Extracted:  extracted,
			Debug:      debug,
		})
	}

	if namePenalty >= 2 {
		return s.finish(ctx, docType, &dto.VerdictResponse{
			Status:     string(models.StatusReview),
			Reason:     models.ReasonNameMismatch,
			Confidence: 0.55,
			Message:    "⚠️ Nom/Prénom détectés ne correspondent pas (à vérifier)",
			Extracted:  extracted,
			Debug:      debug,
		})
	}

	if validity.RequiresDate && !validity.HasUsableDate {
		return s.finish(ctx, docType, &dto.VerdictResponse{
			Status:     string(models.StatusReview),
			Reason:     models.ReasonNoDate,
			Confidence: 0.55,
			Message:    "⚠️ Date de validité/émission introuvable (scan ou format). À vérifier.",
			Extracted:  extracted,
			Debug:      debug,
		})
	}

	confidence := 0.65 + minFloat(0.25, float64(cls.KeywordsScore)*0.05)
	if validity.Expired != nil && !*validity.Expired {
		confidence += 0.05
	}
	if nomOK && prenomOK {
		confidence += 0.05
	}
	if namePenalty > 0 {
		confidence -= 0.1
	}

	return s.finish(ctx, docType, &dto.VerdictResponse{
		Status:     string(models.StatusOK),
		Reason:     models.ReasonOK,
		Confidence: clamp(confidence, 0, 0.99),
		Message:    "✅ Document cohérent",
		Extracted:  extracted,
		Debug:      debug,
	})
}

// finish records observability and the audit row, then hands the verdict
// back. Persistence failures are logged, never surfaced.
func (s *CheckService) finish(ctx context.Context, docType models.DocType, v *dto.VerdictResponse) *dto.VerdictResponse {
	s.metrics.RecordCheck(s.service, string(docType), v.Status, v.Confidence)

	if s.store != nil {
		rec := &models.CheckRecord{
			ID:         uuid.New(),
			DocType:    docType,
			Status:     models.VerdictStatus(v.Status),
			Reason:     v.Reason,
			Confidence: v.Confidence,
			CreatedAt:  s.now(),
		}
		if v.Debug != nil {
			rec.OCRMethod = v.Debug.OCRMethod
			rec.TextLength = v.Debug.TextLength
		}
		if err := s.store.Save(ctx, rec); err != nil {
			s.logger.Warn("Failed to save check record", zap.Error(err))
		}
	}

	s.logger.Info("Document check completed",
		zap.String("doc_type", string(docType)),
		zap.String("status", v.Status),
		zap.String("reason", v.Reason),
		zap.Float64("confidence", v.Confidence),
	)

	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
