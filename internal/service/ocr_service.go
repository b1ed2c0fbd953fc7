package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	_ "image/jpeg"

	"formadoc/internal/models"
	"formadoc/pkg/metrics"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

const (
	// PDF text layers shorter than this are treated as scans and re-run
	// through OCR on a rendered page.
	pdfTextMinLength = 100

	// OCR.space output shorter than this triggers the local tesseract and
	// vision fallbacks.
	imageTextMinLength = 80

	ocrRenderDPI = 220
)

// OCRService produces text from document bytes. PDFs go through the text
// layer first, then rendered-page OCR; images go through OCR.space, then
// local tesseract, then vision transcription. Each step only replaces the
// previous result when it yields more text.
type OCRService struct {
	ocrSpace *OCRSpaceClient
	llm      *LLMService
	metrics  *metrics.Metrics
	service  string
	logger   *zap.Logger
}

func NewOCRService(ocrSpace *OCRSpaceClient, llm *LLMService, m *metrics.Metrics, service string, logger *zap.Logger) *OCRService {
	return &OCRService{
		ocrSpace: ocrSpace,
		llm:      llm,
		metrics:  m,
		service:  service,
		logger:   logger,
	}
}

// IsPDF reports whether data starts with the %PDF magic bytes.
func IsPDF(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x25 && data[1] == 0x50 && data[2] == 0x44 && data[3] == 0x46
}

// ExtractFromBytes routes document bytes to the PDF or image chain and
// returns the extracted text with its provenance.
func (s *OCRService) ExtractFromBytes(ctx context.Context, data []byte) (string, string, error) {
	if IsPDF(data) {
		return s.ExtractFromPDF(ctx, data)
	}
	return s.ExtractFromImage(ctx, data)
}

// ExtractFromPDF reads the embedded text layer. A near-empty layer means the
// PDF is a scan, so the first page is rendered and OCR'd locally.
func (s *OCRService) ExtractFromPDF(ctx context.Context, data []byte) (string, string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", models.OCRMethodNone, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.Error(err),
			)
			continue
		}
		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	text := strings.TrimSpace(textBuilder.String())
	if len(text) >= pdfTextMinLength {
		s.metrics.RecordOCR(s.service, models.OCRMethodPDFText, len(text), nil)
		s.logger.Info("PDF text layer extracted",
			zap.Int("pages", doc.NumPage()),
			zap.Int("text_length", len(text)),
		)
		return text, models.OCRMethodPDFText, nil
	}

	// Scanned PDF: render the first page and OCR it.
	img, err := doc.ImageDPI(0, ocrRenderDPI)
	if err != nil {
		s.metrics.RecordOCR(s.service, models.OCRMethodPDFText, 0, err)
		return text, models.OCRMethodPDFText, fmt.Errorf("failed to render PDF page: %w", err)
	}

	ocrText, err := s.runTesseract(img)
	if err != nil {
		s.metrics.RecordOCR(s.service, models.OCRMethodTesseract, 0, err)
		// Keep whatever the text layer gave us rather than failing outright.
		return text, models.OCRMethodPDFText, nil
	}
	if len(ocrText) > len(text) {
		s.metrics.RecordOCR(s.service, models.OCRMethodTesseract, len(ocrText), nil)
		s.logger.Info("Scanned PDF OCR'd locally", zap.Int("text_length", len(ocrText)))
		return ocrText, models.OCRMethodTesseract, nil
	}
	return text, models.OCRMethodPDFText, nil
}

// ExtractFromImage runs the image chain. The hosted OCR result is kept unless
// a fallback produces strictly more text.
func (s *OCRService) ExtractFromImage(ctx context.Context, data []byte) (string, string, error) {
	var text string
	method := models.OCRMethodNone

	if s.ocrSpace != nil {
		parsed, err := s.ocrSpace.ParseImage(ctx, data)
		s.metrics.RecordOCR(s.service, models.OCRMethodOCRSpace, len(parsed), err)
		if err != nil {
			s.logger.Warn("OCR.space extraction failed", zap.Error(err))
		} else if parsed != "" {
			text = parsed
			method = models.OCRMethodOCRSpace
		}
	}

	if len(text) < imageTextMinLength {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			s.logger.Warn("Failed to decode image for local OCR", zap.Error(err))
		} else {
			ocrText, err := s.runTesseract(img)
			s.metrics.RecordOCR(s.service, models.OCRMethodTesseract, len(ocrText), err)
			if err != nil {
				s.logger.Warn("Tesseract extraction failed", zap.Error(err))
			} else if len(ocrText) > len(text) {
				text = ocrText
				method = models.OCRMethodTesseract
			}
		}
	}

	if len(text) < imageTextMinLength && s.llm != nil {
		aiText, err := s.llm.TranscribeImage(ctx, data, "document.jpg")
		s.metrics.RecordOCR(s.service, models.OCRMethodVision, len(aiText), err)
		if err != nil {
			s.logger.Warn("Vision transcription failed", zap.Error(err))
		} else if len(aiText) > len(text) {
			text = aiText
			method = models.OCRMethodVision
		}
	}

	if text == "" {
		return "", method, fmt.Errorf("no text extracted from image")
	}
	return strings.TrimSpace(text), method, nil
}

// runTesseract binarizes the page and runs local French OCR on it.
func (s *OCRService) runTesseract(img image.Image) (string, error) {
	processed := binarize(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage("fra"); err != nil {
		return "", fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to run OCR: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// binarize converts to grayscale and thresholds. Scans of administrative
// documents are mostly dark text on light paper, so a fixed threshold works
// well enough for tesseract.
func binarize(img image.Image) image.Image {
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	const threshold = 0x8000

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if uint32(c.Y)<<8 >= threshold {
				out.SetGray(x, y, color.Gray{Y: 0xFF})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0x00})
			}
		}
	}
	return out
}
