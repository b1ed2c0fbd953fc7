package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"formadoc/internal/dto"
	"formadoc/pkg/metrics"

	"go.uber.org/zap"
)

func newIdentityServiceForTest(extractor textExtractor) *IdentityService {
	svc := NewIdentityService(extractor, metrics.New("test"), "test", zap.NewNop())
	svc.now = func() time.Time { return checkNow }
	return svc
}

const cniOCRText = `RÉPUBLIQUE FRANÇAISE
CARTE NATIONALE D'IDENTITÉ
NOM : DUPONT
PRÉNOMS : JEAN, PIERRE
DATE D'EXPIR : 15 06 2028`

func TestVerifyExtractedTextMatchingIdentity(t *testing.T) {
	svc := newIdentityServiceForTest(nil)

	resp := svc.verifyExtractedText(cniOCRText, "Dupont", "Jean Pierre")

	if !resp.Valide {
		t.Fatalf("expected valid identity, got reason %q", resp.Reason)
	}
	if resp.Confiance != 0.95 {
		t.Fatalf("expected confidence 0.95, got %f", resp.Confiance)
	}
	if resp.Comparison == nil {
		t.Fatal("expected a comparison payload")
	}
	if resp.Comparison.DateExpirationPiece != "2028-06-15" {
		t.Fatalf("expected expiry 2028-06-15, got %q", resp.Comparison.DateExpirationPiece)
	}
	if resp.Comparison.DocumentExpire == nil || *resp.Comparison.DocumentExpire {
		t.Fatal("expected document explicitly not expired")
	}
}

func TestVerifyExtractedTextExpiredCard(t *testing.T) {
	svc := newIdentityServiceForTest(nil)

	text := strings.Replace(cniOCRText, "15 06 2028", "15 06 2020", 1)
	resp := svc.verifyExtractedText(text, "Dupont", "Jean Pierre")

	if resp.Valide {
		t.Fatal("expected expired card rejected")
	}
	if resp.Reason != "document_expire" {
		t.Fatalf("expected document_expire, got %q", resp.Reason)
	}
	if resp.Confiance != 0.4 {
		t.Fatalf("expected confidence 0.4, got %f", resp.Confiance)
	}
}

func TestVerifyExtractedTextUndetectedExpiryStaysValid(t *testing.T) {
	svc := newIdentityServiceForTest(nil)

	text := "NOM : DUPONT\nPRÉNOMS : JEAN, PIERRE"
	resp := svc.verifyExtractedText(text, "Dupont", "Jean Pierre")

	if !resp.Valide {
		t.Fatalf("expected valid without a detected expiry, got reason %q", resp.Reason)
	}
	if resp.Reason != "expiration_non_detectee" {
		t.Fatalf("expected expiration_non_detectee, got %q", resp.Reason)
	}
	if resp.Comparison.DocumentExpire != nil {
		t.Fatal("expected three-valued expiry left unset")
	}
	if resp.Comparison.DateExpirationPiece != nonDetecte {
		t.Fatalf("expected %q, got %q", nonDetecte, resp.Comparison.DateExpirationPiece)
	}
}

func TestVerifyExtractedTextSurnameMismatch(t *testing.T) {
	svc := newIdentityServiceForTest(nil)

	resp := svc.verifyExtractedText(cniOCRText, "Martin", "Jean Pierre")

	if resp.Valide {
		t.Fatal("expected mismatching surname rejected")
	}
	if resp.Reason != "nom_mismatch" {
		t.Fatalf("expected nom_mismatch, got %q", resp.Reason)
	}
	if resp.Comparison.NomPiece != "DUPONT" || resp.Comparison.NomAttendu != "Martin" {
		t.Fatalf("unexpected comparison %+v", resp.Comparison)
	}
}

func TestVerifyExtractedTextTruncatesEchoedOCR(t *testing.T) {
	svc := newIdentityServiceForTest(nil)

	long := cniOCRText + "\n" + strings.Repeat("é", 2000)
	resp := svc.verifyExtractedText(long, "Dupont", "Jean Pierre")

	if got := len([]rune(resp.Comparison.TexteOCRExtrait)); got != 1200 {
		t.Fatalf("expected echoed OCR capped at 1200 runes, got %d", got)
	}
}

func TestVerifyIdentityRejectsPDFPayload(t *testing.T) {
	svc := newIdentityServiceForTest(&fakeTextExtractor{})

	req := &dto.VerifyIdentityRequest{
		FileBase64: base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake")),
		Nom:        "Dupont",
		Prenom:     "Jean",
	}
	resp := svc.VerifyIdentity(context.Background(), req)

	if resp.Valide {
		t.Fatal("expected PDF payload rejected")
	}
	if !strings.Contains(resp.Error, "PDF non supporté") {
		t.Fatalf("expected PDF rejection message, got %q", resp.Error)
	}
}

func TestVerifyIdentityShortOCRTextLowConfidence(t *testing.T) {
	svc := newIdentityServiceForTest(&fakeTextExtractor{text: "bruit", method: "tesseract"})

	req := &dto.VerifyIdentityRequest{
		FileBase64: base64.StdEncoding.EncodeToString([]byte("image")),
		Nom:        "Dupont",
		Prenom:     "Jean",
	}
	resp := svc.VerifyIdentity(context.Background(), req)

	if resp.Valide {
		t.Fatal("expected unreadable scan rejected")
	}
	if resp.Reason != "texte_non_detecte" {
		t.Fatalf("expected texte_non_detecte, got %q", resp.Reason)
	}
	if resp.Confiance != 0.1 {
		t.Fatalf("expected confidence 0.1, got %f", resp.Confiance)
	}
	if resp.Comparison.NomPiece != nonDetecte {
		t.Fatalf("expected %q, got %q", nonDetecte, resp.Comparison.NomPiece)
	}
}

func TestVerifyIdentityCountsRunesNotBytesForShortText(t *testing.T) {
	// 15 characters but 30 bytes of accented noise: still too short to read.
	svc := newIdentityServiceForTest(&fakeTextExtractor{text: strings.Repeat("é", 15), method: "tesseract"})

	req := &dto.VerifyIdentityRequest{
		FileBase64: base64.StdEncoding.EncodeToString([]byte("image")),
		Nom:        "Dupont",
		Prenom:     "Jean",
	}
	resp := svc.VerifyIdentity(context.Background(), req)

	if resp.Reason != "texte_non_detecte" {
		t.Fatalf("expected texte_non_detecte, got %q", resp.Reason)
	}
	if resp.Confiance != 0.1 {
		t.Fatalf("expected confidence 0.1, got %f", resp.Confiance)
	}
}

func TestVerifyIdentityInvalidBase64(t *testing.T) {
	svc := newIdentityServiceForTest(nil)

	resp := svc.VerifyIdentity(context.Background(), &dto.VerifyIdentityRequest{FileBase64: "!!!"})
	if resp.Valide || resp.Error == "" {
		t.Fatalf("expected payload error, got %+v", resp)
	}
}
