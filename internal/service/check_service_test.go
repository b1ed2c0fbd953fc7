package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"formadoc/internal/dto"
	"formadoc/internal/models"
	"formadoc/pkg/metrics"

	"go.uber.org/zap"
)

var checkNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	saved []*models.CheckRecord
	err   error
}

func (f *fakeStore) Save(_ context.Context, rec *models.CheckRecord) error {
	f.saved = append(f.saved, rec)
	return f.err
}

type fakeTextExtractor struct {
	text   string
	method string
	err    error
}

func (f *fakeTextExtractor) ExtractFromBytes(context.Context, []byte) (string, string, error) {
	return f.text, f.method, f.err
}

func newCheckServiceForTest(store checkStore) *CheckService {
	svc := NewCheckService(nil, store, metrics.New("test"), "test", zap.NewNop())
	svc.now = func() time.Time { return checkNow }
	return svc
}

func pdfTextRequest(docType, text string) *dto.CheckRequest {
	return &dto.CheckRequest{
		DocType:     docType,
		ContentType: string(models.ContentTypePDFText),
		Text:        text,
		Reference:   &models.ReferenceIdentity{Nom: "Dupont", Prenom: "Jean"},
	}
}

const urssafAttestation = `URSSAF ILE-DE-FRANCE
ATTESTATION DE VIGILANCE
Le cotisant est à jour de ses cotisations et contributions sociales.
SIRET : 123 456 789 00012
Fait le 01/06/2025`

func TestCheckAcceptsConsistentURSSAFAttestation(t *testing.T) {
	store := &fakeStore{}
	svc := newCheckServiceForTest(store)

	v := svc.Check(context.Background(), pdfTextRequest("urssaf", urssafAttestation))

	if v.Status != string(models.StatusOK) {
		t.Fatalf("expected OK, got %s (%s)", v.Status, v.Reason)
	}
	if v.Reason != models.ReasonOK {
		t.Fatalf("expected reason ok, got %s", v.Reason)
	}
	// score 4 with a usable fresh date and no name evidence.
	if v.Confidence < 0.89 || v.Confidence > 0.91 {
		t.Fatalf("expected confidence around 0.90, got %f", v.Confidence)
	}
	if v.Extracted == nil || v.Extracted.Dates == nil {
		t.Fatal("expected extracted dates in the verdict")
	}
	if v.Extracted.Dates.ReviewRecommended {
		t.Fatal("expected no staleness review for a 3-month-old attestation")
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(store.saved))
	}
	if store.saved[0].Status != models.StatusOK || store.saved[0].DocType != models.DocTypeURSSAF {
		t.Fatalf("unexpected audit row %+v", store.saved[0])
	}
}

func TestCheckRejectsIdentityCardUploadedAsURSSAF(t *testing.T) {
	svc := newCheckServiceForTest(&fakeStore{})

	text := `RÉPUBLIQUE FRANÇAISE
CARTE NATIONALE D'IDENTITÉ
Cette carte d'identité est délivrée au titulaire désigné ci-dessus.`

	v := svc.Check(context.Background(), pdfTextRequest("urssaf", text))

	if v.Status != string(models.StatusFail) {
		t.Fatalf("expected FAIL, got %s (%s)", v.Status, v.Reason)
	}
	if v.Reason != models.ReasonWrongDocType {
		t.Fatalf("expected wrong_doc_type, got %s", v.Reason)
	}
	if v.Confidence != 0.9 {
		t.Fatalf("expected confidence 0.9, got %f", v.Confidence)
	}
	if v.Extracted == nil || v.Extracted.WrongHits < 2 {
		t.Fatalf("expected wrong-type hits reported, got %+v", v.Extracted)
	}
}

func TestCheckShortTextIsUnreadable(t *testing.T) {
	store := &fakeStore{}
	svc := newCheckServiceForTest(store)

	v := svc.Check(context.Background(), pdfTextRequest("urssaf", "Document illisible"))

	if v.Status != string(models.StatusReview) {
		t.Fatalf("expected REVIEW, got %s", v.Status)
	}
	if v.Reason != models.ReasonUnreadable {
		t.Fatalf("expected unreadable, got %s", v.Reason)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected the unreadable verdict audited, got %d rows", len(store.saved))
	}
}

func TestCheckCountsRunesNotBytesForReadability(t *testing.T) {
	svc := newCheckServiceForTest(&fakeStore{})

	// 55 characters but 110 bytes: accented text must not pass the gate.
	text := strings.Repeat("é", 55)
	if len(text) < 60 {
		t.Fatalf("fixture must exceed the threshold in bytes, got %d", len(text))
	}

	v := svc.Check(context.Background(), pdfTextRequest("urssaf", text))

	if v.Reason != models.ReasonUnreadable {
		t.Fatalf("expected unreadable, got %s", v.Reason)
	}
	if v.Debug == nil || v.Debug.TextLength != 55 {
		t.Fatalf("expected text length counted in characters, got %+v", v.Debug)
	}
}

func TestCheckLowKeywordScoreGoesToReview(t *testing.T) {
	svc := newCheckServiceForTest(&fakeStore{})

	text := "URSSAF caisse nationale, courrier d'information générale destiné aux usagers du service public."
	v := svc.Check(context.Background(), pdfTextRequest("urssaf", text))

	if v.Status != string(models.StatusReview) {
		t.Fatalf("expected REVIEW, got %s (%s)", v.Status, v.Reason)
	}
	if v.Reason != models.ReasonLowKeywords {
		t.Fatalf("expected low_keyword_match, got %s", v.Reason)
	}
	if v.Confidence != 0.45 {
		t.Fatalf("expected confidence 0.45, got %f", v.Confidence)
	}
}

func TestCheckMissingMarkersFailOnLongText(t *testing.T) {
	svc := newCheckServiceForTest(&fakeStore{})

	// Kbis-looking text without the RCS anchor, long enough to trust the scan.
	text := `EXTRAIT KBIS
SIREN 512 345 678
GREFFE DU TRIBUNAL DE COMMERCE DE PARIS
Document d'information délivré pour toute démarche administrative courante.`

	v := svc.Check(context.Background(), pdfTextRequest("kbis", text))

	if v.Status != string(models.StatusFail) {
		t.Fatalf("expected FAIL, got %s (%s)", v.Status, v.Reason)
	}
	if v.Reason != models.ReasonMissingMarker {
		t.Fatalf("expected missing_required_marker, got %s", v.Reason)
	}
	if v.Confidence != 0.85 {
		t.Fatalf("expected confidence 0.85, got %f", v.Confidence)
	}
}

func TestCheckMissingMarkersOnSparseTextOnlyReviews(t *testing.T) {
	svc := newCheckServiceForTest(&fakeStore{})

	text := "EXTRAIT KBIS SIREN 512 345 678 GREFFE DE PARIS document partiel tronqué"
	if n := utf8.RuneCountInString(text); n < 60 || n >= 120 {
		t.Fatalf("fixture must sit between the unreadable and trust thresholds, got %d", n)
	}

	v := svc.Check(context.Background(), pdfTextRequest("kbis", text))

	if v.Status != string(models.StatusReview) {
		t.Fatalf("expected REVIEW, got %s (%s)", v.Status, v.Reason)
	}
	if v.Reason != models.ReasonMissingMarker {
		t.Fatalf("expected missing_required_marker, got %s", v.Reason)
	}
	if v.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %f", v.Confidence)
	}
}

func TestCheckOldKbisPassesWithReviewRecommendation(t *testing.T) {
	svc := newCheckServiceForTest(&fakeStore{})

	// Issued 2025-01-10, 234 days before the fixed clock.
	text := `EXTRAIT KBIS
RCS PARIS 512 345 678
SIREN 512 345 678
GREFFE DU TRIBUNAL DE COMMERCE DE PARIS
Fait le 10/01/2025`

	v := svc.Check(context.Background(), pdfTextRequest("kbis", text))

	if v.Status != string(models.StatusOK) {
		t.Fatalf("expected OK, got %s (%s)", v.Status, v.Reason)
	}
	if v.Extracted == nil || v.Extracted.Dates == nil {
		t.Fatal("expected validity details")
	}
	if v.Extracted.Dates.Rule != "kbis_old_review" {
		t.Fatalf("expected rule kbis_old_review, got %q", v.Extracted.Dates.Rule)
	}
	if !v.Extracted.Dates.ReviewRecommended {
		t.Fatal("expected staleness flagged for the reviewer")
	}
}

func TestCheckDetectedNameMismatchGoesToReview(t *testing.T) {
	svc := newCheckServiceForTest(&fakeStore{})

	text := urssafAttestation + "\nNOM : MARTIN\nPRENOM : PAUL"
	v := svc.Check(context.Background(), pdfTextRequest("urssaf", text))

	if v.Status != string(models.StatusReview) {
		t.Fatalf("expected REVIEW, got %s (%s)", v.Status, v.Reason)
	}
	if v.Reason != models.ReasonNameMismatch {
		t.Fatalf("expected name_mismatch, got %s", v.Reason)
	}
	if v.Extracted == nil || v.Extracted.FoundName != "MARTIN" {
		t.Fatalf("expected detected surname reported, got %+v", v.Extracted)
	}
}

func TestCheckMissingDateGoesToReview(t *testing.T) {
	svc := newCheckServiceForTest(&fakeStore{})

	text := `URSSAF ILE-DE-FRANCE
ATTESTATION DE VIGILANCE
Le cotisant est à jour de ses cotisations et contributions sociales.
SIRET : 123 456 789 00012`

	v := svc.Check(context.Background(), pdfTextRequest("urssaf", text))

	if v.Status != string(models.StatusReview) {
		t.Fatalf("expected REVIEW, got %s (%s)", v.Status, v.Reason)
	}
	if v.Reason != models.ReasonNoDate {
		t.Fatalf("expected no_date, got %s", v.Reason)
	}
}

func TestCheckWithoutReferenceIdentityShortCircuits(t *testing.T) {
	store := &fakeStore{}
	svc := newCheckServiceForTest(store)

	v := svc.Check(context.Background(), &dto.CheckRequest{
		DocType:     "urssaf",
		ContentType: string(models.ContentTypePDFText),
		Text:        urssafAttestation,
	})

	if v.Status != string(models.StatusReview) {
		t.Fatalf("expected REVIEW, got %s", v.Status)
	}
	if v.Reason != models.ReasonMissingRef {
		t.Fatalf("expected missing_reference, got %s", v.Reason)
	}
	if v.Confidence != 0 {
		t.Fatalf("expected confidence 0, got %f", v.Confidence)
	}
	if len(store.saved) != 0 {
		t.Fatalf("expected no audit row for a request without identity, got %d", len(store.saved))
	}
}

func TestCheckBlankReferenceIdentityShortCircuits(t *testing.T) {
	svc := newCheckServiceForTest(&fakeStore{})

	v := svc.Check(context.Background(), &dto.CheckRequest{
		DocType:     "urssaf",
		ContentType: string(models.ContentTypePDFText),
		Text:        urssafAttestation,
		Reference:   &models.ReferenceIdentity{Nom: "  ", Prenom: "Jean"},
	})

	if v.Reason != models.ReasonMissingRef {
		t.Fatalf("expected missing_reference, got %s", v.Reason)
	}
}

func TestCheckPDFOnImagePathGoesToReview(t *testing.T) {
	store := &fakeStore{}
	extractor := &fakeTextExtractor{text: urssafAttestation, method: models.OCRMethodTesseract}
	svc := NewCheckService(extractor, store, metrics.New("test"), "test", zap.NewNop())
	svc.now = func() time.Time { return checkNow }

	req := &dto.CheckRequest{
		DocType:     "urssaf",
		ContentType: string(models.ContentTypeImage),
		FileBase64:  base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake body")),
		Reference:   &models.ReferenceIdentity{Nom: "Dupont", Prenom: "Jean"},
	}

	v := svc.Check(context.Background(), req)

	if v.Status != string(models.StatusReview) {
		t.Fatalf("expected REVIEW, got %s (%s)", v.Status, v.Reason)
	}
	if v.Reason != models.ReasonPDFReceived {
		t.Fatalf("expected pdf_received, got %s", v.Reason)
	}
	if v.Debug == nil || v.Debug.OCRMethod != models.OCRMethodPDFDetected {
		t.Fatalf("expected pdf_detected provenance, got %+v", v.Debug)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected the verdict audited, got %d rows", len(store.saved))
	}
}

func TestCheckBadContentTypeIsNotAudited(t *testing.T) {
	store := &fakeStore{}
	svc := newCheckServiceForTest(store)

	v := svc.Check(context.Background(), &dto.CheckRequest{
		DocType:     "urssaf",
		ContentType: "docx",
		Reference:   &models.ReferenceIdentity{Nom: "Dupont", Prenom: "Jean"},
	})

	if v.Reason != models.ReasonBadContentType {
		t.Fatalf("expected bad_contentType, got %s", v.Reason)
	}
	if v.Status != string(models.StatusReview) {
		t.Fatalf("expected REVIEW, got %s", v.Status)
	}
	if len(store.saved) != 0 {
		t.Fatalf("expected no audit row for a malformed request, got %d", len(store.saved))
	}
}

func TestCheckImagePathUsesExtractor(t *testing.T) {
	svc := NewCheckService(&fakeTextExtractor{text: urssafAttestation, method: models.OCRMethodTesseract}, nil, metrics.New("test"), "test", zap.NewNop())
	svc.now = func() time.Time { return checkNow }

	req := &dto.CheckRequest{
		DocType:     "urssaf",
		ContentType: string(models.ContentTypeImage),
		FileBase64:  base64.StdEncoding.EncodeToString([]byte("fake image bytes")),
		Reference:   &models.ReferenceIdentity{Nom: "Dupont", Prenom: "Jean"},
	}

	v := svc.Check(context.Background(), req)

	if v.Status != string(models.StatusOK) {
		t.Fatalf("expected OK, got %s (%s)", v.Status, v.Reason)
	}
	if v.Debug == nil || v.Debug.OCRMethod != models.OCRMethodTesseract {
		t.Fatalf("expected tesseract provenance, got %+v", v.Debug)
	}
}

func TestCheckSurvivesAuditStoreFailure(t *testing.T) {
	store := &fakeStore{err: context.DeadlineExceeded}
	svc := newCheckServiceForTest(store)

	v := svc.Check(context.Background(), pdfTextRequest("urssaf", urssafAttestation))

	if v.Status != string(models.StatusOK) {
		t.Fatalf("expected the verdict unaffected by a store failure, got %s", v.Status)
	}
}
