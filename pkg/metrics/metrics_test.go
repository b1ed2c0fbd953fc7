package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCheckCountsPerDocTypeAndStatus(t *testing.T) {
	m := New("test")

	m.RecordCheck("test", "urssaf", "OK", 0.9)
	m.RecordCheck("test", "urssaf", "OK", 0.85)
	m.RecordCheck("test", "", "FAIL", 0.9)

	if got := testutil.ToFloat64(m.checksTotal.WithLabelValues("test", "urssaf", "OK")); got != 2 {
		t.Fatalf("expected 2 OK checks, got %f", got)
	}
	if got := testutil.ToFloat64(m.checksTotal.WithLabelValues("test", "unknown", "FAIL")); got != 1 {
		t.Fatalf("expected empty doc type folded into unknown, got %f", got)
	}
}

func TestRecordOCRSeparatesOutcomes(t *testing.T) {
	m := New("test")

	m.RecordOCR("test", "tesseract", 240, nil)
	m.RecordOCR("test", "tesseract", 0, errors.New("boom"))

	if got := testutil.ToFloat64(m.ocrRequestsTotal.WithLabelValues("test", "tesseract", "ok")); got != 1 {
		t.Fatalf("expected 1 ok OCR request, got %f", got)
	}
	if got := testutil.ToFloat64(m.ocrRequestsTotal.WithLabelValues("test", "tesseract", "error")); got != 1 {
		t.Fatalf("expected 1 failed OCR request, got %f", got)
	}
}

func TestRecordLLMSeparatesOutcomes(t *testing.T) {
	m := New("test")

	m.RecordLLM("test", "analyze_cv", nil)
	m.RecordLLM("test", "analyze_cv", errors.New("timeout"))

	if got := testutil.ToFloat64(m.llmRequestsTotal.WithLabelValues("test", "analyze_cv", "ok")); got != 1 {
		t.Fatalf("expected 1 ok LLM call, got %f", got)
	}
	if got := testutil.ToFloat64(m.llmRequestsTotal.WithLabelValues("test", "analyze_cv", "error")); got != 1 {
		t.Fatalf("expected 1 failed LLM call, got %f", got)
	}
}
