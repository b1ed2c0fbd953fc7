package service

import "testing"

func TestDecodeBase64PayloadAcceptsDataURI(t *testing.T) {
	got, err := DecodeBase64Payload("data:image/png;base64,SGVsbG8=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "Hello" {
		t.Fatalf("expected Hello, got %q", got)
	}
}

func TestDecodeBase64PayloadAcceptsUnpadded(t *testing.T) {
	got, err := DecodeBase64Payload("SGVsbG8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "Hello" {
		t.Fatalf("expected Hello, got %q", got)
	}
}

func TestDecodeBase64PayloadRejectsGarbage(t *testing.T) {
	if _, err := DecodeBase64Payload("!!!"); err == nil {
		t.Fatal("expected error on invalid base64")
	}
	if _, err := DecodeBase64Payload("   "); err == nil {
		t.Fatal("expected error on empty payload")
	}
}

func TestIsPDFDetectsMagicBytes(t *testing.T) {
	if !IsPDF([]byte("%PDF-1.7 content")) {
		t.Fatal("expected PDF magic detected")
	}
	if IsPDF([]byte{0x89, 'P', 'N', 'G'}) {
		t.Fatal("expected PNG not detected as PDF")
	}
	if IsPDF([]byte("%PD")) {
		t.Fatal("expected truncated prefix rejected")
	}
}

func TestTruncateIsRuneSafe(t *testing.T) {
	if got := truncate("héllo", 3); got != "hél" {
		t.Fatalf("expected rune-safe cut, got %q", got)
	}
	if got := truncate("court", 10); got != "court" {
		t.Fatalf("expected short string untouched, got %q", got)
	}
}
