package extract

import (
	"testing"
	"time"
)

func TestDatesDisambiguatesIssueAndExpiryByLabels(t *testing.T) {
	w := Dates("Attestation établie le 12/03/2025. Valable jusqu'au 15/09/2026.")

	if !w.HasIssue() {
		t.Fatal("expected an issue date")
	}
	if got, want := w.Issue, time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected issue %v, got %v", want, got)
	}
	if !w.HasExpiry() {
		t.Fatal("expected an expiry date")
	}
	if got, want := w.Expiry, time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, got)
	}
}

func TestDatesParsesFrenchMonthNames(t *testing.T) {
	w := Dates("Fait le 5 janvier 2024 à Paris")

	if got, want := w.Issue, time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected issue %v, got %v", want, got)
	}
}

func TestDatesPromotesTwoDigitYears(t *testing.T) {
	w := Dates("échéance au 01/02/24")

	if got, want := w.Expiry, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDatesRejectsImpossibleMonth(t *testing.T) {
	w := Dates("référence 05/13/2025")
	if len(w.All) != 0 {
		t.Fatalf("expected no dates, got %v", w.All)
	}
}

func TestDatesWithoutLabelsFallBackToEarliestLatest(t *testing.T) {
	w := Dates("périodes 10/06/2023 puis 20/01/2026")

	if w.HasIssue() || w.HasExpiry() {
		t.Fatalf("expected no labeled dates, got issue=%v expiry=%v", w.Issue, w.Expiry)
	}
	if got, want := w.Earliest(), time.Date(2023, 6, 10, 12, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected earliest %v, got %v", want, got)
	}
	if got, want := w.Latest(), time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected latest %v, got %v", want, got)
	}
}

func TestDatesEmptyWindow(t *testing.T) {
	w := Dates("aucune date ici")
	if !w.Earliest().IsZero() || !w.Latest().IsZero() {
		t.Fatal("expected zero fallback dates on empty window")
	}
}

func TestLooseDateToleratesOCRSeparators(t *testing.T) {
	got, ok := LooseDate("31 . 12 2030")
	if !ok {
		t.Fatal("expected a parsed date")
	}
	want := time.Date(2030, 12, 31, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLooseDateRejectsGarbage(t *testing.T) {
	if _, ok := LooseDate("non détecté"); ok {
		t.Fatal("expected parse failure")
	}
	if _, ok := LooseDate("45 99 2030"); ok {
		t.Fatal("expected impossible date rejected")
	}
}

func TestFormatDMY(t *testing.T) {
	got := FormatDMY(time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC))
	if got != "07-03-2025" {
		t.Fatalf("expected 07-03-2025, got %q", got)
	}
	if FormatDMY(time.Time{}) != "" {
		t.Fatal("expected empty string for zero time")
	}
}
