package extract

import "testing"

func TestCompareRobustExactAfterNormalization(t *testing.T) {
	if !CompareRobust("Dupont", "DUPONT") {
		t.Fatal("expected case-insensitive match")
	}
	if !CompareRobust("Lefèvre", "LEFEVRE") {
		t.Fatal("expected diacritic-insensitive match")
	}
}

func TestCompareRobustContainment(t *testing.T) {
	if !CompareRobust("DE LA FONTAINE", "FONTAINE") {
		t.Fatal("expected containment match on compound surname")
	}
}

func TestCompareRobustToleratesSingleOCRError(t *testing.T) {
	if !CompareRobust("BERTRAND", "BERTRANO") {
		t.Fatal("expected one-character OCR error accepted on a long name")
	}
	if CompareRobust("DUPONT", "MARTIN") {
		t.Fatal("expected different names rejected")
	}
}

func TestCompareRobustEmptyNeverMatches(t *testing.T) {
	if CompareRobust("", "DUPONT") || CompareRobust("DUPONT", "") {
		t.Fatal("expected empty operand rejected")
	}
}

func TestAllGivenNamesFoundMultipleGivenNames(t *testing.T) {
	if !AllGivenNamesFound("JEAN PIERRE MARIE", "Jean, Pierre") {
		t.Fatal("expected every expected token found")
	}
	if AllGivenNamesFound("JEAN", "Jean Pierre") {
		t.Fatal("expected missing second given name rejected")
	}
}

func TestAllGivenNamesFoundHyphenInsensitive(t *testing.T) {
	if !AllGivenNamesFound("JEAN-PIERRE", "Jean Pierre") {
		t.Fatal("expected hyphenated form accepted")
	}
}

func TestAllGivenNamesFoundEmptyOperands(t *testing.T) {
	if AllGivenNamesFound("", "Jean") || AllGivenNamesFound("Jean", "") {
		t.Fatal("expected empty operand rejected")
	}
}
