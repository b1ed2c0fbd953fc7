package extract

import "testing"

const cniSample = `RÉPUBLIQUE FRANÇAISE
CARTE NATIONALE D'IDENTITÉ
NOM : DUPONT
PRÉNOMS : JEAN, PIERRE
NATIONALITÉ : FRANÇAISE
DATE D'EXPIR : 15 06 2028`

func TestIdentityFieldsFromOCRReadsLabeledCard(t *testing.T) {
	f := IdentityFieldsFromOCR(cniSample)

	if f.Nom != "DUPONT" {
		t.Fatalf("expected surname DUPONT, got %q", f.Nom)
	}
	if f.Prenom != "JEAN PIERRE" {
		t.Fatalf("expected given names JEAN PIERRE, got %q", f.Prenom)
	}
	if f.Expiration != "15 06 2028" {
		t.Fatalf("expected expiry line 15 06 2028, got %q", f.Expiration)
	}
}

func TestIdentityFieldsFromOCRValueOnNextLine(t *testing.T) {
	f := IdentityFieldsFromOCR("NOM\nMARTIN\nPRÉNOM\nCLAIRE")

	if f.Nom != "MARTIN" {
		t.Fatalf("expected MARTIN, got %q", f.Nom)
	}
	if f.Prenom != "CLAIRE" {
		t.Fatalf("expected CLAIRE, got %q", f.Prenom)
	}
}

func TestIdentityFieldsFromOCRRejectsEchoedLabels(t *testing.T) {
	f := IdentityFieldsFromOCR("NOM : PRENOM")

	if f.Nom != "" {
		t.Fatalf("expected echoed label rejected as surname, got %q", f.Nom)
	}
	if f.Prenom != "" {
		t.Fatalf("expected echoed label rejected as given name, got %q", f.Prenom)
	}
}

func TestPersonNameFromAdministrativeText(t *testing.T) {
	nom, prenom := PersonName("Attestation délivrée à\nNOM : MARTIN\nPRENOM : PAUL\nSIRET 12345678900012")

	if nom != "MARTIN" {
		t.Fatalf("expected MARTIN, got %q", nom)
	}
	if prenom != "PAUL" {
		t.Fatalf("expected PAUL, got %q", prenom)
	}
}

func TestSanitizeNameStopsAtNextField(t *testing.T) {
	if got := SanitizeName("DUPONT SEXE M", false); got != "DUPONT" {
		t.Fatalf("expected truncation at SEXE, got %q", got)
	}
}

func TestSanitizeNameRejectsHeaderBoilerplateInSurnameSlot(t *testing.T) {
	if got := SanitizeName("CARTE NATIONALE", true); got != "" {
		t.Fatalf("expected header boilerplate rejected, got %q", got)
	}
	if got := SanitizeName("CARTE NATIONALE", false); got == "" {
		t.Fatal("expected boilerplate kept outside the surname slot")
	}
}
