package service

import "testing"

func TestUnmarshalModelJSONPlainObject(t *testing.T) {
	var out struct {
		Siren string `json:"siren"`
	}
	if err := unmarshalModelJSON(`{"siren":"123456789"}`, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Siren != "123456789" {
		t.Fatalf("expected siren parsed, got %q", out.Siren)
	}
}

func TestUnmarshalModelJSONStripsCodeFences(t *testing.T) {
	var out struct {
		Email string `json:"email"`
	}
	content := "```json\n{\"email\":\"jean@exemple.fr\"}\n```"
	if err := unmarshalModelJSON(content, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Email != "jean@exemple.fr" {
		t.Fatalf("expected email parsed, got %q", out.Email)
	}
}

func TestUnmarshalModelJSONExtractsEmbeddedObject(t *testing.T) {
	var out struct {
		Nom string `json:"nom"`
	}
	content := `Voici les informations extraites : {"nom":"DUPONT"} N'hésitez pas.`
	if err := unmarshalModelJSON(content, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Nom != "DUPONT" {
		t.Fatalf("expected nom parsed, got %q", out.Nom)
	}
}

func TestUnmarshalModelJSONNoObject(t *testing.T) {
	var out map[string]any
	if err := unmarshalModelJSON("désolé, je ne peux pas répondre", &out); err == nil {
		t.Fatal("expected error when no JSON object present")
	}
}
