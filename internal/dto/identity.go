package dto

type VerifyIdentityRequest struct {
	FileBase64 string `json:"fileBase64" validate:"required"`
	Type       string `json:"type"`
	Nom        string `json:"nom" validate:"required"`
	Prenom     string `json:"prenom" validate:"required"`
}

// VerifyIdentityResponse keeps the French field names the onboarding UI
// renders directly.
type VerifyIdentityResponse struct {
	Valide     bool                `json:"valide"`
	Reason     string              `json:"reason,omitempty"`
	Confiance  float64             `json:"confiance"`
	Details    string              `json:"details,omitempty"`
	Comparison *IdentityComparison `json:"comparaison,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type IdentityComparison struct {
	NomPiece            string `json:"nom_piece"`
	NomAttendu          string `json:"nom_attendu"`
	NomCorrespond       bool   `json:"nom_correspond"`
	PrenomPiece         string `json:"prenom_piece"`
	PrenomAttendu       string `json:"prenom_attendu"`
	PrenomCorrespond    bool   `json:"prenom_correspond"`
	DateExpirationPiece string `json:"date_expiration_piece"`
	DocumentExpire      *bool  `json:"document_expire"`
	TexteOCRExtrait     string `json:"texte_ocr_extrait,omitempty"`
}
