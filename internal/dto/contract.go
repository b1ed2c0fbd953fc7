package dto

type ContractDocument struct {
	Type       string `json:"type"`
	FileBase64 string `json:"fileBase64"`
}

type ExtractContractFieldsRequest struct {
	Nom       string             `json:"nom"`
	Prenom    string             `json:"prenom"`
	Documents []ContractDocument `json:"documents" validate:"required,min=1"`
}

// Prestataire aggregates the contract-ready fields collected across every
// uploaded document. French snake_case names match the contract template.
type Prestataire struct {
	Nom                  string `json:"nom"`
	Prenom               string `json:"prenom"`
	Denomination         string `json:"denomination"`
	Siren                string `json:"siren"`
	Siret                string `json:"siret"`
	RCS                  string `json:"rcs"`
	Adresse              string `json:"adresse"`
	CodePostal           string `json:"code_postal"`
	Ville                string `json:"ville"`
	Representant         string `json:"representant"`
	FonctionRepresentant string `json:"fonction_representant"`
	IBAN                 string `json:"iban,omitempty"`
	BIC                  string `json:"bic,omitempty"`
}

type ExtractContractFieldsResponse struct {
	Success     bool          `json:"success"`
	Prestataire *Prestataire  `json:"prestataire,omitempty"`
	Meta        *ContractMeta `json:"meta,omitempty"`
	Error       string        `json:"error,omitempty"`
}

type ContractMeta struct {
	DocumentsProcessed int    `json:"documents_processed"`
	Model              string `json:"model,omitempty"`
	Warning            string `json:"warning,omitempty"`
}

type ExtractTextRequest struct {
	FileBase64 string `json:"fileBase64" validate:"required"`
}

type ExtractTextResponse struct {
	Success    bool   `json:"success"`
	Text       string `json:"text,omitempty"`
	OCRMethod  string `json:"ocrMethod,omitempty"`
	TextLength int    `json:"textLength"`
	Error      string `json:"error,omitempty"`
}
