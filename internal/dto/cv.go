package dto

type AnalyzeCVRequest struct {
	FileBase64 string `json:"fileBase64" validate:"required"`
}

type CVData struct {
	Nom       string   `json:"nom"`
	Prenom    string   `json:"prenom"`
	Email     string   `json:"email"`
	Telephone string   `json:"telephone"`
	Adresse   string   `json:"adresse"`
	Skills    []string `json:"skills"`
	SkillsRaw string   `json:"skills_raw"`
}

type AnalyzeCVResponse struct {
	Success bool    `json:"success"`
	Data    *CVData `json:"data,omitempty"`
	Meta    *CVMeta `json:"meta,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type CVMeta struct {
	TextLength  int    `json:"text_length"`
	Model       string `json:"model,omitempty"`
	SkillsFound int    `json:"skills_found"`
}
