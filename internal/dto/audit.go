package dto

type CheckRecordResponse struct {
	ID         string  `json:"id"`
	DocType    string  `json:"doc_type"`
	Status     string  `json:"status"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	OCRMethod  string  `json:"ocr_method"`
	TextLength int     `json:"text_length"`
	CreatedAt  string  `json:"created_at"`
}

type ListChecksResponse struct {
	Checks []CheckRecordResponse `json:"checks"`
	Count  int                   `json:"count"`
}
