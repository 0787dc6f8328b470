package dto

type DekontAnalysisResponse struct {
	ID              string   `json:"id"`
	ApplicationID   string   `json:"application_id,omitempty"`
	Source          string   `json:"source"`
	SenderName      string   `json:"sender_name,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
	BankName        string   `json:"bank_name,omitempty"`
	TransactionDate string   `json:"transaction_date,omitempty"`
	TransactionTime string   `json:"transaction_time,omitempty"`
	AIUsed          bool     `json:"ai_used"`
	ConfidenceScore float64  `json:"confidence_score"`
	ExtractionDate  string   `json:"extraction_date"`
}
