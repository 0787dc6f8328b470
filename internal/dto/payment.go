package dto

type CreatePaymentRequest struct {
	ApplicationID string  `json:"application_id"`
	Amount        float64 `json:"amount"`
	PaymentType   string  `json:"payment_type"`
	PaymentDate   string  `json:"payment_date,omitempty"`
	Description   string  `json:"description,omitempty"`
}

type PaymentResponse struct {
	ID            string  `json:"id"`
	ApplicationID string  `json:"application_id"`
	Amount        float64 `json:"amount"`
	PaymentType   string  `json:"payment_type"`
	PaymentDate   string  `json:"payment_date,omitempty"`
	Description   string  `json:"description,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}
