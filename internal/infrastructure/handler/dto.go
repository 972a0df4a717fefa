package handler

// BankResponse is one supported bank export format
type BankResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PreviewRecordResponse is one converted transaction in a preview
type PreviewRecordResponse struct {
	Date       string  `json:"date"`
	Payee      string  `json:"payee"`
	Amount     float64 `json:"amount"`
	AmountUSD  float64 `json:"amount_usd"`
	Rate       float64 `json:"rate"`
	RateSource string  `json:"rate_source"`
}

// PreviewResponse represents the response for the preview endpoint
type PreviewResponse struct {
	RunID            string                  `json:"run_id"`
	Bank             BankResponse            `json:"bank"`
	TransactionCount int                     `json:"transaction_count"`
	Records          []PreviewRecordResponse `json:"records"`
	TotalAmount      float64                 `json:"total_amount"`
	TotalAmountUSD   float64                 `json:"total_amount_usd"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
