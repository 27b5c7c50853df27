package server

import "github.com/resiliencere/leadsync/chaos"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// StatusRequest switches the simulated network
type StatusRequest struct {
	Status string `json:"status"`
}

// LeadResponse reports where a submitted lead went
type LeadResponse struct {
	Lead   chaos.Lead `json:"lead"`
	Queued bool       `json:"queued"`
}

// LeadsResponse lists the local queue
type LeadsResponse struct {
	Leads []chaos.Lead `json:"leads"`
	Count int          `json:"count"`
}

// PaymentResponse is the loan calculator result
type PaymentResponse struct {
	Principal      string `json:"principal"`
	AnnualRatePct  string `json:"annual_rate_pct"`
	Years          int    `json:"years"`
	MonthlyPayment string `json:"monthly_payment"`
}
