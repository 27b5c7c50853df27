// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package chaos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lead is a contact form submission from a prospective buyer.
type Lead struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	SubmittedAt int64  `json:"submitted_at"` // Unix millis
	Synced      bool   `json:"synced"`
}

// LeadInput is what the contact form collects.
type LeadInput struct {
	Name    string `json:"name" validate:"required,max=120"`
	Phone   string `json:"phone" validate:"required,min=6,max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Message string `json:"message" validate:"max=2000"`
}

// NewLead stamps an input with a fresh ID and submission time.
func NewLead(in LeadInput, now time.Time) Lead {
	return Lead{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Phone:       in.Phone,
		Email:       in.Email,
		Message:     in.Message,
		SubmittedAt: now.UnixMilli(),
	}
}

// Property is the static listing shown on the page.
type Property struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       string          `json:"price"`
	PriceRaw    decimal.Decimal `json:"price_raw"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	ImageURL    string          `json:"image_url"`
	VideoURL    string          `json:"video_url"`
	AgentName   string          `json:"agent_name"`
	AgentPhone  string          `json:"agent_phone"`
	// Cached is true when the listing came from the edge cache instead of the origin.
	Cached bool `json:"cached"`
}
