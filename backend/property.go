// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"github.com/resiliencere/leadsync/chaos"
	"github.com/shopspring/decimal"
)

// DefaultProperty is the listing served by the mock backend.
func DefaultProperty() chaos.Property {
	return chaos.Property{
		ID:          "prop-sg-0815",
		Title:       "Riverside Penthouse, Thao Dien",
		Price:       "15.8 tỷ VND",
		PriceRaw:    decimal.RequireFromString("15800000000"),
		Location:    "Thao Dien Ward, Thu Duc City, Ho Chi Minh City",
		Description: "Four-bedroom duplex penthouse with a private pool and an unobstructed view of the Saigon River.",
		Features: []string{
			"4 bedrooms",
			"Private rooftop pool",
			"2 parking slots",
			"24/7 concierge",
			"Pink book ready",
		},
		ImageURL:   "https://images.example.com/listings/prop-sg-0815/cover.jpg",
		VideoURL:   "https://videos.example.com/listings/prop-sg-0815/tour.mp4",
		AgentName:  "Nguyen Thu Ha",
		AgentPhone: "+84 909 123 456",
	}
}
