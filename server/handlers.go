package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/resiliencere/leadsync/backend"
	"github.com/resiliencere/leadsync/chaos"
	"github.com/resiliencere/leadsync/validation"
	"github.com/shopspring/decimal"
)

// Handlers exposes a Demo over HTTP
type Handlers struct {
	demo   *chaos.Demo
	logger *slog.Logger
}

func NewHandlers(demo *chaos.Demo, logger *slog.Logger) *Handlers {
	return &Handlers{demo: demo, logger: logger}
}

// HandleState returns everything the listing page renders.
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.demo.Snapshot(r.Context()))
}

// HandleSetStatus is the chaos panel toggle.
func (h *Handlers) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse status request")
		return
	}
	status, err := chaos.ParseStatus(req.Status)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}

	h.demo.SetStatus(status)
	h.writeJSON(w, http.StatusOK, h.demo.Snapshot(r.Context()))
}

// HandleProperty fetches the listing; a failure tells the page to show its fallback.
func (h *Handlers) HandleProperty(w http.ResponseWriter, r *http.Request) {
	p, err := h.demo.LoadProperty(r.Context())
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "fetch_failed", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// HandleSubmitLead accepts the contact form.
func (h *Handlers) HandleSubmitLead(w http.ResponseWriter, r *http.Request) {
	var in chaos.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse lead")
		return
	}
	if err := validation.ValidateLead(&in); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	lead, queued, err := h.demo.SubmitLead(r.Context(), in)
	if err != nil {
		if errors.Is(err, chaos.ErrClosed) {
			h.writeError(w, http.StatusServiceUnavailable, "shutting_down", err.Error())
			return
		}
		h.logger.Error("Failed to submit lead", "error", err)
		h.writeError(w, http.StatusInternalServerError, "submit_failed", "Failed to submit lead")
		return
	}
	h.writeJSON(w, http.StatusAccepted, LeadResponse{Lead: lead, Queued: queued})
}

func (h *Handlers) HandleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.demo.LocalLeads(r.Context())
	if err != nil {
		h.logger.Error("Failed to list local leads", "error", err)
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to list local leads")
		return
	}
	if leads == nil {
		leads = []chaos.Lead{}
	}
	h.writeJSON(w, http.StatusOK, LeadsResponse{Leads: leads, Count: len(leads)})
}

func (h *Handlers) HandleClearLeads(w http.ResponseWriter, r *http.Request) {
	if err := h.demo.ClearLocalLeads(r.Context()); err != nil {
		h.logger.Error("Failed to clear local leads", "error", err)
		h.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to clear local leads")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleDismissToast(w http.ResponseWriter, r *http.Request) {
	h.demo.DismissToast()
	w.WriteHeader(http.StatusNoContent)
}

// HandlePayment computes a mortgage installment. The principal defaults to the
// price of the last loaded listing.
func (h *Handlers) HandlePayment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var principal decimal.Decimal
	if raw := q.Get("principal"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid_request", "principal must be a number")
			return
		}
		principal = p
	} else if p, _ := h.demo.Property(); p != nil {
		principal = p.PriceRaw
	} else {
		h.writeError(w, http.StatusServiceUnavailable, "fetch_failed", "listing not loaded; pass principal explicitly")
		return
	}

	rate, err := decimal.NewFromString(q.Get("rate"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "rate must be a number")
		return
	}
	years, err := strconv.Atoi(q.Get("years"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "years must be an integer")
		return
	}

	payment, err := backend.MonthlyPayment(principal, rate, years)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_loan", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, PaymentResponse{
		Principal:      principal.String(),
		AnnualRatePct:  rate.String(),
		Years:          years,
		MonthlyPayment: payment.String(),
	})
}

// HandleHealth provides a simple health check endpoint
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Service: "leadsync"})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a standardized error response
func (h *Handlers) writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: errorCode, Message: message})

	h.logger.Debug("HTTP error response",
		"status_code", statusCode,
		"error_code", errorCode,
		"message", message)
}
