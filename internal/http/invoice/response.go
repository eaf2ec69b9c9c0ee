package invoice

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rvannote/billdash/internal/action"
	"github.com/rvannote/billdash/internal/form"
	"github.com/rvannote/billdash/internal/invoice"
)

type listingResponse struct {
	ID           string         `json:"id"`
	CustomerName string         `json:"customerName"`
	Amount       float64        `json:"amount"`
	IssuedAt     string         `json:"issuedAt"`
	DueBy        string         `json:"dueBy"`
	Status       invoice.Status `json:"status"`
}

func toListingResponses(rows []*invoice.Listing) []listingResponse {
	resp := make([]listingResponse, len(rows))
	for i, row := range rows {
		resp[i] = listingResponse{
			ID:           row.ID,
			CustomerName: row.CustomerName,
			Amount:       row.Amount.InexactFloat64(),
			IssuedAt:     row.IssuedAt.Format(time.DateOnly),
			DueBy:        row.DueBy.Format(time.DateOnly),
			Status:       row.Status,
		}
	}

	return resp
}

type invoiceResponse struct {
	ID           string         `json:"id"`
	CustomerID   string         `json:"customerId"`
	CustomerName string         `json:"customerName"`
	Amount       float64        `json:"amount"`
	Status       invoice.Status `json:"status"`
	Date         string         `json:"date"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:           inv.ID,
		CustomerID:   inv.CustomerID,
		CustomerName: inv.CustomerName,
		Amount:       inv.Amount.InexactFloat64(),
		Status:       inv.Status,
		Date:         inv.Date.Format(time.DateOnly),
	}
}

type failureResponse struct {
	Message string      `json:"message"`
	Errors  form.Errors `json:"errors,omitempty"`
}

// writeOutcome translates a pipeline outcome: success becomes a redirect to
// the listing route, failure a 422 with the summary and field errors.
func writeOutcome(w http.ResponseWriter, o action.Outcome) {
	if o.Success {
		w.Header().Set("Location", o.RedirectTo)
		w.WriteHeader(http.StatusSeeOther)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)

	if err := json.NewEncoder(w).Encode(failureResponse{Message: o.Message, Errors: o.Errors}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeJSONBody(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
