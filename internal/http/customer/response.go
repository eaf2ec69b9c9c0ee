package customer

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rvannote/billdash/internal/action"
	"github.com/rvannote/billdash/internal/customer"
	"github.com/rvannote/billdash/internal/form"
)

type customerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"customerName"`
	Email     string `json:"email"`
	ImageURL  string `json:"image_url"`
	CreatedAt string `json:"createdAt"`
}

func toResponses(customers []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = customerResponse{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			ImageURL:  c.ImageURL,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
	}

	return resp
}

type failureResponse struct {
	Message string      `json:"message"`
	Errors  form.Errors `json:"errors,omitempty"`
}

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

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeJSONBody(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
