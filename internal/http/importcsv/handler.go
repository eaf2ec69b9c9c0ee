package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rvannote/billdash/internal/customer"
	"github.com/rvannote/billdash/internal/form"
	"github.com/rvannote/billdash/internal/importer"
)

type Handler struct {
	importSvc   *importer.Service
	customerSvc *customer.Service
}

func NewHandler(importSvc *importer.Service, customerSvc *customer.Service) *Handler {
	return &Handler{importSvc: importSvc, customerSvc: customerSvc}
}

type rowErrorDTO struct {
	Line   int         `json:"line"`
	Fields form.Errors `json:"fields"`
}

type importResponse struct {
	Imported int           `json:"imported"`
	Rejected []rowErrorDTO `json:"rejected,omitempty"`
}

// ImportCSV reads a customer CSV from the request body, inserts the valid
// rows and reports the rejected ones. Any driver failure mid-batch surfaces
// as a generic server error; rows written before it stay written.
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	result, err := h.importSvc.Parse(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.customerSvc.CreateBatch(r.Context(), result.Params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to import customers")
		return
	}

	resp := importResponse{Imported: len(created)}
	for _, re := range result.Invalid {
		resp.Rejected = append(resp.Rejected, rowErrorDTO{Line: re.Line, Fields: re.Fields})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
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
