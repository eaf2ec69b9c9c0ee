package invoice

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvannote/billdash/internal/cache"
	"github.com/rvannote/billdash/internal/invoice"
)

type Handler struct {
	svc    *invoice.Service
	routes *cache.Routes
}

func NewHandler(svc *invoice.Service, routes *cache.Routes) *Handler {
	return &Handler{svc: svc, routes: routes}
}

func (h *Handler) APIRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

func (h *Handler) DashboardRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/{id}", h.update)
}

// list serves the invoice listing, reusing the cached body until a mutation
// invalidates it.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if body, ok := h.routes.Get(invoice.ListingRoute); ok {
		writeJSONBody(w, body)
		return
	}

	rows, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}

	body, err := json.Marshal(toListingResponses(rows))
	if err != nil {
		slog.Error("failed to encode invoice listing", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")

		return
	}

	h.routes.Set(invoice.ListingRoute, body)
	writeJSONBody(w, body)
}

// get is always served fresh; by-id reads bypass the route cache.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}

	if inv == nil {
		writeError(w, http.StatusNotFound, "Invoice not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeOutcome(w, h.svc.Create(r.Context(), r.PostForm))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeOutcome(w, h.svc.Update(r.Context(), chi.URLParam(r, "id"), r.PostForm))
}
