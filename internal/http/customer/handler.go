package customer

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvannote/billdash/internal/cache"
	"github.com/rvannote/billdash/internal/customer"
)

type Handler struct {
	svc    *customer.Service
	routes *cache.Routes
}

func NewHandler(svc *customer.Service, routes *cache.Routes) *Handler {
	return &Handler{svc: svc, routes: routes}
}

func (h *Handler) DashboardRoutes(r chi.Router) {
	r.Post("/", h.create)
}

// ListAll serves every customer row ordered by name. A q parameter narrows
// the result by name or email; filtered reads skip the route cache.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		customers, err := h.svc.Search(r.Context(), q)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch data")
			return
		}

		writeJSON(w, toResponses(customers))

		return
	}

	if body, ok := h.routes.Get(customer.ListingRoute); ok {
		writeJSONBody(w, body)
		return
	}

	customers, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}

	body, err := json.Marshal(toResponses(customers))
	if err != nil {
		slog.Error("failed to encode customer listing", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")

		return
	}

	h.routes.Set(customer.ListingRoute, body)
	writeJSONBody(w, body)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeOutcome(w, h.svc.Create(r.Context(), r.PostForm))
}
