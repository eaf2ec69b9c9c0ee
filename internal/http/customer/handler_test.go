package customer_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rvannote/billdash/internal/cache"
	"github.com/rvannote/billdash/internal/customer"
	customerHandler "github.com/rvannote/billdash/internal/http/customer"
)

func newRouter(repo customer.Repository) http.Handler {
	routes := cache.NewRoutes()
	h := customerHandler.NewHandler(customer.NewService(repo, routes), routes)

	r := chi.NewRouter()
	r.Get("/api/customer", h.ListAll)
	r.Route("/dashboard/customers", h.DashboardRoutes)

	return r
}

func TestHandler_ListAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().
		ListCustomers(gomock.Any()).
		Return([]*customer.Customer{
			{ID: "c1", Name: "Ada Lovelace", Email: "ada@example.com"},
		}, nil)

	router := newRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/customer", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Ada Lovelace", body[0]["customerName"])
	assert.Equal(t, "ada@example.com", body[0]["email"])
}

func TestHandler_ListAll_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().
		SearchCustomers(gomock.Any(), "ada").
		Return([]*customer.Customer{{ID: "c1", Name: "Ada Lovelace"}}, nil)

	router := newRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/customer?q=ada", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(nil)

	router := newRouter(repo)

	values := url.Values{
		"customerName": {"Ada Lovelace"},
		"email":        {"ada@example.com"},
		"image_url":    {"/avatars/ada.png"},
	}

	req := httptest.NewRequest(http.MethodPost, "/dashboard/customers", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/customers", rec.Header().Get("Location"))
}

func TestHandler_Create_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newRouter(customer.NewMockRepository(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/dashboard/customers", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Missing Fields. Failed to Create Customer.", body.Message)
	assert.Len(t, body.Errors, 3)
}
