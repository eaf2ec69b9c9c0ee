package importcsv_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rvannote/billdash/internal/cache"
	"github.com/rvannote/billdash/internal/customer"
	importHandler "github.com/rvannote/billdash/internal/http/importcsv"
	"github.com/rvannote/billdash/internal/importer"
)

func newRouter(repo customer.Repository) http.Handler {
	h := importHandler.NewHandler(
		importer.NewService(),
		customer.NewService(repo, cache.NewRoutes()),
	)

	r := chi.NewRouter()
	r.Post("/api/customers/import", h.ImportCSV)

	return r
}

func postCSV(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/customers/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_ImportCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *customer.Customer) error {
			c.ID = "generated"
			return nil
		}).
		Times(2)

	rec := postCSV(newRouter(repo), strings.Join([]string{
		"name,email,avatar",
		"Ada Lovelace,ada@example.com,/avatars/ada.png",
		"Grace Hopper,grace@example.com,",
	}, "\n"))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Imported int `json:"imported"`
		Rejected []struct {
			Line   int                 `json:"line"`
			Fields map[string][]string `json:"fields"`
		} `json:"rejected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Imported)
	assert.Empty(t, body.Rejected)
}

func TestHandler_ImportCSV_ReportsRejectedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(nil)

	rec := postCSV(newRouter(repo), strings.Join([]string{
		"name,email",
		"Ada Lovelace,ada@example.com",
		",missing-name@example.com",
	}, "\n"))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Imported int `json:"imported"`
		Rejected []struct {
			Line   int                 `json:"line"`
			Fields map[string][]string `json:"fields"`
		} `json:"rejected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Imported)

	require.Len(t, body.Rejected, 1)
	assert.Equal(t, 3, body.Rejected[0].Line)
	assert.Equal(t, []string{"Name is required."}, body.Rejected[0].Fields["customerName"])
}

func TestHandler_ImportCSV_MissingEmailColumn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := postCSV(newRouter(customer.NewMockRepository(ctrl)), strings.Join([]string{
		"name",
		"Ada Lovelace",
	}, "\n"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "email")
}

func TestHandler_ImportCSV_DatabaseFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateCustomer(gomock.Any(), gomock.Any()).
		Return(errors.New("db down"))

	rec := postCSV(newRouter(repo), strings.Join([]string{
		"name,email",
		"Ada Lovelace,ada@example.com",
	}, "\n"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to import customers"}`, rec.Body.String())
}
