package customer_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rvannote/billdash/internal/cache"
	"github.com/rvannote/billdash/internal/customer"
)

func validCustomerForm() url.Values {
	return url.Values{
		"customerName": {"Ada Lovelace"},
		"email":        {"ada@example.com"},
		"image_url":    {"/avatars/ada.png"},
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name        string
		values      url.Values
		setupMock   func(m *customer.MockRepository)
		wantSuccess bool
		wantMessage string
		wantFields  []string
	}

	tests := []testCase{
		{
			name:   "Success",
			values: validCustomerForm(),
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						c.ID = "cust-1"
						return nil
					})
			},
			wantSuccess: true,
		},
		{
			name:        "ValidationFailure",
			values:      url.Values{"customerName": {"  "}},
			wantMessage: "Missing Fields. Failed to Create Customer.",
			wantFields:  []string{"customerName", "email", "image_url"},
		},
		{
			name:   "DatabaseFailure",
			values: validCustomerForm(),
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					Return(errors.New("unique violation"))
			},
			wantMessage: "Database Error: Failed to Create Customer.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := customer.NewService(repo, cache.NewRoutes())
			outcome := svc.Create(context.Background(), tt.values)

			if tt.wantSuccess {
				assert.True(t, outcome.Success)
				assert.Equal(t, "/dashboard/customers", outcome.RedirectTo)

				return
			}

			assert.False(t, outcome.Success)
			assert.Equal(t, tt.wantMessage, outcome.Message)

			for _, field := range tt.wantFields {
				assert.Contains(t, outcome.Errors, field)
			}
		})
	}
}

func TestService_CreateBatch(t *testing.T) {
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

	routes := cache.NewRoutes()
	routes.Set(customer.ListingRoute, []byte("stale"))

	svc := customer.NewService(repo, routes)
	created, err := svc.CreateBatch(context.Background(), []customer.CreateParams{
		{Name: "Ada", Email: "ada@example.com"},
		{Name: "Grace", Email: "grace@example.com"},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	_, ok := routes.Get(customer.ListingRoute)
	assert.False(t, ok, "batch create should invalidate the customer listing")
}

func TestService_CreateBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := customer.NewService(customer.NewMockRepository(ctrl), cache.NewRoutes())
	created, err := svc.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestService_CreateBatch_AbortsOnFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(errors.New("db down")),
	)

	svc := customer.NewService(repo, cache.NewRoutes())
	created, err := svc.CreateBatch(context.Background(), []customer.CreateParams{
		{Name: "Ada"}, {Name: "Grace"}, {Name: "Margaret"},
	})
	require.Error(t, err)
	assert.Len(t, created, 1, "rows written before the failure stay written")
}

func TestService_CreateBatch_PartialFailureInvalidatesListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(errors.New("db down")),
	)

	routes := cache.NewRoutes()
	routes.Set(customer.ListingRoute, []byte("stale"))

	svc := customer.NewService(repo, routes)
	created, err := svc.CreateBatch(context.Background(), []customer.CreateParams{
		{Name: "Ada"}, {Name: "Grace"},
	})
	require.Error(t, err)
	require.Len(t, created, 1)

	_, ok := routes.Get(customer.ListingRoute)
	assert.False(t, ok, "rows were written, so the cached listing is stale")
}

func TestService_CreateBatch_FirstRowFailureLeavesCacheIntact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateCustomer(gomock.Any(), gomock.Any()).
		Return(errors.New("db down"))

	routes := cache.NewRoutes()
	routes.Set(customer.ListingRoute, []byte("listing"))

	svc := customer.NewService(repo, routes)
	created, err := svc.CreateBatch(context.Background(), []customer.CreateParams{
		{Name: "Ada"},
	})
	require.Error(t, err)
	assert.Empty(t, created)

	cached, ok := routes.Get(customer.ListingRoute)
	assert.True(t, ok, "nothing was written, so the cached listing is still valid")
	assert.Equal(t, []byte("listing"), cached)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().
		ListCustomers(gomock.Any()).
		Return([]*customer.Customer{{Name: "Ada"}, {Name: "Grace"}}, nil)

	svc := customer.NewService(repo, cache.NewRoutes())
	customers, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestService_List_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().
		ListCustomers(gomock.Any()).
		Return(nil, errors.New("timeout"))

	svc := customer.NewService(repo, cache.NewRoutes())
	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to fetch all customers")
}
