package customer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/rvannote/billdash/internal/action"
	"github.com/rvannote/billdash/internal/cache"
	"github.com/rvannote/billdash/internal/form"
)

// ListingRoute is the page whose cached output customer mutations invalidate
// and redirect to.
const ListingRoute = "/dashboard/customers"

var createSchema = form.Schema{
	form.String("customerName", "Please enter a name."),
	form.String("email", "Please enter an email address."),
	form.String("image_url", "Please provide an avatar image URL."),
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	ListCustomers(ctx context.Context) ([]*Customer, error)
	SearchCustomers(ctx context.Context, q string) ([]*Customer, error)
}

// Service runs the customer mutation pipeline and reads.
type Service struct {
	repo   Repository
	routes *cache.Routes
}

func NewService(repo Repository, routes *cache.Routes) *Service {
	return &Service{repo: repo, routes: routes}
}

// Create validates values and inserts a new customer.
func (s *Service) Create(ctx context.Context, values url.Values) action.Outcome {
	vals, errs := createSchema.Parse(values)
	if errs != nil {
		return action.Failed("Missing Fields. Failed to Create Customer.", errs)
	}

	c := &Customer{
		Name:     vals.String("customerName"),
		Email:    vals.String("email"),
		ImageURL: vals.String("image_url"),
	}

	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		slog.Error("creating customer", "error", err)
		return action.Failed("Database Error: Failed to Create Customer.", nil)
	}

	s.routes.Invalidate(ListingRoute)

	return action.Redirect(ListingRoute)
}

// CreateBatch inserts the given customers one statement at a time and returns
// the created rows. The first store failure aborts the rest; rows already
// written stay written, matching the single-statement autocommit model.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Customer, error) {
	if len(params) == 0 {
		return nil, nil
	}

	created := make([]*Customer, 0, len(params))

	for _, p := range params {
		c := &Customer{Name: p.Name, Email: p.Email, ImageURL: p.ImageURL}

		if err := s.repo.CreateCustomer(ctx, c); err != nil {
			slog.Error("creating customer", "name", p.Name, "error", err)

			// Rows written before the failure changed the store, so the
			// cached listing is stale even on the error path.
			if len(created) > 0 {
				s.routes.Invalidate(ListingRoute)
			}

			return created, fmt.Errorf("creating customer %q: %w", p.Name, err)
		}

		created = append(created, c)
	}

	s.routes.Invalidate(ListingRoute)

	return created, nil
}

// List returns all customers, ordered by name ascending.
func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		slog.Error("listing customers", "error", err)
		return nil, fmt.Errorf("failed to fetch all customers: %w", err)
	}

	return customers, nil
}

// Search returns customers whose name or email contains q, ordered by name.
func (s *Service) Search(ctx context.Context, q string) ([]*Customer, error) {
	customers, err := s.repo.SearchCustomers(ctx, q)
	if err != nil {
		slog.Error("searching customers", "query", q, "error", err)
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	return customers, nil
}
