package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rvannote/billdash/internal/action"
	"github.com/rvannote/billdash/internal/cache"
)

// ListingRoute is the page whose cached output every invoice mutation
// invalidates and redirects to.
const ListingRoute = "/dashboard/invoices"

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Listing, error)
}

// Service runs the invoice mutation pipeline: validate the form, persist,
// invalidate the listing route, and report where to navigate. Failures from
// validation or the store are converted into a failure outcome; no error
// escapes to the caller unconverted.
type Service struct {
	repo   Repository
	routes *cache.Routes
}

func NewService(repo Repository, routes *cache.Routes) *Service {
	return &Service{repo: repo, routes: routes}
}

// Create validates values and inserts a new invoice dated today (UTC, day
// granularity). The amount is stored exactly as entered.
func (s *Service) Create(ctx context.Context, values url.Values) action.Outcome {
	vals, errs := createSchema.Parse(values)
	if errs != nil {
		return action.Failed("Missing Fields. Failed to Create Invoice.", errs)
	}

	now := time.Now().UTC()
	inv := &Invoice{
		CustomerID: vals.String("customerId"),
		Amount:     vals.Decimal("amount"),
		Status:     Status(vals.String("status")),
		Date:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		slog.Error("creating invoice", "error", err)
		return action.Failed("Database Error: Failed to Create Invoice.", nil)
	}

	s.routes.Invalidate(ListingRoute)

	return action.Redirect(ListingRoute)
}

// Update validates values and replaces the fields of the invoice matched by
// id. The amount is converted to minor units (cents) before persisting; the
// create path stores major units as entered. Existing rows were written both
// ways, so neither path is normalized here.
func (s *Service) Update(ctx context.Context, id string, values url.Values) action.Outcome {
	vals, errs := updateSchema.Parse(values)
	if errs != nil {
		return action.Failed("Missing Fields. Failed to Update Invoice.", errs)
	}

	inv := &Invoice{
		ID:         id,
		CustomerID: vals.String("customerId"),
		Amount:     vals.Decimal("amount").Mul(decimal.NewFromInt(100)),
		Status:     Status(vals.String("status")),
	}

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		slog.Error("updating invoice", "id", id, "error", err)
		return action.Failed("Database Error: Failed to Update Invoice.", nil)
	}

	s.routes.Invalidate(ListingRoute)

	return action.Redirect(ListingRoute)
}

// Get fetches an invoice by id, bypassing any cached output. A lookup matching
// zero rows returns (nil, nil); callers check for absence explicitly.
func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		slog.Error("fetching invoice", "id", id, "error", err)

		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}

	return inv, nil
}

// List returns the invoice listing records joined with customer names.
func (s *Service) List(ctx context.Context) ([]*Listing, error) {
	rows, err := s.repo.ListInvoices(ctx)
	if err != nil {
		slog.Error("listing invoices", "error", err)
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	return rows, nil
}
