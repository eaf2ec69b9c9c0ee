package invoice

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the payment state of an invoice. Only pending and paid are
// accepted from forms; overdue appears on existing rows for display.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// ErrNotFound is returned by the store when no invoice matches the given id.
var ErrNotFound = errors.New("invoice not found")

// Invoice represents an invoice row. Date is the issue day, set once at
// creation and never updated.
type Invoice struct {
	ID           string
	CustomerID   string
	CustomerName string // Loaded via JOIN
	Amount       decimal.Decimal
	Status       Status
	Date         time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Listing is the invoice record served by the list endpoint, joined with the
// customer's name.
type Listing struct {
	ID           string
	CustomerName string
	Amount       decimal.Decimal
	IssuedAt     time.Time
	DueBy        time.Time
	Status       Status
}
