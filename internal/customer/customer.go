package customer

import (
	"errors"
	"time"
)

// ErrNotFound is returned by the store when no customer matches.
var ErrNotFound = errors.New("customer not found")

// Customer represents a customer row.
type Customer struct {
	ID        string
	Name      string
	Email     string
	ImageURL  string
	CreatedAt time.Time
}

// CreateParams are the validated fields of a new customer. The CSV importer
// produces these in bulk; the form pipeline builds one per submission.
type CreateParams struct {
	Name     string
	Email    string
	ImageURL string
}
