package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rvannote/billdash/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	i.id, i.customer_id, c.name, i.amount, i.status, i.date, i.created_at, i.updated_at
`

// scanInvoice reads an invoice row joined with its customer name.
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var statusStr string

	if err := s.Scan(
		&inv.ID, &inv.CustomerID, &inv.CustomerName,
		&inv.Amount, &statusStr, &inv.Date,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(statusStr)

	return &inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (id, customer_id, amount, status, date, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	inv.ID = uuid.NewString()

	err := s.db.QueryRowContext(ctx, query,
		inv.ID,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.Date,
	).Scan(&inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

// UpdateInvoice replaces every mutable field of the matched row. The date
// column is immutable and deliberately not part of the SET list.
func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := s.db.ExecContext(ctx, query,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id
		WHERE i.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]*invoice.Listing, error) {
	query := `
		SELECT i.id, c.name, i.amount, i.date, i.status
		FROM invoices i
		JOIN customers c ON i.customer_id = c.id
		ORDER BY i.date DESC, i.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var listings []*invoice.Listing

	for rows.Next() {
		var l invoice.Listing

		var statusStr string

		if err := rows.Scan(&l.ID, &l.CustomerName, &l.Amount, &l.IssuedAt, &statusStr); err != nil {
			return nil, fmt.Errorf("scanning invoice listing: %w", err)
		}

		l.Status = invoice.Status(statusStr)
		// Net-30 terms: payment is due 30 days after issue.
		l.DueBy = l.IssuedAt.AddDate(0, 0, 30)

		listings = append(listings, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return listings, nil
}
