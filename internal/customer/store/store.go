package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rvannote/billdash/internal/customer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL, &c.CreatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

const selectCustomerColumns = `id, name, email, image_url, created_at`

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, image_url, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	c.ID = uuid.NewString()

	err := s.db.QueryRowContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.ImageURL,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers
		ORDER BY name ASC`

	return s.queryCustomers(ctx, query)
}

func (s *Store) SearchCustomers(ctx context.Context, q string) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + `
		FROM customers
		WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY name ASC`

	return s.queryCustomers(ctx, query, q)
}

func (s *Store) queryCustomers(ctx context.Context, query string, args ...any) ([]*customer.Customer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}
