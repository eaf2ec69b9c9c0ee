// Package importer parses customer CSV exports into create parameters.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/rvannote/billdash/internal/customer"
	enc "github.com/rvannote/billdash/internal/encoding"
	"github.com/rvannote/billdash/internal/form"
)

// rowSchema validates one CSV row. The avatar column is optional, unlike the
// form pipeline where it is required.
var rowSchema = form.Schema{
	form.String("customerName", "Name is required."),
	form.String("email", "Email is required."),
}

// headerAliases maps accepted column spellings to canonical names.
var headerAliases = map[string]string{
	"name":          "customerName",
	"customername":  "customerName",
	"customer_name": "customerName",
	"email":         "email",
	"e-mail":        "email",
	"image_url":     "image_url",
	"imageurl":      "image_url",
	"avatar":        "image_url",
}

// RowError reports the validation failures of a single CSV line.
type RowError struct {
	Line   int
	Fields form.Errors
}

// Result splits a parsed file into importable params and rejected rows.
type Result struct {
	Params  []customer.CreateParams
	Invalid []RowError
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Parse decodes r to UTF-8, reads a header-mapped CSV and validates every
// row. Rows that fail validation are collected in Result.Invalid; they do not
// abort the rest of the file.
func (s *Service) Parse(r io.Reader) (*Result, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return &Result{}, nil
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after the header

		values := rowValues(cols, row)

		vals, errs := rowSchema.Parse(values)
		if errs != nil {
			result.Invalid = append(result.Invalid, RowError{Line: line, Fields: errs})
			continue
		}

		result.Params = append(result.Params, customer.CreateParams{
			Name:     vals.String("customerName"),
			Email:    vals.String("email"),
			ImageURL: values.Get("image_url"),
		})
	}

	return result, nil
}

// mapHeader resolves the header row to canonical column indexes. Name and
// email columns are mandatory.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int)

	for i, cell := range header {
		name, ok := headerAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}

		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}

	for _, required := range []string{"customerName", "email"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q in header", required)
		}
	}

	return cols, nil
}

func rowValues(cols map[string]int, row []string) url.Values {
	values := make(url.Values, len(cols))

	for name, idx := range cols {
		if idx < len(row) {
			values.Set(name, strings.TrimSpace(row[idx]))
		}
	}

	return values
}
