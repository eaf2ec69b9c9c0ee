package form_test

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvannote/billdash/internal/form"
)

func testSchema() form.Schema {
	return form.Schema{
		form.String("customerId", "Please select a customer."),
		form.Amount("amount", "Please enter an amount greater than $0."),
		form.Enum("status", []string{"pending", "paid"}, "Please select an invoice status."),
	}
}

func TestSchema_Parse(t *testing.T) {
	type testCase struct {
		name       string
		values     url.Values
		wantErrs   map[string][]string
		wantAmount string
	}

	tests := []testCase{
		{
			name: "Valid",
			values: url.Values{
				"customerId": {"c1"},
				"amount":     {"49.99"},
				"status":     {"pending"},
			},
			wantAmount: "49.99",
		},
		{
			name: "CoercesWhitespaceAmount",
			values: url.Values{
				"customerId": {"c1"},
				"amount":     {" 10.00 "},
				"status":     {"paid"},
			},
			wantAmount: "10",
		},
		{
			name: "AllFieldsAccumulate",
			values: url.Values{
				"customerId": {""},
				"amount":     {"-5"},
				"status":     {"bogus"},
			},
			wantErrs: map[string][]string{
				"customerId": {"Please select a customer."},
				"amount":     {"Please enter an amount greater than $0."},
				"status":     {"Please select an invoice status."},
			},
		},
		{
			name:   "AllAbsent",
			values: url.Values{},
			wantErrs: map[string][]string{
				"customerId": {"Please select a customer."},
				"amount":     {"Please enter an amount greater than $0."},
				"status":     {"Please select an invoice status."},
			},
		},
		{
			name: "NonNumericAmount",
			values: url.Values{
				"customerId": {"c1"},
				"amount":     {"forty"},
				"status":     {"pending"},
			},
			wantErrs: map[string][]string{
				"amount": {"Please enter an amount greater than $0."},
			},
		},
		{
			name: "ZeroAmount",
			values: url.Values{
				"customerId": {"c1"},
				"amount":     {"0"},
				"status":     {"pending"},
			},
			wantErrs: map[string][]string{
				"amount": {"Please enter an amount greater than $0."},
			},
		},
		{
			name: "StatusOutsideEnum",
			values: url.Values{
				"customerId": {"c1"},
				"amount":     {"12.34"},
				"status":     {"overdue"},
			},
			wantErrs: map[string][]string{
				"status": {"Please select an invoice status."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, errs := testSchema().Parse(tt.values)

			if tt.wantErrs != nil {
				assert.Nil(t, vals)
				assert.Equal(t, form.Errors(tt.wantErrs), errs)

				return
			}

			require.Nil(t, errs)

			want, err := decimal.NewFromString(tt.wantAmount)
			require.NoError(t, err)
			assert.True(t, want.Equal(vals.Decimal("amount")))
			assert.Equal(t, tt.values.Get("customerId"), vals.String("customerId"))
			assert.Equal(t, tt.values.Get("status"), vals.String("status"))
		})
	}
}

func TestSchema_Parse_ValuesAndErrorsMutuallyExclusive(t *testing.T) {
	vals, errs := testSchema().Parse(url.Values{
		"customerId": {"c1"},
		"amount":     {"oops"},
		"status":     {"paid"},
	})

	assert.Nil(t, vals)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "amount")
}
