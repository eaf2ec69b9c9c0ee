package invoice

import "github.com/rvannote/billdash/internal/form"

// Create and update expect the same subset of form fields: id is assigned by
// the server (create) or supplied out-of-band (update), and date is set at
// creation and immutable after.
var (
	createSchema = form.Schema{
		form.String("customerId", "Please select a customer."),
		form.Amount("amount", "Please enter an amount greater than $0."),
		form.Enum("status", []string{string(StatusPending), string(StatusPaid)},
			"Please select an invoice status."),
	}

	updateSchema = createSchema
)
