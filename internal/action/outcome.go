// Package action defines the result type shared by the mutation pipelines.
package action

import "github.com/rvannote/billdash/internal/form"

// Outcome is what a create/update pipeline run produced. Exactly one variant
// is populated: a successful run carries the route the client should navigate
// to, a failed run carries a summary message and optional per-field errors.
// The transport layer decides how to interpret the navigation; the pipeline
// itself never transfers control.
type Outcome struct {
	Success    bool
	RedirectTo string
	Message    string
	Errors     form.Errors
}

// Redirect returns the success outcome navigating to route.
func Redirect(route string) Outcome {
	return Outcome{Success: true, RedirectTo: route}
}

// Failed returns a failure outcome with a user-facing summary and the
// field errors that caused it, if any.
func Failed(message string, errs form.Errors) Outcome {
	return Outcome{Message: message, Errors: errs}
}
