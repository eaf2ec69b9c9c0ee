// Package form validates raw, untyped form submissions against declarative
// per-entity field schemas. Parsing either yields the coerced typed values or
// an ordered mapping of field names to human-readable messages; it never
// panics and it never stops at the first failing field.
package form

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Errors maps a field name to its validation messages, in rule order.
type Errors map[string][]string

// Values holds the coerced field values of a successful parse.
type Values map[string]any

// String returns the parsed string value for the named field.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Decimal returns the parsed decimal value for the named field.
func (v Values) Decimal(name string) decimal.Decimal {
	d, _ := v[name].(decimal.Decimal)
	return d
}

// Field is a single named validation rule. parse receives the raw value and
// whether the field was present in the submission, and returns either the
// coerced value or the messages to report.
type Field struct {
	name  string
	parse func(raw string, present bool) (any, []string)
}

// Schema is an ordered set of fields expected from one form.
type Schema []Field

// Parse validates values against the schema. On success it returns the typed
// values and a nil error map; on failure it returns nil values and every
// failing field's messages.
func (s Schema) Parse(values url.Values) (Values, Errors) {
	parsed := make(Values, len(s))

	var errs Errors

	for _, f := range s {
		raw, present := firstValue(values, f.name)

		v, msgs := f.parse(raw, present)
		if len(msgs) > 0 {
			if errs == nil {
				errs = make(Errors)
			}

			errs[f.name] = append(errs[f.name], msgs...)

			continue
		}

		parsed[f.name] = v
	}

	if errs != nil {
		return nil, errs
	}

	return parsed, nil
}

func firstValue(values url.Values, name string) (string, bool) {
	vs, ok := values[name]
	if !ok || len(vs) == 0 {
		return "", false
	}

	return vs[0], true
}

// String declares a required string field. Absent and blank values both fail
// with msg.
func String(name, msg string) Field {
	return Field{
		name: name,
		parse: func(raw string, present bool) (any, []string) {
			if !present || strings.TrimSpace(raw) == "" {
				return nil, []string{msg}
			}

			return raw, nil
		},
	}
}

// Amount declares a monetary field coerced from text. The value must parse as
// a decimal number greater than zero; anything else fails with msg.
func Amount(name, msg string) Field {
	return Field{
		name: name,
		parse: func(raw string, present bool) (any, []string) {
			if !present {
				return nil, []string{msg}
			}

			d, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil || !d.IsPositive() {
				return nil, []string{msg}
			}

			return d, nil
		},
	}
}

// Enum declares a field that must match one of the allowed members exactly.
func Enum(name string, allowed []string, msg string) Field {
	return Field{
		name: name,
		parse: func(raw string, present bool) (any, []string) {
			if !present {
				return nil, []string{msg}
			}

			for _, a := range allowed {
				if raw == a {
					return raw, nil
				}
			}

			return nil, []string{msg}
		},
	}
}
