// Package validation holds the outcome of checking a submitted form.
package validation

import "strings"

// Failure is a single field that didn't pass its rules.
type Failure struct {
	Field   string
	Message string
	Value   string
}

// Result accumulates failures in the order the rules were evaluated. The zero
// value is an empty, passing result. Result implements error so it can travel
// through echo's Binder interface.
type Result struct {
	Failures []Failure
}

// IsEmpty reports whether every rule passed.
func (r *Result) IsEmpty() bool {
	return r == nil || len(r.Failures) == 0
}

// Add records a failure.
func (r *Result) Add(field, message, value string) {
	r.Failures = append(r.Failures, Failure{Field: field, Message: message, Value: value})
}

// Messages returns the failure messages in order.
func (r *Result) Messages() []string {
	if r == nil {
		return nil
	}
	msgs := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// For returns the messages recorded against field.
func (r *Result) For(field string) []string {
	if r == nil {
		return nil
	}
	var msgs []string
	for _, f := range r.Failures {
		if f.Field == field {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

func (r *Result) Error() string {
	return strings.Join(r.Messages(), " ")
}
