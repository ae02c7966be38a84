package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOrderNotFound is returned when a payment references an unknown order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrPaymentNotFound is returned when no payment exists for the given id.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrOrderAlreadyPaid is returned when the referenced order is already PAID.
	ErrOrderAlreadyPaid = errors.New("order is already paid")
	// ErrDuplicatePayment is returned when split payments are disabled and the
	// order already has a completed payment.
	ErrDuplicatePayment = errors.New("order already has a completed payment")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one message per failing input field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
