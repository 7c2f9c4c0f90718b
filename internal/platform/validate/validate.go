// Copyright (c) 2026 Stellar. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used by the entity model and the service layer, never by
// storage. Individual field predicates report an [InvalidValueError]; the
// [Validator] gathers them so one response can list every failure.
package validate

import (
	"errors"

	"github.com/taibuivan/stellar/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// InvalidValueError reports that a proposed value failed its field's predicate.
type InvalidValueError struct {
	// Field is the JSON attribute name.
	Field string
	// Reason is the client-safe explanation.
	Reason string
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string { return e.Reason }

// Invalid constructs an [InvalidValueError].
func Invalid(field, reason string) *InvalidValueError {
	return &InvalidValueError{Field: field, Reason: reason}
}

// # Predicates

// Present rejects the empty string. Whitespace counts as content.
func Present(field, value, message string) error {
	if value == "" {
		return Invalid(field, message)
	}
	return nil
}

// PresentID rejects a zero identifier (absent or null in JSON).
func PresentID(field string, id int64, message string) error {
	if id == 0 {
		return Invalid(field, message)
	}
	return nil
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Check records err when it is an [InvalidValueError]. Any other non-nil
// error is recorded against field with its own message.
func (v *Validator) Check(field string, err error) *Validator {
	if err == nil {
		return v
	}
	var invalid *InvalidValueError
	if errors.As(err, &invalid) {
		v.add(invalid.Field, invalid.Reason)
		return v
	}
	v.add(field, err.Error())
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// Call it once, at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
