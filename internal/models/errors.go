package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredColumn = errors.New("required column missing")
	ErrEmptyResult           = errors.New("no data matches your filters")
	ErrAllExcluded           = errors.New("every value of a filter is deselected")
	ErrFeatureUnavailable    = errors.New("column not found")
	ErrRateOutOfRange        = errors.New("exchange rate out of range")
)

// MissingRequiredColumnError is returned when an upload lacks a required column.
// Nothing downstream may run until a valid file is supplied.
type MissingRequiredColumnError struct {
	Field string
}

func (e *MissingRequiredColumnError) Error() string {
	return fmt.Sprintf("Required column missing: %s", e.Field)
}

func (e *MissingRequiredColumnError) Unwrap() error {
	return ErrMissingRequiredColumn
}

// AllExcludedError is returned when a filter has no selected values. It
// matches both ErrAllExcluded and ErrEmptyResult.
type AllExcludedError struct {
	Field string
}

func (e *AllExcludedError) Error() string {
	return fmt.Sprintf("no %s selected: %s", e.Field, ErrEmptyResult)
}

func (e *AllExcludedError) Unwrap() []error {
	return []error{ErrAllExcluded, ErrEmptyResult}
}

// FeatureUnavailableError reports that one aggregate needs an absent column.
type FeatureUnavailableError struct {
	Field string
}

func (e *FeatureUnavailableError) Error() string {
	return fmt.Sprintf("column %s not found in your data", e.Field)
}

func (e *FeatureUnavailableError) Unwrap() error {
	return ErrFeatureUnavailable
}
