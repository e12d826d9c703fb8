package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUndefined marks a value that exists in principle but cannot be computed
// from the rows at hand, such as a margin over zero sales.
var ErrUndefined = errors.New("value undefined")

// Result carries either a computed value or the reason it is absent: the
// column that would be needed to compute it, or why it is undefined.
type Result[T any] struct {
	Data          T
	Available     bool
	MissingColumn string
	Reason        string
}

// Available wraps a computed value.
func Available[T any](data T) Result[T] {
	return Result[T]{Data: data, Available: true}
}

// Unavailable marks a value as not computable without column.
func Unavailable[T any](column string) Result[T] {
	return Result[T]{MissingColumn: column, Reason: fmt.Sprintf("column %s not found", column)}
}

// Undefined marks a value that cannot be computed from the current rows.
func Undefined[T any](reason string) Result[T] {
	return Result[T]{Reason: reason}
}

// Get returns the value and whether it is available.
func (r Result[T]) Get() (T, bool) {
	return r.Data, r.Available
}

// Err returns nil for available results, a FeatureUnavailableError when a
// column is missing, and an error wrapping ErrUndefined otherwise.
func (r Result[T]) Err() error {
	switch {
	case r.Available:
		return nil
	case r.MissingColumn != "":
		return &FeatureUnavailableError{Field: r.MissingColumn}
	default:
		return fmt.Errorf("%w: %s", ErrUndefined, r.Reason)
	}
}

type resultJSON[T any] struct {
	Available     bool   `json:"available"`
	Data          *T     `json:"data,omitempty"`
	MissingColumn string `json:"missingColumn,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := resultJSON[T]{Available: r.Available, MissingColumn: r.MissingColumn, Reason: r.Reason}
	if r.Available {
		out.Data = &r.Data
	}
	return json.Marshal(out)
}

func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var in resultJSON[T]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Result[T]{Available: in.Available, MissingColumn: in.MissingColumn, Reason: in.Reason}
	if in.Data != nil {
		r.Data = *in.Data
	}
	return nil
}
