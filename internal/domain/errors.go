package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidationFailed    = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrAlreadyExists       = errors.New("already exists")
	ErrNullInput           = errors.New("input must not be nil")
)

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated constraint of one entity.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// HasField reports whether any violation concerns field.
func (e *ValidationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d does not exist", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type ConflictError struct {
	Kind string
	ID   uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d was changed or removed concurrently", e.Kind, e.ID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConcurrencyConflict }

type ExistsError struct {
	Kind string
	ID   uint
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("%s with id %d already exists", e.Kind, e.ID)
}

func (e *ExistsError) Is(target error) bool { return target == ErrAlreadyExists }

func NotFound(kind string, id uint) error { return &NotFoundError{Kind: kind, ID: id} }
func Conflict(kind string, id uint) error { return &ConflictError{Kind: kind, ID: id} }
func Exists(kind string, id uint) error   { return &ExistsError{Kind: kind, ID: id} }
