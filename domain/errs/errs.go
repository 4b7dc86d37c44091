// Package errs defines the single error type returned by wrapped page actions.
package errs

import (
	"errors"
	"fmt"

	"page_automation/domain/entities"
)

// Kind classifies an action failure.
type Kind string

const (
	VisibilityTimeout Kind = "visibility_timeout"
	ActionFailure     Kind = "action_failure"
	EmptyContent      Kind = "empty_content"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrVisibilityTimeout = &Error{Kind: VisibilityTimeout}
	ErrActionFailure     = &Error{Kind: ActionFailure}
	ErrEmptyContent      = &Error{Kind: EmptyContent}
)

// Error is a classified action error carrying the original cause.
type Error struct {
	Kind    Kind
	Action  entities.ActionType
	Element string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error of the same kind, so the sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a classified error without a cause.
func New(kind Kind, action entities.ActionType, element, message string) error {
	return &Error{
		Kind:    kind,
		Action:  action,
		Element: element,
		Message: message,
	}
}

// Wrap creates a classified error around cause.
func Wrap(kind Kind, action entities.ActionType, element, message string, cause error) error {
	return &Error{
		Kind:    kind,
		Action:  action,
		Element: element,
		Message: message,
		Err:     cause,
	}
}

// KindOf returns the kind of err, defaulting to ActionFailure for foreign errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Kind != "" {
		return e.Kind
	}
	return ActionFailure
}
