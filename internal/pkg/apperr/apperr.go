// Package apperr is the engine's error taxonomy. Every usecase failure is one
// of these kinds so callers can pick retry and messaging behavior without
// string matching. The engine never retries; Transient marks what a caller
// may safely retry.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: missing or malformed input, caller's fault, never retried.
	KindValidation
	// KindNotFound: role/skill/resume/snapshot absent.
	KindNotFound
	// KindConflict: duplicate skill/benchmark on create.
	KindConflict
	// KindInUse: deactivation blocked by existing references.
	KindInUse
	// KindTransient: storage I/O failure, safe for the caller to retry.
	KindTransient
	// KindExtraction: upstream text extraction returned empty/unreadable
	// content. Distinct from "no skills found", which is an empty success.
	KindExtraction
)

type Error struct {
	Kind   Kind
	Entity string
	ID     string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Entity != "" && e.ID != "" {
		msg = fmt.Sprintf("%s: %s %s", msg, e.Entity, e.ID)
	} else if e.Entity != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Entity)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindInUse:
		return "in use"
	case KindTransient:
		return "transient storage error"
	case KindExtraction:
		return "extraction failed"
	default:
		return "unknown error"
	}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

func Conflict(entity, msg string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Msg: msg}
}

func InUse(entity, id, msg string) *Error {
	return &Error{Kind: KindInUse, Entity: entity, ID: id, Msg: msg}
}

func Transient(err error) *Error {
	return &Error{Kind: KindTransient, Err: err}
}

func Extraction(msg string, err error) *Error {
	return &Error{Kind: KindExtraction, Msg: msg, Err: err}
}

// KindOf returns the taxonomy kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
