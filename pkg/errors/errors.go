package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeCustomerMismatch Code = "CUSTOMER_MISMATCH"
	CodeNotFound         Code = "NOT_FOUND"
	CodeMissingDefaults  Code = "MISSING_DEFAULTS"
	CodeIntegrity        Code = "INTEGRITY_ERROR"
	CodeStorage          Code = "STORAGE_ERROR"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// Metadata tells callers how to present a failure and whether retrying can help.
type Metadata struct {
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeCustomerMismatch: {
		Retryable:      false,
		PublicMessage:  "customer information mismatch",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		Retryable:      false,
		PublicMessage:  "referenced record not found",
		DetailsAllowed: true,
	},
	CodeMissingDefaults: {
		Retryable:      false,
		PublicMessage:  "customer defaults are missing",
		DetailsAllowed: true,
	},
	CodeIntegrity: {
		Retryable:      false,
		PublicMessage:  "data integrity error",
		DetailsAllowed: false,
	},
	CodeStorage: {
		Retryable:      true,
		PublicMessage:  "database error, please retry",
		DetailsAllowed: false,
	},
	CodeInternal: {
		Retryable:      true,
		PublicMessage:  "internal error",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether any typed error in the chain carries code.
func IsCode(err error, code Code) bool {
	for err != nil {
		typed := As(err)
		if typed == nil {
			return false
		}
		if typed.code == code {
			return true
		}
		err = typed.cause
	}
	return false
}

// CodeOf returns the outermost typed code, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// Report is the caller facing view of a failure.
type Report struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Details   any    `json:"details,omitempty"`
}

// Describe builds a Report for err. Typed messages are shown when the code
// allows details; otherwise only the public message for the code is used.
func Describe(err error) Report {
	code := CodeOf(err)
	meta := MetadataFor(code)
	r := Report{Code: code, Message: meta.PublicMessage, Retryable: meta.Retryable}
	if !meta.DetailsAllowed {
		return r
	}
	if typed := As(err); typed != nil {
		r.Message = typed.message
		r.Details = typed.details
	}
	return r
}
