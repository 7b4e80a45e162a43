package domain

import "fmt"

type ErrCode string

const (
	CodeValidation          ErrCode = "validation_error"
	CodeNotFound            ErrCode = "not_found"
	CodeInvalidDate         ErrCode = "invalid_date"
	CodeNoMatch             ErrCode = "no_match"
	CodeSourceUnavailable   ErrCode = "source_unavailable"
	CodeNoDatastoreResource ErrCode = "no_datastore_resource"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
	Err     error
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	case len(e.Meta) != 0:
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Meta)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *AppError) Unwrap() error { return e.Err }

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrNotFound(msg string) error    { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrInvalidDate(msg string) error { return &AppError{Code: CodeInvalidDate, Message: msg} }
func ErrNoMatch(msg string) error     { return &AppError{Code: CodeNoMatch, Message: msg} }
func ErrSourceUnavailable(msg string, err error) error {
	return &AppError{Code: CodeSourceUnavailable, Message: msg, Err: err}
}
func ErrNoDatastoreResource(msg string) error {
	return &AppError{Code: CodeNoDatastoreResource, Message: msg}
}
