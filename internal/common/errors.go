package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Engine error taxonomy. Document-level errors are fatal to one document
// only; ErrTemplate is fatal to the whole batch and is raised before any
// document is processed.
var (
	ErrUnreadableDocument = errors.New("unreadable document")
	ErrTemplate           = errors.New("template error")
	ErrPageOCRFailed      = errors.New("page ocr failed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// UnreadableDocumentError wraps a container-level parse failure so the batch
// runner can classify it without string matching.
func UnreadableDocumentError(message string, cause error) error {
	return &AppError{Code: "UNREADABLE_DOCUMENT", Message: message, Cause: errors.Join(ErrUnreadableDocument, cause)}
}

// TemplateError marks a malformed template. Always raised during registry
// load, never mid-batch.
func TemplateError(message string, cause error) error {
	return &AppError{Code: "TEMPLATE_ERROR", Message: message, Cause: errors.Join(ErrTemplate, cause)}
}

func TemplateErrorf(format string, args ...interface{}) error {
	return TemplateError(fmt.Sprintf(format, args...), nil)
}
