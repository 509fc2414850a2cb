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

// Common application errors
var (
	ErrDecodeFailure     = errors.New("document decode failure")
	ErrNoText            = errors.New("no extractable text")
	ErrOCRService        = errors.New("ocr service failure")
	ErrTooLarge          = errors.New("document exceeds size ceiling")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrInvalidInput      = errors.New("invalid input")
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
