package apperror

import "errors"

// Kind classifies a client-side failure.
type Kind int

const (
	// KindNetwork covers transport failures talking to the backend.
	KindNetwork Kind = iota
	// KindAPI covers requests the backend accepted but rejected (success=false).
	KindAPI
	// KindValidation covers client-side input checks that block submission.
	KindValidation
	// KindRender covers non-fatal document rendering failures (logo, barcode).
	KindRender
)

// AppError is the error type surfaced by the client layers. Nothing in this
// system is fatal: callers render the message and degrade.
type AppError struct {
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewNetworkError wraps a transport failure. The REST layer converts every
// transport error through this so callers never see a raw *url.Error.
func NewNetworkError(op string) *AppError {
	return &AppError{
		Kind:    KindNetwork,
		Message: "Network error. Please check your connection and try again (" + op + ")",
	}
}

// NewAPIError carries a backend-provided failure message.
func NewAPIError(message string) *AppError {
	if message == "" {
		message = "The server rejected the request"
	}
	return &AppError{Kind: KindAPI, Message: message}
}

// NewValidationError reports client-side field errors that block submission.
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewRenderError reports a degraded-rendering condition.
func NewRenderError(message string) *AppError {
	return &AppError{Kind: KindRender, Message: message}
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindNetwork
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindValidation
}

// GetAppError converts any error to an AppError.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: KindAPI, Message: err.Error()}
}
