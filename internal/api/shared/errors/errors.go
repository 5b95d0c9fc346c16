package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeCapExceeded      ErrorCode = "cap_exceeded"
	ErrCodeAttestation      ErrorCode = "attestation_failed"
	ErrCodeReplay           ErrorCode = "replay"
	ErrCodeRateLimited      ErrorCode = "rate_limited"

	// Server errors (5xx)
	ErrCodeInternalError  ErrorCode = "internal_error"
	ErrCodeDatabaseError  ErrorCode = "database_error"
	ErrCodeServiceError   ErrorCode = "service_error"
	ErrCodeNoActivePolicy ErrorCode = "no_active_policy"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

func newAPIError(status int, code ErrorCode, message string, details ...string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return newAPIError(http.StatusBadRequest, ErrCodeBadRequest, message, details...)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newAPIError(http.StatusNotFound, ErrCodeNotFound, message, details...)
}

func NewValidationError(details ...string) *APIError {
	return newAPIError(http.StatusUnprocessableEntity, ErrCodeValidationFailed, "Validation failed", details...)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newAPIError(http.StatusUnauthorized, ErrCodeUnauthorized, message, details...)
}

func NewForbiddenError(message string, details ...string) *APIError {
	return newAPIError(http.StatusForbidden, ErrCodeForbidden, message, details...)
}

func NewConflictError(message string, details ...string) *APIError {
	return newAPIError(http.StatusConflict, ErrCodeConflict, message, details...)
}

func NewInternalError(message string, details ...string) *APIError {
	return newAPIError(http.StatusInternalServerError, ErrCodeInternalError, message, details...)
}

func NewDatabaseError(message string, details ...string) *APIError {
	return newAPIError(http.StatusInternalServerError, ErrCodeDatabaseError, message, details...)
}

func NewServiceError(message string, details ...string) *APIError {
	return newAPIError(http.StatusBadGateway, ErrCodeServiceError, message, details...)
}

// FromError maps an engine error to its API error. Unclassified errors map to an internal error
// whose details are withheld from the client.
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError("Resource not found", err.Error())
	case errors.Is(err, domain.ErrNoActivePolicy):
		return newAPIError(http.StatusServiceUnavailable, ErrCodeNoActivePolicy, "No active policy")
	case errors.Is(err, domain.ErrRateLimited):
		return newAPIError(http.StatusTooManyRequests, ErrCodeRateLimited, "Too many submissions", err.Error())
	case errors.Is(err, domain.ErrAlreadyScored),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrPolicyExists),
		errors.Is(err, domain.ErrAttesterExists),
		errors.Is(err, domain.ErrDuplicateSigner),
		errors.Is(err, domain.ErrMintRequestClosed):
		return NewConflictError("Conflict", err.Error())
	case errors.Is(err, domain.ErrAttesterNotRegistered):
		return newAPIError(http.StatusForbidden, ErrCodeAttestation, "Signer is not a registered attester", err.Error())
	}

	kind, ok := domain.KindOf(err)
	if !ok {
		return NewInternalError("Internal server error")
	}
	switch kind {
	case domain.ErrorKindValidation, domain.ErrorKindPolicy:
		return NewValidationError(err.Error())
	case domain.ErrorKindCapacity:
		return newAPIError(http.StatusConflict, ErrCodeCapExceeded, "Cap exceeded", err.Error())
	case domain.ErrorKindAttestation:
		return newAPIError(http.StatusUnprocessableEntity, ErrCodeAttestation, "Signature rejected", err.Error())
	case domain.ErrorKindReplay:
		return newAPIError(http.StatusConflict, ErrCodeReplay, "Nonce replay", err.Error())
	default:
		return NewServiceError("Ledger error", err.Error())
	}
}
