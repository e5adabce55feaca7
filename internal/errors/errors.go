package errors

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrServiceNotFound is returned when a service slug or id matches nothing.
	ErrServiceNotFound = errors.New("service not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrPortfolioNotFound is returned when a portfolio item is not found.
	ErrPortfolioNotFound = errors.New("portfolio item not found")
	// ErrQuoteNotFound is returned when a quote request is not found.
	ErrQuoteNotFound = errors.New("quote request not found")
	// ErrUnknownSettingKey is returned for a settings key outside contact/social/seo.
	ErrUnknownSettingKey = errors.New("unknown setting key")
	// ErrInvalidSettingValue is returned when a setting value is not a JSON object.
	ErrInvalidSettingValue = errors.New("setting value must be a JSON object")
	// ErrInvalidStatus is returned for a quote status outside the lifecycle.
	ErrInvalidStatus = errors.New("invalid quote status")
	// ErrInvalidImageIndex is returned when removing an image that does not exist.
	ErrInvalidImageIndex = errors.New("image index out of range")
	// ErrUnsupportedEntity is returned for uploads to an unknown entity folder.
	ErrUnsupportedEntity = errors.New("unsupported upload entity")
	// ErrConfirmationRequired is returned when a delete is not confirmed.
	ErrConfirmationRequired = errors.New("deletion must be confirmed")
	// ErrForbidden is returned when a signed-in user lacks the required role.
	ErrForbidden = errors.New("you do not have permission to manage site content")
	// ErrStorageUnavailable is returned when the object store rejects an upload.
	ErrStorageUnavailable = errors.New("image storage unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ValidationError carries one human-readable message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		httpErr := NewHTTPError(http.StatusBadRequest, "please correct the highlighted fields", "VALIDATION_ERROR")
		httpErr.Fields = verr.Fields
		return httpErr
	}

	switch {
	case errors.Is(err, ErrServiceNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SERVICE_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrPortfolioNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PORTFOLIO_NOT_FOUND")
	case errors.Is(err, ErrQuoteNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "QUOTE_NOT_FOUND")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUnknownSettingKey):
		return NewHTTPError(http.StatusNotFound, err.Error(), "UNKNOWN_SETTING")
	case errors.Is(err, ErrInvalidSettingValue):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SETTING_VALUE")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidImageIndex):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_IMAGE_INDEX")
	case errors.Is(err, ErrUnsupportedEntity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_ENTITY")
	case errors.Is(err, ErrConfirmationRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CONFIRMATION_REQUIRED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrStorageUnavailable):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "STORAGE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "something went wrong, please try again", "INTERNAL_ERROR")
	}
}
