package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrGardenNotFound is returned when a garden is not found.
	ErrGardenNotFound = errors.New("garden not found")
	// ErrPlantNotFound is returned when a plant is not part of the garden.
	ErrPlantNotFound = errors.New("plant not found")
	// ErrTaskNotFound is returned when a garden task is not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrKnowledgeBaseNotFound is returned when a knowledge base entry is not found.
	ErrKnowledgeBaseNotFound = errors.New("knowledge base entry not found")
	// ErrTrackingLogNotFound is returned when a tracking log is not found.
	ErrTrackingLogNotFound = errors.New("tracking log not found")
	// ErrTemplateNotFound is returned when a garden template is not found.
	ErrTemplateNotFound = errors.New("garden template not found")
	// ErrUnknownTemplate is returned when a garden references a template that does not exist.
	ErrUnknownTemplate = errors.New("invalid template id")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	// ErrInvalidEmail is returned for malformed email addresses.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword is returned when a password fails the complexity rule.
	ErrWeakPassword = errors.New("password must be at least 8 characters long and contain an uppercase letter, a lowercase letter and a special character")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for unknown or expired refresh, reset or confirmation tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrCurrentPasswordRequired is returned when a non-admin changes a password without proving the current one.
	ErrCurrentPasswordRequired = errors.New("current password is incorrect")
	// ErrForbidden is returned when acting on another user's resource without the admin role.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInterval is returned for malformed recurrence intervals.
	ErrInvalidInterval = errors.New("invalid recurrence interval")
	// ErrGardenConflict is returned when concurrent writers keep modifying the same garden.
	ErrGardenConflict = errors.New("garden was modified concurrently, retry the request")
)

// UpstreamError reports a failed call to an external API.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Service, e.Message)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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
		Error: e.Message,
		Code:  e.Code,
	}
}

var notFound = map[error]string{
	ErrUserNotFound:          "USER_NOT_FOUND",
	ErrGardenNotFound:        "GARDEN_NOT_FOUND",
	ErrPlantNotFound:         "PLANT_NOT_FOUND",
	ErrTaskNotFound:          "TASK_NOT_FOUND",
	ErrNotificationNotFound:  "NOTIFICATION_NOT_FOUND",
	ErrKnowledgeBaseNotFound: "KNOWLEDGE_BASE_NOT_FOUND",
	ErrTrackingLogNotFound:   "TRACKING_LOG_NOT_FOUND",
	ErrTemplateNotFound:      "TEMPLATE_NOT_FOUND",
}

var badRequest = map[error]string{
	ErrUnknownTemplate:         "INVALID_TEMPLATE",
	ErrUserAlreadyExists:       "USER_ALREADY_EXISTS",
	ErrInvalidEmail:            "INVALID_EMAIL",
	ErrWeakPassword:            "WEAK_PASSWORD",
	ErrInvalidToken:            "INVALID_TOKEN",
	ErrCurrentPasswordRequired: "INVALID_CURRENT_PASSWORD",
	ErrInvalidInterval:         "INVALID_INTERVAL",
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for sentinel, code := range notFound {
		if errors.Is(err, sentinel) {
			return NewHTTPError(http.StatusNotFound, sentinel.Error(), code)
		}
	}
	for sentinel, code := range badRequest {
		if errors.Is(err, sentinel) {
			return NewHTTPError(http.StatusBadRequest, sentinel.Error(), code)
		}
	}

	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrGardenConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "GARDEN_CONFLICT")
	case errors.As(err, &upstream):
		return NewHTTPError(http.StatusBadGateway, upstream.Error(), "UPSTREAM_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
