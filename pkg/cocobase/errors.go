package cocobase

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched by *HTTPError through errors.Is.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrRateLimited      = errors.New("rate limited")
)

var (
	// ErrUnauthenticated is returned by operations that need a token when
	// the client has none.
	ErrUnauthenticated = errors.New("user is not authenticated")

	// ErrEmptyUser is returned when the user endpoint answers with null.
	ErrEmptyUser = errors.New("failed to fetch current user")

	// ErrEmptyResponse is wrapped in a *TransportError when a successful
	// response carries no body to decode.
	ErrEmptyResponse = errors.New("empty response body")
)

// HTTPError is returned for responses with a non-2xx status.
type HTTPError struct {
	StatusCode int    `json:"statusCode"`
	URL        string `json:"url"`
	Method     string `json:"method"`

	// Detail is the response body, decoded as JSON when possible and kept
	// as the raw text otherwise.
	Detail any `json:"error"`

	// Suggestion is a hint for fixing the request.
	Suggestion string `json:"suggestions"`
}

func newHTTPError(statusCode int, url, method string, body []byte) *HTTPError {
	var detail any
	if err := json.Unmarshal(body, &detail); err != nil {
		detail = string(body)
	}
	return &HTTPError{
		StatusCode: statusCode,
		URL:        url,
		Method:     method,
		Detail:     detail,
		Suggestion: suggestionFor(statusCode, method),
	}
}

func (e *HTTPError) Error() string {
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Sprintf("request failed: %s %s returned status %d", e.Method, e.URL, e.StatusCode)
	}
	return "request failed:\n" + string(b)
}

// Is maps the status code onto the sentinel errors.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrMethodNotAllowed:
		return e.StatusCode == http.StatusMethodNotAllowed
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	default:
		return false
	}
}

func suggestionFor(statusCode int, method string) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "Check if your API key is valid and properly set"
	case http.StatusForbidden:
		return "You don't have permission to perform this action. Verify your access rights"
	case http.StatusNotFound:
		return "The requested resource was not found. Verify the path and ID are correct"
	case http.StatusMethodNotAllowed:
		return fmt.Sprintf("The %s method is not allowed for this endpoint. Check the API documentation for supported methods", method)
	case http.StatusTooManyRequests:
		return "You've exceeded the rate limit. Please wait before making more requests"
	default:
		return "Check the API documentation and verify your request format"
	}
}

// TransportError is returned when a request could not be sent or its
// response could not be read or decoded.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unexpected error during %s request to %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UploadError is returned when the upload endpoint answers with a non-2xx
// status. The response body is discarded.
type UploadError struct {
	StatusCode int
}

func (e *UploadError) Error() string {
	return "file upload failed"
}
