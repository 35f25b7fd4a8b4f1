package matcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnsupportedFile = errors.New("only .xlsx files are supported")
	ErrFileTooLarge    = errors.New("file too large")
	ErrNoTargets       = errors.New("target must be a positive number")
	ErrNoSource        = errors.New("file or upload id must be provided")
)

// APIError is a non-2xx answer from the matcher service.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("matcher service: %d %s", e.Status, e.Detail)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// parseAPIError builds an APIError from a response body. The service sends
// {"detail": "..."}; validation failures carry a structured detail, which is
// kept as raw JSON.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var text string
		if json.Unmarshal(payload.Detail, &text) == nil {
			apiErr.Detail = text
		} else {
			apiErr.Detail = string(payload.Detail)
		}
	}
	if apiErr.Detail == "" {
		apiErr.Detail = strings.TrimSpace(string(body))
	}
	if apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(status)
	}
	return apiErr
}
