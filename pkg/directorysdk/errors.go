package directorysdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the directory does not know the account or
// rejects the credentials.
var ErrNotFound = errors.New("directorysdk: account not found")

// APIError is a non-2xx response other than a plain not-found.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("directory api: HTTP %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("directory api: HTTP %d: %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsServerError reports whether err is an upstream failure (5xx).
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusInternalServerError
}

// parseErrorResponse maps an error response to ErrNotFound or *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       http.StatusText(resp.StatusCode),
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Error
		apiErr.Description = errResp.ErrorDescription
	}

	return apiErr
}
