package abokiapi

import "fmt"

// APIError is a non-2xx response that is neither a 401 nor a business-profile
// 403. The message comes from the response envelope when one was parseable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}
