package postman

import (
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the Postman API. The body is carried
// verbatim so the caller can surface the service's own error message.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("postman api: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("postman api: %s", e.Status)
}

// IsNotFound reports whether the error means the addressed entity does not
// exist. The API answers 404 for unknown ids and 400 for malformed ones, so
// both count as not-found for resolution purposes.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusBadRequest
}
