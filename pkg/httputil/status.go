package httputil

import (
	"net/http"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

// CheckStatus maps an HTTP status code to an error. 2xx is success; 404 is
// NOT_FOUND; 429 and 5xx are retryable NETWORK_ERRORs; everything else is
// a plain NETWORK_ERROR.
func CheckStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "resource not found (status %d)", code)
	case code == http.StatusTooManyRequests || code >= 500:
		return Retryable(errors.New(errors.ErrCodeNetwork, "server returned status %d", code))
	default:
		return errors.New(errors.ErrCodeNetwork, "server returned status %d", code)
	}
}
