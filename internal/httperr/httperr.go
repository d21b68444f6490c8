package httperr

import "net/http"

// Status maps a failure kind onto an HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
