package service

import (
	"net/http"

	"github.com/sangkips/mi-inventory-api/pkg/apperror"
)

// rejectionReason labels a failed command for the rejection counter.
func rejectionReason(err error) string {
	switch apperror.GetAppError(err).Code {
	case http.StatusUnprocessableEntity:
		return "validation"
	case http.StatusConflict:
		return "invalid_state"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusForbidden:
		return "unavailable"
	default:
		return "error"
	}
}
