package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewSaleID returns a session-scoped sale token such as "SALE-1A2B3C4D".
func NewSaleID() string {
	return GenerateReferenceNo("SALE")
}

// GenerateReferenceNo generates a unique reference number
func GenerateReferenceNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
