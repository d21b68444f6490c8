package validators

import (
	"strings"

	"github.com/google/uuid"
)

// IsUserID reports whether s is a canonical user id (a UUID).
func IsUserID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
