package tool

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// IsUUID reports whether s parses as a UUID. Stores treat any other id as
// absent instead of sending it to a uuid column.
func IsUUID(s string) bool {
	return uuid.Validate(s) == nil
}

// GenerateSandboxOrderID returns a display-only order id derived from the
// purchase time. A random suffix keeps ids unique within one millisecond.
func GenerateSandboxOrderID(at time.Time) string {
	return fmt.Sprintf("SBOX-%d-%s", at.UnixMilli(), uuid.NewString()[:8])
}
