package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateEventCode derives a 6 character alphanumeric code from a random
// 128-bit identifier. Collisions are possible at scale; callers retry against
// the unique index on events.event_code.
func GenerateEventCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return raw[:6]
}
