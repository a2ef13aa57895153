package types

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_USER         = "user"
	UUID_PREFIX_SUBSCRIPTION = "subs"
	UUID_PREFIX_REMINDER     = "rem"
	UUID_PREFIX_REQUEST      = "req"
	UUID_PREFIX_SCAN_RUN     = "scan"
)

// GenerateUUID returns a lexicographically sortable unique identifier.
func GenerateUUID() string {
	return strings.ToLower(ulid.Make().String())
}

// GenerateUUIDWithPrefix returns a unique identifier with a type prefix,
// ex subs_01h9...
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
