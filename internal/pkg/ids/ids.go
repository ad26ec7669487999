// Package ids generates the business identifiers shown in the portal
// (TXN-..., FEE-..., DOC-..., ENT-..., PRJ-...). The suffix is a ULID, so
// identifiers sort by creation time and need no central sequence.
package ids

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	Transaction = "TXN"
	Fee         = "FEE"
	Document    = "DOC"
	Entity      = "ENT"
	Project     = "PRJ"
)

// New returns prefix + "-" + a fresh ULID.
func New(prefix string) string {
	return prefix + "-" + ulid.Make().String()
}

// OrNew returns id trimmed, or a new identifier for prefix when id is blank.
func OrNew(id, prefix string) string {
	if s := strings.TrimSpace(id); s != "" {
		return s
	}
	return New(prefix)
}
