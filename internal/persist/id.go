package persist

import "github.com/google/uuid"

// NewRecordID returns a fresh record id for runs that failed before the
// engine assigned one.
func NewRecordID() string {
	return uuid.NewString()
}
