package types

import (
	"time"

	"github.com/google/uuid"
)

// NewRecordID generates a UUIDv7 record identifier.
// Time-ordered IDs keep catalog inserts clustered and give a stable load order.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewRecordID() RecordID {
	return RecordID(uuid.Must(uuid.NewV7()).String())
}

// NewProfileID generates a UUIDv7 profile identifier.
func NewProfileID() ProfileID {
	return ProfileID(uuid.Must(uuid.NewV7()).String())
}

// ParseRecordID validates and converts a string to RecordID.
func ParseRecordID(s string) (RecordID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return RecordID(s), nil
}

// ParseProfileID validates and converts a string to ProfileID.
func ParseProfileID(s string) (ProfileID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return ProfileID(s), nil
}

// RecordIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func RecordIDTime(id RecordID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
