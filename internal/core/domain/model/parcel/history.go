package parcel

import (
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry bypassed
// its constructors.
var ErrHistoryEntryIsNotConstructed = errs.NewValueIsRequiredError(
	"HistoryEntry must be created via NewHistoryEntry or RestoreHistoryEntry")

// HistoryEntry is one record in a parcel's append-only audit log: which
// status the parcel held after the action, when, who performed it, and
// optional location and note context. Entries are never edited, truncated,
// or reordered once appended.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	updatedBy ActorRef
	location  string
	note      string

	guard guard.ConstructorGuard
}

// NewHistoryEntry creates an entry timestamped now (UTC).
func NewHistoryEntry(status Status, updatedBy ActorRef, location, note string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := updatedBy.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{
		status:    status,
		timestamp: time.Now().UTC(),
		updatedBy: updatedBy,
		location:  location,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreHistoryEntry rebuilds an entry from persistence with its recorded
// timestamp.
func RestoreHistoryEntry(
	status Status, timestamp time.Time, updatedBy ActorRef, location, note string,
) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := updatedBy.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{
		status:    status,
		timestamp: timestamp,
		updatedBy: updatedBy,
		location:  location,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through a constructor.
func (h HistoryEntry) Validate() error {
	return h.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

// Status returns the status the parcel held after this action.
func (h HistoryEntry) Status() Status {
	return h.status
}

// Timestamp returns when the action happened.
func (h HistoryEntry) Timestamp() time.Time {
	return h.timestamp
}

// UpdatedBy returns who performed the action.
func (h HistoryEntry) UpdatedBy() ActorRef {
	return h.updatedBy
}

// Location returns the optional location context, empty when none was given.
func (h HistoryEntry) Location() string {
	return h.location
}

// Note returns the optional note, empty when none was given.
func (h HistoryEntry) Note() string {
	return h.note
}
