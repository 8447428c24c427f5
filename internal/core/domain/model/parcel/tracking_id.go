package parcel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// TrackingIDPattern is the bit-exact wire contract for public tracking
// identifiers: "TRK-", an 8-digit date, a dash, and a 6-digit number.
const TrackingIDPattern = `^TRK-\d{8}-\d{6}$`

var trackingIDRegexp = regexp.MustCompile(TrackingIDPattern)

// ErrTrackingIDIsNotConstructed is returned when a TrackingID value bypassed
// its constructors.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingID must be created via GenerateTrackingID or TrackingIDFromString")

// TrackingID is the public, human-readable, date-scoped identifier of a
// parcel, distinct from its internal record id. Format:
// TRK-YYYYMMDD-NNNNNN, where the date is the wall-clock creation date and the
// number is drawn uniformly from [100000, 999999].
//
// Uniqueness is not guaranteed by the value itself; the creation workflow
// checks the store for collisions and regenerates, backed by a unique index.
type TrackingID struct {
	value string

	guard guard.ConstructorGuard
}

// GenerateTrackingID produces a fresh candidate tracking id from the current
// wall-clock date and a random 6-digit segment.
func GenerateTrackingID() TrackingID {
	value := fmt.Sprintf("TRK-%s-%06d", time.Now().Format("20060102"), 100000+rand.IntN(900000))
	return TrackingID{
		value: value,
		guard: guard.NewConstructorGuard(),
	}
}

// TrackingIDFromString validates an externally supplied tracking id against
// the wire format and wraps it in the value object.
func TrackingIDFromString(s string) (TrackingID, error) {
	if !IsValidTrackingID(s) {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId",
			fmt.Errorf("%q does not match %s", s, TrackingIDPattern))
	}
	return TrackingID{
		value: s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// IsValidTrackingID reports whether s matches the tracking id wire format.
// Used both for validating externally supplied ids and defensively against
// the generator's own output.
func IsValidTrackingID(s string) bool {
	return trackingIDRegexp.MatchString(s)
}

// String returns the tracking id in its wire form.
func (t TrackingID) String() string {
	return t.value
}

// Validate ensures the TrackingID was created through a constructor and
// still matches the wire format.
func (t TrackingID) Validate() error {
	if err := t.guard.Validate(ErrTrackingIDIsNotConstructed); err != nil {
		return err
	}
	if !IsValidTrackingID(t.value) {
		return errs.NewValueIsInvalidErrorWithCause("trackingId",
			fmt.Errorf("%q does not match %s", t.value, TrackingIDPattern))
	}
	return nil
}

// IsEqual reports whether two tracking ids carry the same value.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}
