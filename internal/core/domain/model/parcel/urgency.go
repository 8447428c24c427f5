package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Urgency is the delivery speed tier chosen by the sender. It drives the fee
// multiplier and the implicit delivery-time expectation.
type Urgency string

const (
	// UrgencyStandard is the default tier with no surcharge.
	UrgencyStandard Urgency = "standard"

	// UrgencyExpress applies a 1.5x multiplier to the base fee.
	UrgencyExpress Urgency = "express"

	// UrgencyUrgent applies a 2.0x multiplier to the base fee.
	UrgencyUrgent Urgency = "urgent"
)

// urgencyMultipliers returns the fee multiplier per tier as an immutable table.
func urgencyMultipliers() map[Urgency]float64 {
	return map[Urgency]float64{
		UrgencyStandard: 1.0,
		UrgencyExpress:  1.5,
		UrgencyUrgent:   2.0,
	}
}

// UrgencyFromString converts an externally supplied string to an Urgency.
func UrgencyFromString(s string) (Urgency, error) {
	u := Urgency(s)
	if err := u.Validate(); err != nil {
		return "", err
	}
	return u, nil
}

// Validate checks that the urgency is one of the three known tiers.
func (u Urgency) Validate() error {
	if _, ok := urgencyMultipliers()[u]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("urgency", fmt.Errorf("%q is not a valid urgency tier", string(u)))
	}
	return nil
}

// String returns the storage and wire representation of the urgency tier.
func (u Urgency) String() string {
	return string(u)
}

// Multiplier returns the fee multiplier for the tier.
// Returns an error for unknown tiers so callers never silently price with 0.
func (u Urgency) Multiplier() (float64, error) {
	m, ok := urgencyMultipliers()[u]
	if !ok {
		return 0, u.Validate()
	}
	return m, nil
}
