package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a state machine with a fixed transition graph so parcels
// always move through the delivery workflow in a legal order.
//
// State transitions:
//
//	REQUESTED ──> APPROVED ──> PICKED_UP ──> IN_TRANSIT ──> OUT_FOR_DELIVERY ──> DELIVERED
//	    │  ▲          │             │             │                 │
//	    │  │          │             └─> RETURNED  └─> FAILED ───────┤
//	    │  └──────────┼──── RETURNED <── FAILED <───────────────────┘
//	    └─> CANCELLED <┘
//
// DELIVERED and CANCELLED are terminal. RETURNED loops back to REQUESTED so a
// returned parcel can be re-requested. Status is a value object; the string
// form doubles as the storage and wire representation.
type Status string

const (
	// StatusRequested is the initial status of every newly created parcel.
	StatusRequested Status = "requested"

	// StatusApproved indicates an admin accepted the request for dispatch.
	StatusApproved Status = "approved"

	// StatusPickedUp indicates delivery personnel collected the parcel.
	StatusPickedUp Status = "picked_up"

	// StatusInTransit indicates the parcel is moving between facilities.
	StatusInTransit Status = "in_transit"

	// StatusOutForDelivery indicates the parcel is on its final leg.
	StatusOutForDelivery Status = "out_for_delivery"

	// StatusDelivered is the terminal success status.
	StatusDelivered Status = "delivered"

	// StatusCancelled is the terminal status for withdrawn requests.
	StatusCancelled Status = "cancelled"

	// StatusReturned indicates the parcel went back to the sender; the
	// sender may re-request delivery from here.
	StatusReturned Status = "returned"

	// StatusFailedDelivery indicates a delivery attempt that did not reach
	// the receiver. Another attempt or a return can follow.
	StatusFailedDelivery Status = "failed_delivery"
)

// allowedTransitions returns the full lifecycle graph as an immutable mapping
// from each status to the set of statuses reachable in one step. Every
// transition check in the system goes through this single table.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusRequested:      {StatusApproved, StatusCancelled},
		StatusApproved:       {StatusPickedUp, StatusCancelled},
		StatusPickedUp:       {StatusInTransit, StatusReturned},
		StatusInTransit:      {StatusOutForDelivery, StatusFailedDelivery},
		StatusOutForDelivery: {StatusDelivered, StatusFailedDelivery},
		StatusFailedDelivery: {StatusOutForDelivery, StatusReturned},
		StatusReturned:       {StatusRequested},
		StatusDelivered:      {},
		StatusCancelled:      {},
	}
}

// AllStatuses returns every valid status, in lifecycle order.
// Used by the stats aggregation to build its fixed buckets.
func AllStatuses() []Status {
	return []Status{
		StatusRequested,
		StatusApproved,
		StatusPickedUp,
		StatusInTransit,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
		StatusReturned,
		StatusFailedDelivery,
	}
}

// StatusFromString converts an externally supplied string to a Status.
// Returns an error for anything outside the known status set.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the Status value belongs to the known status set.
// The zero value ("") and any unknown string are invalid.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the storage and wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions()[s]) == 0 && s.Validate() == nil
}

// CanTransitionTo reports whether the lifecycle graph permits a one-step move
// from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo performs a checked transition from s to target.
//
// Returns:
//   - (target, nil) when the graph allows the move
//   - ("", *errs.InvalidTransitionError) naming both statuses otherwise
//
// This method is the only way a Parcel changes its status; call sites never
// compare statuses themselves.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
