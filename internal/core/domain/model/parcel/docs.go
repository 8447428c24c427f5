// Package parcel provides the domain model for the parcel delivery lifecycle.
// It implements the Parcel aggregate root together with the value objects the
// lifecycle depends on.
//
// The package includes:
//   - Parcel: the aggregate root owning status, history, flags, and pricing
//   - Status: a state machine enforcing the nine-state delivery workflow
//   - TrackingID: the public TRK-YYYYMMDD-NNNNNN identifier and its validator
//   - Pricing: the deterministic fee breakdown and its input validation
//   - HistoryEntry and ActorRef: the append-only audit log and its attribution
//
// Key business rules:
//   - parcels start in REQUESTED; DELIVERED and CANCELLED are terminal
//   - the history is seeded at creation and only ever grows
//   - a blocked parcel accepts no mutation until unblocked
//   - pricing is recomputed whenever weight, details, or urgency change
//
// The package follows Domain-Driven Design principles: rich behavior behind
// constructors, with invariants enforced inside the aggregate.
package parcel
