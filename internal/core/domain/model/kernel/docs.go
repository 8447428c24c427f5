// Package kernel provides the domain primitives shared by every aggregate in
// the parcel tracking system. Currently this is the UUID value object, which
// guarantees identifiers are constructed and validated consistently across
// parcels, users, and history entries.
package kernel
