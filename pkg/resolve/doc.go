// Package resolve turns the immutable project tree into the one consistent,
// fully-resolved view every output writer consumes: the shared profile-name
// catalog, the extension graph over target indices, and the read-only
// Context combining both with the externally resolved file lists.
//
// Everything here is a synchronous pure computation over in-memory data.
// The Context is assembled once and never mutated afterwards, so writers may
// consume it from separate goroutines without coordination.
package resolve
