package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrUserNotFound indicates an id that does not resolve to a user.
	ErrUserNotFound = errors.New("graph: user not found")

	// ErrSelfEdge indicates an attempt to make a user coach itself.
	ErrSelfEdge = errors.New("graph: user cannot coach itself")

	// ErrInfeasible indicates that no set of whole components fits the requested tolerance.
	ErrInfeasible = errors.New("graph: no component subset within tolerance")

	// ErrInvalidArgument indicates a negative quantity or tolerance.
	ErrInvalidArgument = errors.New("graph: invalid argument")

	// ErrTableTooLarge indicates that the selection table would exceed the configured cell limit.
	ErrTableTooLarge = errors.New("graph: selection table too large")
)
