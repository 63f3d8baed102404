package main

import "errors"

// Sentinel errors surfaced by the planning core.
var (
	// ErrInvalidConfiguration indicates a configuration vector with the wrong
	// number of components for the space it was handed to.
	ErrInvalidConfiguration = errors.New("planner: configuration has wrong dimensionality")

	// ErrOutOfBounds indicates a configuration outside the space extents.
	ErrOutOfBounds = errors.New("planner: configuration outside space extents")

	// ErrDisconnectedPath indicates a node sequence with a missing or removed
	// edge between two consecutive nodes.
	ErrDisconnectedPath = errors.New("planner: path contains a missing edge")

	// ErrNoPathFound is the normal terminal outcome when search or tree
	// growth exhausts without reaching the goal. Callers must handle it
	// without treating it as a crash.
	ErrNoPathFound = errors.New("planner: no path found")

	// ErrUnknownStrategy indicates a sampler strategy name outside the
	// registered table.
	ErrUnknownStrategy = errors.New("planner: unknown sampler strategy")
)
