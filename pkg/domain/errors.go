package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the engine wraps exactly one of them.
var (
	// ErrInvalidInput is returned when a caller supplies malformed data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when an adventure, session or node cannot be located.
	ErrNotFound = errors.New("not found")

	// ErrPersistence is returned when the cache backend fails to read or write.
	ErrPersistence = errors.New("persistence failure")

	// ErrUnauthenticated is returned when no user id is available.
	ErrUnauthenticated = errors.New("unauthenticated")
)

var (
	// ErrEmptyAdventure is returned when the creation labels are empty or lack a root.
	ErrEmptyAdventure = fmt.Errorf("%w: adventure must contain at least a root step", ErrInvalidInput)

	// ErrNoAdventure is returned when no template has been created.
	ErrNoAdventure = fmt.Errorf("%w: no adventure available", ErrNotFound)

	// ErrNoSession is returned when the user has not started an adventure.
	ErrNoSession = fmt.Errorf("%w: no session for user", ErrNotFound)

	// ErrNodeUnreachable is returned when the requested node is not on or next to the explored path.
	ErrNodeUnreachable = fmt.Errorf("%w: node not reachable", ErrNotFound)
)

// ErrMalformedTree is returned when a recursive record does not follow the heap indexing rule.
var ErrMalformedTree = errors.New("malformed adventure tree")
