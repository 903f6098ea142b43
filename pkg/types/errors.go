package types

import "errors"

// Hierarchy errors.
var (
	ErrInvalidKind   = errors.New("invalid item kind")
	ErrAlreadyLinked = errors.New("item already belongs to a list")
	ErrForeignItem   = errors.New("item belongs to a different arena")
	ErrParentCycle   = errors.New("parent assignment would create a cycle")
	ErrNilItem       = errors.New("item must not be nil")
	ErrNotInList     = errors.New("item does not belong to the list")
)

// Board errors.
var (
	ErrInvalidLayer = errors.New("invalid layer")
	ErrInvalidName  = errors.New("invalid name")
)

// Formatting configuration errors.
var (
	ErrUnitsUnknown  = errors.New("unknown unit scale")
	ErrAnglesUnknown = errors.New("unknown angle convention")
	ErrInvalidNumber = errors.New("invalid number")
)

// Store errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("board not found")
)
