package types

import (
	"errors"
	"fmt"
)

// Storage and engine errors.
var (
	// ErrNotFound is returned by single-item repository lookups when no
	// record exists with the requested ID.
	ErrNotFound = errors.New("record not found")

	// ErrEngineInit indicates the relational engine could not be opened.
	// Callers degrade to key-value-only mode when they see it.
	ErrEngineInit = errors.New("engine initialization failed")

	// ErrEngineUnavailable is returned by operations that fundamentally
	// require the engine when it is running degraded or absent.
	ErrEngineUnavailable = errors.New("database unavailable")

	// ErrColumnMismatch indicates a record carried columns the target table
	// does not have. The record is rejected before any SQL is executed.
	ErrColumnMismatch = errors.New("column mismatch")

	// ErrQuery wraps a parse or execution failure from the engine. The
	// underlying driver error is preserved so ad-hoc queries get actionable
	// feedback.
	ErrQuery = errors.New("query failed")

	// ErrSerialization indicates a snapshot or JSON encode/decode failure.
	// The write that triggered it never reached the snapshot, so the prior
	// persisted state remains authoritative.
	ErrSerialization = errors.New("serialization failed")
)

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data directory must not be empty")
)

// SyncError reports the failure of one entity's bulk sync step. A failed
// entity aborts only its own sync; the surrounding batch continues.
type SyncError struct {
	Entity string // "users", "projects", "messages", or "settings".
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s: %v", e.Entity, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
