// Package history records pmctl invocations that touched the remote API,
// so a user can see what they recently looked at and with which profile.
package history

import (
	"context"
	"errors"
	"time"
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("history store is closed")

// Entry is one recorded invocation.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Profile  string `json:"profile"`
	Command  string `json:"command"`            // e.g. "collections show"
	Resource string `json:"resource,omitempty"` // entity id/name the command addressed

	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Store defines the interface for invocation history storage.
type Store interface {
	// Add adds a new entry and returns its ID.
	Add(ctx context.Context, entry Entry) (string, error)

	// List retrieves entries newest-first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close closes the store and releases resources.
	Close() error
}
