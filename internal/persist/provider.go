// Package persist implements the durable key-value slot that holds the
// serialized note store state, with file and SQLite drivers plus the
// rehydrate/autosave plumbing around them.
package persist

// StorageKey is the fixed slot key the full store snapshot lives under.
const StorageKey = "note-storage"

// Provider is the interface for the durable slot.
type Provider interface {
	// Load returns the stored payload, or apperr.ErrNotFound when the
	// slot has never been written.
	Load() ([]byte, error)
	// Save durably replaces the slot payload.
	Save(data []byte) error
	// Close releases any underlying resources.
	Close() error
}
