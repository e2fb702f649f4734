package storage

// Slot is a single named local key holding one serialized document.
//
// Concurrency note:
//   - A Slot is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Separate processes sharing one slot follow last-writer-wins; nothing
//     merges concurrent edits.
type Slot interface {
	// Init creates the backing storage if needed
	Init() error
	// Open connects to existing backing storage
	Open() error
	Close() error

	// Read returns the stored document and whether one exists
	Read() (string, bool, error)
	// Write replaces the stored document
	Write(doc string) error

	// Location returns a non-sensitive description of where the slot lives
	Location() string
}
