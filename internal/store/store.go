// Package store provides raw document storage for a project directory
// and the codec abstraction used to encode documents.
package store

// Store reads and writes raw documents addressed by slash-separated
// paths relative to a project directory. Implementations must make
// Write atomic with respect to readers of the same path.
type Store interface {
	// Read returns the document at the given path. A missing document
	// is reported with an error matching fs.ErrNotExist.
	Read(path string) ([]byte, error)

	// Write stores the document at the given path, creating parent
	// directories as needed and replacing any previous content.
	Write(path string, data []byte) error

	// Exists reports whether a document is present at the given path.
	Exists(path string) bool

	// Remove deletes the document at the given path. Removing a missing
	// document is not an error.
	Remove(path string) error
}
