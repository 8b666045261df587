package filestorage

import "io"

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save writes r under name and returns the full path of the stored file
	Save(name string, r io.Reader) (string, error)

	// Open reads a stored file
	Open(name string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(name string) error

	// GetFullPath returns the full filesystem path for a stored file name
	GetFullPath(name string) string
}
