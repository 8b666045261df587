package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yigit/mototransporte/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Ensure the base path exists
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Debug().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// Save writes the content of r to name. The file appears complete or not at all.
func (ls *LocalStorage) Save(name string, r io.Reader) (string, error) {
	dstPath := ls.GetFullPath(name)
	if dstPath == "" {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	tmp, err := os.CreateTemp(ls.basePath, ".tmp-*")
	if err != nil {
		logger.Error().Err(err).Str("path", ls.basePath).Msg("Failed to create temporary file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file content")
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := os.Rename(tmp.Name(), dstPath); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to move file into place")
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	logger.Info().Str("path", dstPath).Msg("File saved successfully")
	return dstPath, nil
}

// Open reads a stored file
func (ls *LocalStorage) Open(name string) (io.ReadCloser, error) {
	path := ls.GetFullPath(name)
	if path == "" {
		return nil, fmt.Errorf("invalid file name: %q", name)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) Delete(name string) error {
	physicalPath := ls.GetFullPath(name)
	if physicalPath == "" {
		return fmt.Errorf("invalid file name: %q", name)
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the full filesystem path for a file name. Directory
// components are dropped so files never escape the base path.
func (ls *LocalStorage) GetFullPath(name string) string {
	filename := filepath.Base(name)
	if filename == "" || filename == "." || filename == "/" || filename == ".." {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}
