package fs

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	internal_errors "github.com/khidma-app/khidma-admin/internal/errors"
)

// Storage keeps uploaded media on local disk under a single root. Saved
// paths are relative to the root so the root can move between deployments.
type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// filepath.Clean prevents roots like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Save writes fileData under folder with a random uuid filename, keeping
// only the original extension. Returns the root-relative path.
func (s *Storage) Save(fileData io.Reader, folder, originalExtension string) (string, error) {
	// The extension comes from user input; clean it so ".jpg/../../x"
	// cannot escape the folder.
	cleanExtension := filepath.Clean(originalExtension)
	filename := fmt.Sprintf("%s%s", uuid.NewString(), cleanExtension)

	relativePath := filepath.Join(folder, filename)
	fullPath := filepath.Join(s.rootPath, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create subdirectories: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		os.Remove(fullPath) // best effort
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return relativePath, nil
}

// Read opens a stored file. The path is confined to the storage root.
func (s *Storage) Read(filePath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.rootPath, filepath.Clean("/"+filePath))
	if !strings.HasPrefix(fullPath, s.rootPath+string(filepath.Separator)) {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "File not found", StatusCode: http.StatusNotFound}
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "File not found", StatusCode: http.StatusNotFound}
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a single stored file. A missing file is not an error.
func (s *Storage) Delete(filePath string) error {
	fullPath := filepath.Join(s.rootPath, filepath.Clean("/"+filePath))

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
