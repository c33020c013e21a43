package service

import "io"

// MediaStorage is the object store for uploaded icons, logos and scans.
type MediaStorage interface {
	// Save stores a file under folder with a generated unique filename and
	// returns the relative path.
	Save(fileData io.Reader, folder, originalExtension string) (string, error)

	// Read opens a stored file by its relative path.
	Read(filePath string) (io.ReadCloser, error)

	// Delete removes a single stored file.
	Delete(filePath string) error
}

// Media serves stored files back to the admin UI.
type Media struct {
	storage MediaStorage
}

func NewMedia(storage MediaStorage) *Media {
	return &Media{storage: storage}
}

func (m *Media) Read(filePath string) (io.ReadCloser, error) {
	return m.storage.Read(filePath)
}
