package validation

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

// ErrPayloadTooLarge is returned when the request body exceeds size limits
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrInvalidMimeType is returned when an uploaded file has a disallowed MIME type
var ErrInvalidMimeType = errors.New("invalid MIME type")

// ImageMimes are the upload types the back office accepts for icons,
// logos and scanned documents.
var ImageMimes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Upload is a validated multipart file ready for the object store.
type Upload struct {
	Filename  string
	Extension string
	SizeBytes int64
	MimeType  string
	Data      multipart.File
}

// ValidateImages checks every file header against the allowed image MIME
// set and confirms each one actually decodes as an image. Callers own
// closing the returned Data readers.
func ValidateImages(fileHeaders []*multipart.FileHeader) ([]*Upload, error) {
	if len(fileHeaders) == 0 {
		return nil, nil
	}

	allowedMimes := make(map[string]bool)
	for _, m := range ImageMimes {
		allowedMimes[m] = true
	}

	var uploads []*Upload
	closeAll := func() {
		for _, u := range uploads {
			u.Data.Close()
		}
	}

	for _, fileHeader := range fileHeaders {
		mimeType, err := DetectMimeType(fileHeader)
		if err != nil {
			closeAll()
			return nil, err
		}

		if !allowedMimes[mimeType] {
			closeAll()
			return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
		}

		file, err := fileHeader.Open()
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}

		// The declared type can lie; the bytes have to decode.
		if _, _, err := image.DecodeConfig(file); err != nil {
			file.Close()
			closeAll()
			return nil, fmt.Errorf("%w: %s is not a decodable image", ErrInvalidMimeType, fileHeader.Filename)
		}
		if _, err := file.Seek(0, 0); err != nil {
			file.Close()
			closeAll()
			return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
		}

		uploads = append(uploads, &Upload{
			Filename:  fileHeader.Filename,
			Extension: strings.ToLower(filepath.Ext(fileHeader.Filename)),
			SizeBytes: fileHeader.Size,
			MimeType:  mimeType,
			Data:      file,
		})
	}

	return uploads, nil
}

// DetectMimeType resolves the file's MIME type from the part header,
// falling back to the filename extension for generic declarations.
func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(fileHeader.Filename)
		if detectedType := mime.TypeByExtension(ext); detectedType != "" {
			mimeType = detectedType
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fileHeader.Filename)
	}

	// Strip parameters like "; charset=binary"
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	return mimeType, nil
}

// ParseMultipart caps the request body and parses the multipart form.
// MaxBytesReader stops reading once the cap is hit, so an oversized
// upload cannot exhaust the server.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxSize int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return fmt.Errorf("%w: failed to parse multipart form", ErrPayloadTooLarge)
	}

	return nil
}
