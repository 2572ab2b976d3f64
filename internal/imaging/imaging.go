// Package imaging acquires images from the local filesystem and normalises
// them into the in-memory representation the rest of the client works with.
package imaging

import (
	"fmt"
	"net/http"
	"os"

	"github.com/smartsight-ai/sightchat/internal/domain"
)

// allowedImageTypes is the set of MIME types accepted for attached images.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// DetectMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func DetectMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// ReadFiles reads a batch of image files selected in one gesture and returns
// them in argument order. Each result embeds both the MIME type and the
// bytes, so no file handle outlives the call. A single unreadable or
// non-image file fails the whole batch; nothing is partially appended.
func ReadFiles(paths ...string) ([]domain.ImageData, error) {
	images := make([]domain.ImageData, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		mime, ok := DetectMIME(data)
		if !ok {
			return nil, fmt.Errorf("%s is not a supported image format", path)
		}
		images = append(images, domain.ImageData{MIME: mime, Data: data})
	}
	return images, nil
}
