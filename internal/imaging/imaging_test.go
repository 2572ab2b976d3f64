package imaging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	pngBytes  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
)

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantMIME string
		wantOK   bool
	}{
		{"JPEG", jpegBytes, "image/jpeg", true},
		{"PNG", pngBytes, "image/png", true},
		{"GIF", []byte("GIF89a"), "image/gif", true},
		{"WebP", append([]byte("RIFF\x00\x00\x00\x00WEBP"), make([]byte, 10)...), "image/webp", true},
		{"RIFF but not WebP", append([]byte("RIFF\x00\x00\x00\x00WAVE"), make([]byte, 10)...), "", false},
		{"plain text", []byte("hello world, definitely not an image"), "", false},
		{"empty", []byte{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, ok := DetectMIME(tt.data)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMIME, mime)
		})
	}
}

func TestReadFilesPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.jpg")
	second := filepath.Join(dir, "second.png")
	require.NoError(t, os.WriteFile(first, jpegBytes, 0600))
	require.NoError(t, os.WriteFile(second, pngBytes, 0600))

	images, err := ReadFiles(first, second)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "image/jpeg", images[0].MIME)
	assert.Equal(t, jpegBytes, images[0].Data)
	assert.Equal(t, "image/png", images[1].MIME)
}

func TestReadFilesMissingFile(t *testing.T) {
	_, err := ReadFiles(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
}

func TestReadFilesRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text in a file"), 0600))

	_, err := ReadFiles(path)
	assert.ErrorContains(t, err, "not a supported image format")
}

func TestReadFilesFailsWholeBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.jpg")
	require.NoError(t, os.WriteFile(good, jpegBytes, 0600))

	images, err := ReadFiles(good, filepath.Join(dir, "missing.jpg"))
	assert.Error(t, err)
	assert.Nil(t, images)
}
