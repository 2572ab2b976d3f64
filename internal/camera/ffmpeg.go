package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/smartsight-ai/sightchat/internal/domain"
	"github.com/smartsight-ai/sightchat/internal/imaging"
)

// FFmpegDevice grabs frames from a local camera through the ffmpeg binary.
// Path is the platform device identifier, e.g. /dev/video0 on linux or a
// device index like "0" on darwin.
type FFmpegDevice struct {
	Path string
}

func (d *FFmpegDevice) Open(ctx context.Context) (Stream, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}
	if runtime.GOOS == "linux" {
		if _, err := os.Stat(d.Path); err != nil {
			return nil, fmt.Errorf("camera device %s unavailable: %w", d.Path, err)
		}
	}
	return &ffmpegStream{path: d.Path}, nil
}

type ffmpegStream struct {
	path   string
	closed bool
}

func (s *ffmpegStream) Snapshot(ctx context.Context) (domain.ImageData, error) {
	if s.closed {
		return domain.ImageData{}, errors.New("stream is closed")
	}

	// Grab a single frame at the device's native resolution and emit it as
	// JPEG on stdout.
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-f", inputFormat(),
		"-i", s.path,
		"-frames:v", "1",
		"-c:v", "mjpeg",
		"-f", "image2pipe",
		"-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return domain.ImageData{}, fmt.Errorf("ffmpeg capture failed: %w (%s)", err, bytes.TrimSpace(stderr.Bytes()))
	}

	data := stdout.Bytes()
	mime, ok := imaging.DetectMIME(data)
	if !ok {
		return domain.ImageData{}, errors.New("ffmpeg produced no decodable frame")
	}
	return domain.ImageData{MIME: mime, Data: data}, nil
}

func (s *ffmpegStream) Close() error {
	s.closed = true
	return nil
}

func inputFormat() string {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation"
	default:
		return "v4l2"
	}
}
