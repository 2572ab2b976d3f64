// Package camera acquires still frames from a live camera device. The stream
// is a scoped resource: it is acquired on activation and must be released on
// every deactivation path, including teardown, so the device is never leaked.
package camera

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/smartsight-ai/sightchat/internal/domain"
)

// ErrInactive is returned by Capture when no stream is active.
var ErrInactive = errors.New("camera is not active")

// Stream is a live camera stream. Snapshot takes a still of the current frame
// at the frame's native resolution. Close releases the underlying device.
type Stream interface {
	Snapshot(ctx context.Context) (domain.ImageData, error)
	Close() error
}

// Device opens streams. Exactly one stream per Camera is active at a time.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}

// Camera manages the acquire/release lifecycle of a single device stream.
type Camera struct {
	mu         sync.Mutex
	device     Device
	logger     *slog.Logger
	singleShot bool
	stream     Stream
}

// New returns an inactive Camera. In single-shot mode the stream is released
// immediately after each successful capture.
func New(device Device, singleShot bool, logger *slog.Logger) *Camera {
	return &Camera{device: device, singleShot: singleShot, logger: logger}
}

// Activate opens the device stream. On failure (permission denied, no device)
// the camera stays inactive, so callers never see a stuck "camera active"
// state. Activating an already-active camera is a no-op.
func (c *Camera) Activate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		return nil
	}

	stream, err := c.device.Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to activate camera: %w", err)
	}
	c.stream = stream
	c.logger.Debug("camera activated")
	return nil
}

// Active reports whether a stream is currently held.
func (c *Camera) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream != nil
}

// Capture snapshots the current frame. Pending images produced here use the
// same representation as file-sourced ones, so downstream code cannot tell
// the acquisition source apart.
func (c *Camera) Capture(ctx context.Context) (domain.ImageData, error) {
	c.mu.Lock()
	stream := c.stream
	c.mu.Unlock()

	if stream == nil {
		return domain.ImageData{}, ErrInactive
	}

	// A real snapshot can take seconds; run it outside the lock so Active
	// and Deactivate stay responsive during a capture.
	img, err := stream.Snapshot(ctx)
	if err != nil {
		return domain.ImageData{}, fmt.Errorf("failed to capture frame: %w", err)
	}

	if c.singleShot {
		c.mu.Lock()
		// A concurrent Deactivate may have released this stream already;
		// closing it again would break the exactly-once guarantee.
		if c.stream == stream {
			c.releaseLocked()
		}
		c.mu.Unlock()
	}
	return img, nil
}

// Deactivate releases the stream. Safe to call when inactive and on every
// teardown path.
func (c *Camera) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
}

// Close implements teardown; it is Deactivate under another name so the
// Camera satisfies the usual io.Closer shutdown chain.
func (c *Camera) Close() error {
	c.Deactivate()
	return nil
}

func (c *Camera) releaseLocked() {
	if c.stream == nil {
		return
	}
	if err := c.stream.Close(); err != nil {
		c.logger.Error("failed to close camera stream", "error", err)
	}
	c.stream = nil
	c.logger.Debug("camera deactivated")
}
