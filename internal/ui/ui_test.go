package ui

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsight-ai/sightchat/internal/backend"
	"github.com/smartsight-ai/sightchat/internal/camera"
	"github.com/smartsight-ai/sightchat/internal/domain"
	"github.com/smartsight-ai/sightchat/internal/session"
)

type stubBackend struct{}

func (stubBackend) Ask(_ context.Context, _ string, _ []domain.ImageData) (*backend.AskResponse, error) {
	return &backend.AskResponse{LLMResponse: `["ok"]`}, nil
}

func (stubBackend) Reset(_ context.Context) (string, error) {
	return "cleared", nil
}

type stubPinger struct{}

func (stubPinger) Ping(_ context.Context) error { return nil }

type stubStream struct{ closeCalls int }

func (s *stubStream) Snapshot(_ context.Context) (domain.ImageData, error) {
	return domain.ImageData{MIME: "image/jpeg", Data: []byte{0xFF, 0xD8}}, nil
}

func (s *stubStream) Close() error {
	s.closeCalls++
	return nil
}

type stubDevice struct{ stream *stubStream }

func (d *stubDevice) Open(_ context.Context) (camera.Stream, error) { return d.stream, nil }

func newTestModel(cam *camera.Camera) Model {
	controller := session.NewController(stubBackend{}, slog.Default())
	return New(controller, cam, stubPinger{}, NewTheme("dark"), slog.Default())
}

func TestRenderAssistantPlaceholderForEmptyPoints(t *testing.T) {
	m := newTestModel(nil)
	out := m.renderTurns([]domain.Turn{{Role: domain.RoleAssistant}})
	assert.Contains(t, out, "No relevant insights available.")
}

func TestRenderTurnsShowsPointsAndCaptions(t *testing.T) {
	m := newTestModel(nil)
	out := m.renderTurns([]domain.Turn{
		{Role: domain.RoleUser, Text: "what is this"},
		{
			Role:            domain.RoleAssistant,
			Points:          []string{"a fort", "built in 1600s"},
			RetrievedImages: []domain.RetrievedImage{{URL: "http://x/1.jpg", Caption: "the fort"}},
		},
	})
	assert.Contains(t, out, "what is this")
	assert.Contains(t, out, "a fort")
	assert.Contains(t, out, "the fort")
}

func TestRenderPendingShowsPositions(t *testing.T) {
	m := newTestModel(nil)
	m.controller.AttachImages(
		domain.ImageData{MIME: "image/jpeg", Data: make([]byte, 1024)},
		domain.ImageData{MIME: "image/png", Data: make([]byte, 2048)},
	)
	out := m.renderPending()
	assert.Contains(t, out, "1:[image/jpeg")
	assert.Contains(t, out, "2:[image/png")
}

func TestUnknownCommandSetsNotice(t *testing.T) {
	m := newTestModel(nil)
	next, _ := m.handleCommand("/bogus")
	assert.Contains(t, next.(Model).notice, "unknown command")
}

func TestCameraCommandsWithoutCamera(t *testing.T) {
	m := newTestModel(nil)

	next, _ := m.handleCommand("/camera")
	assert.Contains(t, next.(Model).notice, "disabled")

	next, _ = m.handleCommand("/snap")
	assert.Contains(t, next.(Model).notice, "not active")
}

func TestCameraToggleReleasesStream(t *testing.T) {
	stream := &stubStream{}
	cam := camera.New(&stubDevice{stream: stream}, false, slog.Default())
	m := newTestModel(cam)

	next, _ := m.handleCommand("/camera")
	m = next.(Model)
	require.True(t, cam.Active())

	next, _ = m.handleCommand("/camera")
	_ = next.(Model)
	assert.False(t, cam.Active())
	assert.Equal(t, 1, stream.closeCalls)
}

func TestResetCommandClearsLog(t *testing.T) {
	m := newTestModel(nil)
	m.controller.SetText("hello")
	_, err := m.controller.Send(context.Background())
	require.NoError(t, err)
	require.Len(t, m.controller.Turns(), 2)

	next, _ := m.handleCommand("/reset")
	assert.Empty(t, next.(Model).controller.Turns())
}

func TestRemoveCommand(t *testing.T) {
	m := newTestModel(nil)
	m.controller.AttachImages(
		domain.ImageData{MIME: "image/jpeg", Data: []byte{0}},
		domain.ImageData{MIME: "image/png", Data: []byte{1}},
	)

	next, _ := m.handleCommand("/remove 1")
	m = next.(Model)
	pending := m.controller.PendingImages()
	require.Len(t, pending, 1)
	assert.Equal(t, "image/png", pending[0].MIME)

	next, _ = m.handleCommand("/remove 5")
	assert.Contains(t, next.(Model).notice, "no pending image")
}
