// Package ui is the terminal presentation layer. It renders the session
// controller's read-only state and forwards user intent to it; all chat
// semantics live in the session package.
package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartsight-ai/sightchat/internal/camera"
	"github.com/smartsight-ai/sightchat/internal/session"
)

// Pinger reports backend reachability for the status line.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	controller *session.Controller
	cam        *camera.Camera
	pinger     Pinger
	theme      *Theme
	logger     *slog.Logger

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	// notice is a one-time user-visible message (acquisition failures,
	// command feedback). Cleared on the next input.
	notice   string
	noticeIs string // "error" or "info"

	backendUp bool
	quitting  bool
}

// New builds the chat view. The camera is an optional capability: a nil cam
// disables the /camera and /snap commands without a second screen variant.
func New(controller *session.Controller, cam *camera.Camera, pinger Pinger, theme *Theme, logger *slog.Logger) Model {
	input := textinput.New()
	input.Placeholder = "Type a message, or /help"
	input.Prompt = theme.Prompt.Render("> ")
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		controller: controller,
		cam:        cam,
		pinger:     pinger,
		theme:      theme,
		logger:     logger,
		input:      input,
		spinner:    sp,
		backendUp:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, pingCmd(m.pinger))
}
