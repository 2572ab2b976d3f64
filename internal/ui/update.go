package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartsight-ai/sightchat/internal/domain"
	"github.com/smartsight-ai/sightchat/internal/imaging"
	"github.com/smartsight-ai/sightchat/internal/session"
)

type sendDoneMsg struct{ err error }

type pingDoneMsg struct{ err error }

type snapDoneMsg struct{ err error }

// sendCmd runs one send. Bubble Tea runs each command in its own goroutine,
// so the text is handed to SendText, which sets and snapshots the draft in
// one critical section; two quick submits can never overwrite each other.
func sendCmd(c *session.Controller, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := c.SendText(context.Background(), text)
		return sendDoneMsg{err: err}
	}
}

func pingCmd(p Pinger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return pingDoneMsg{err: p.Ping(ctx)}
	}
}

// snapCmd captures a frame from the active camera and appends it to the
// pending list, same representation as a file attachment.
func snapCmd(m Model) tea.Cmd {
	return func() tea.Msg {
		img, err := m.cam.Capture(context.Background())
		if err != nil {
			return snapDoneMsg{err: err}
		}
		m.controller.AttachImages(img)
		return snapDoneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// header + notice + pending + input + help
		bodyHeight := max(msg.Height-5, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.teardown()
		case tea.KeyEnter:
			return m.handleSubmit()
		}

	case sendDoneMsg:
		if msg.err != nil {
			m.setNotice("error", "request failed, see the log for details")
		}
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case snapDoneMsg:
		if msg.err != nil {
			// Acquisition failure: surface once and leave pending file
			// images untouched.
			m.setNotice("error", msg.err.Error())
			return m, nil
		}
		m.setNotice("info", fmt.Sprintf("frame captured (%d pending)", len(m.controller.PendingImages())))
		return m, nil

	case pingDoneMsg:
		m.backendUp = msg.err == nil
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		// The user turn lands in the log before the backend call resolves;
		// refreshing on the spinner tick makes it visible right away.
		if m.controller.Status() == domain.StatusProcessing {
			m.refreshViewport()
		}
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.notice = ""

	if strings.HasPrefix(line, "/") {
		return m.handleCommand(line)
	}

	// Empty text with no pending images is a no-op in the controller; skip
	// the round trip entirely.
	if line == "" && len(m.controller.PendingImages()) == 0 {
		return m, nil
	}

	cmd := sendCmd(m.controller, line)
	m.refreshViewport()
	return m, cmd
}

func (m Model) handleCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/attach":
		if len(fields) < 2 {
			m.setNotice("error", "usage: /attach <file> [file...]")
			return m, nil
		}
		images, err := imaging.ReadFiles(fields[1:]...)
		if err != nil {
			m.setNotice("error", err.Error())
			return m, nil
		}
		m.controller.AttachImages(images...)
		m.setNotice("info", fmt.Sprintf("%d image(s) attached (%d pending)", len(images), len(m.controller.PendingImages())))
		return m, nil

	case "/remove":
		if len(fields) != 2 {
			m.setNotice("error", "usage: /remove <n>")
			return m, nil
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || !m.controller.RemoveImage(n-1) {
			m.setNotice("error", fmt.Sprintf("no pending image %s", fields[1]))
			return m, nil
		}
		m.setNotice("info", fmt.Sprintf("removed image %d", n))
		return m, nil

	case "/camera":
		return m.handleCamera()

	case "/snap":
		if m.cam == nil || !m.cam.Active() {
			m.setNotice("error", "camera is not active, run /camera first")
			return m, nil
		}
		return m, snapCmd(m)

	case "/reset":
		m.controller.Reset(context.Background())
		m.setNotice("info", "new chat started")
		m.refreshViewport()
		return m, nil

	case "/quit":
		return m.teardown()

	case "/help":
		m.setNotice("info", "/attach <file...>  /remove <n>  /camera  /snap  /reset  /quit")
		return m, nil

	default:
		m.setNotice("error", fmt.Sprintf("unknown command %s", fields[0]))
		return m, nil
	}
}

func (m Model) handleCamera() (tea.Model, tea.Cmd) {
	if m.cam == nil {
		m.setNotice("error", "camera support is disabled")
		return m, nil
	}
	if m.cam.Active() {
		m.cam.Deactivate()
		m.setNotice("info", "camera off")
		return m, nil
	}
	if err := m.cam.Activate(context.Background()); err != nil {
		// Fail safe: the camera reverts to inactive on its own; just tell
		// the user once.
		m.setNotice("error", err.Error())
		return m, nil
	}
	m.setNotice("info", "camera on, /snap to capture")
	return m, nil
}

// teardown releases the camera before quitting so the device is never leaked.
func (m Model) teardown() (tea.Model, tea.Cmd) {
	if m.cam != nil {
		if err := m.cam.Close(); err != nil {
			m.logger.Error("failed to release camera", "error", err)
		}
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) setNotice(kind, text string) {
	m.noticeIs = kind
	m.notice = text
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTurns(m.controller.Turns()))
	m.viewport.GotoBottom()
}

func imageLabel(img domain.ImageData) string {
	return fmt.Sprintf("[%s %.1f KB]", img.MIME, float64(len(img.Data))/1024)
}
