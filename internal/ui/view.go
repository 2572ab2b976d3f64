package ui

import (
	"fmt"
	"strings"

	"github.com/smartsight-ai/sightchat/internal/answer"
	"github.com/smartsight-ai/sightchat/internal/domain"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.viewport.View())
	b.WriteByte('\n')
	b.WriteString(m.renderPending())
	b.WriteByte('\n')
	b.WriteString(m.renderNotice())
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(m.theme.Help.Render("enter send · /help commands · esc quit"))
	return b.String()
}

func (m Model) renderHeader() string {
	status := m.controller.Status()
	line := m.theme.Status.Render("Backend Status: " + status.String())
	if status == domain.StatusProcessing {
		line = m.spinner.View() + line
	}
	if !m.backendUp {
		line += m.theme.Status.Render(" (unreachable)")
	}
	return m.theme.Title.Render("SightChat") + "  " + line
}

// renderPending lists the draft's unsent images with their 1-based positions
// so /remove has something to point at.
func (m Model) renderPending() string {
	pending := m.controller.PendingImages()
	if len(pending) == 0 {
		return ""
	}
	labels := make([]string, len(pending))
	for i, img := range pending {
		labels[i] = fmt.Sprintf("%d:%s", i+1, imageLabel(img))
	}
	return m.theme.Pending.Render("pending: " + strings.Join(labels, " "))
}

func (m Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeIs == "error" {
		return m.theme.Error.Render(m.notice)
	}
	return m.theme.Help.Render(m.notice)
}

func (m Model) renderTurns(turns []domain.Turn) string {
	if len(turns) == 0 {
		return m.theme.Help.Render("Ask about a place, or attach an image to search by sight.")
	}

	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		if turn.Role == domain.RoleUser {
			m.renderUserTurn(&b, turn)
		} else {
			m.renderAssistantTurn(&b, turn)
		}
	}
	return b.String()
}

func (m Model) renderUserTurn(b *strings.Builder, turn domain.Turn) {
	b.WriteString(m.theme.UserLabel.Render("You"))
	b.WriteByte('\n')
	if turn.Text != "" {
		b.WriteString(m.theme.UserText.Render(turn.Text))
		b.WriteByte('\n')
	}
	for _, img := range turn.SubmittedImages {
		b.WriteString(m.theme.Caption.Render("uploaded " + imageLabel(img)))
		b.WriteByte('\n')
	}
}

func (m Model) renderAssistantTurn(b *strings.Builder, turn domain.Turn) {
	b.WriteString(m.theme.Title.Render("SmartSight"))
	b.WriteByte('\n')

	points := turn.Points
	if len(points) == 0 {
		points = []string{answer.NoInsights}
	}
	for _, point := range points {
		b.WriteString(m.theme.Point.Render("• " + point))
		b.WriteByte('\n')
	}

	for _, img := range turn.RetrievedImages {
		b.WriteString(m.theme.Caption.Render(fmt.Sprintf("%s — %s", img.URL, img.Caption)))
		b.WriteByte('\n')
	}
}
