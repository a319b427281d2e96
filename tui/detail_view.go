// ABOUTME: TUI view for a single call's details and report
// ABOUTME: Two sub-tabs with independent loading state; report markdown via glamour
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/vishnet/models"
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CALL " + m.session.SelectedSid()))
	s.WriteString("\n\n")

	// Sub-tabs
	tabs := []string{"Details", "Report"}
	var rendered []string
	for i, tab := range tabs {
		if i == m.detailTab {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	s.WriteString("\n\n")

	if m.detailTab == tabDetails {
		s.WriteString(m.renderDetailsTab())
	} else {
		s.WriteString(m.renderReportTab())
	}

	s.WriteString("\n")
	s.WriteString(m.renderDetailHelp())
	return s.String()
}

func (m Model) renderDetailsTab() string {
	switch {
	case m.detailLoading:
		return m.spinner.View() + " Loading details...\n"
	case m.detailErr != "":
		return errorStyle.Render(m.detailErr) + "\n"
	case m.detail == nil:
		return mutedStyle.Render("No details loaded.") + "\n"
	}

	var s strings.Builder
	s.WriteString(labelStyle.Render("Name:") + m.detail.Name + "\n")
	s.WriteString(labelStyle.Render("Phone:") + m.detail.Phone + "\n")
	s.WriteString(labelStyle.Render("Mode:") + string(m.detail.Mode) + "\n")
	s.WriteString(labelStyle.Render("Persona:") + m.detail.Persona + "\n")
	if m.detail.VoiceID != "" {
		s.WriteString(labelStyle.Render("Voice ID:") + m.detail.VoiceID + "\n")
	}
	s.WriteString(labelStyle.Render("Placed:") + models.FormatTimestampIST(m.detail.TimestampMillis) + "\n")
	return s.String()
}

func (m Model) renderReportTab() string {
	switch {
	case m.reportLoading:
		return m.spinner.View() + " Loading report...\n"
	case m.reportErr != "":
		return errorStyle.Render(m.reportErr) + "\n"
	case m.report == nil:
		return mutedStyle.Render("No report loaded.") + "\n"
	case m.report.Pending():
		return mutedStyle.Render("Report not yet available. The call may still be processing; press 'r' to retry.") + "\n"
	}

	var s strings.Builder
	s.WriteString(m.safeRenderMarkdown(m.report.Report))
	if !strings.HasSuffix(s.String(), "\n") {
		s.WriteString("\n")
	}
	if m.report.Transcript != "" {
		s.WriteString("\n")
		s.WriteString(mutedStyle.Render("Transcript"))
		s.WriteString("\n")
		s.WriteString(m.report.Transcript)
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"Tab: Switch tab",
		"r: Reload",
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "left", "right":
		m.detailTab = (m.detailTab + 1) % 2
	case "r":
		sid := m.session.SelectedSid()
		if m.detailTab == tabDetails {
			m.detailLoading = true
			m.detailErr = ""
			return m, tea.Batch(m.spinner.Tick, m.fetchDetail(sid))
		}
		m.reportLoading = true
		m.reportErr = ""
		return m, tea.Batch(m.spinner.Tick, m.fetchReport(sid))
	case "esc":
		m.viewMode = ViewCalls
	}
	return m, nil
}

func (m Model) handleDetailLoaded(msg DetailLoadedMsg) (tea.Model, tea.Cmd) {
	// Ignore results for calls the operator has already navigated away from
	if msg.CallSid != m.session.SelectedSid() {
		return m, nil
	}
	m.detailLoading = false
	if msg.Err != nil {
		m.detailErr = msg.Err.Error()
		return m, nil
	}
	m.detailErr = ""
	record := msg.Record
	m.detail = &record
	return m, nil
}

func (m Model) handleReportLoaded(msg ReportLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.CallSid != m.session.SelectedSid() {
		return m, nil
	}
	m.reportLoading = false
	if msg.Err != nil {
		m.reportErr = msg.Err.Error()
		return m, nil
	}
	m.reportErr = ""
	report := msg.Report
	m.report = &report
	return m, nil
}

// safeRenderMarkdown renders markdown with panic recovery; glamour has been
// seen panicking on odd input, in which case the raw text is shown.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	renderer := m.renderer
	if renderer == nil {
		var err error
		renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(m.width-4, 20)),
		)
		if err != nil {
			return content
		}
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
