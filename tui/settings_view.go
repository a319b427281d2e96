// ABOUTME: TUI view for session settings
// ABOUTME: Edits the backend URL with reset-to-default; both invalidate cached personas
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/vishnet/config"
)

func (m Model) renderSettingsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SETTINGS"))
	s.WriteString("\n\n")

	s.WriteString("> " + m.urlInput.View())
	s.WriteString("\n\n")
	s.WriteString(captionStyle.Render("Default: " + config.DefaultBackendURL))
	s.WriteString("\n")

	if m.settingsMsg != "" {
		s.WriteString("\n")
		s.WriteString(successStyle.Render(m.settingsMsg))
		s.WriteString("\n")
	}

	s.WriteString(m.renderSettingsHelp())
	return s.String()
}

func (m Model) renderSettingsHelp() string {
	help := []string{
		"Enter: Apply",
		"Ctrl+D: Reset to default",
		"Esc: Back",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.applyBackendURL(strings.TrimSpace(m.urlInput.Value()))
	case "ctrl+d":
		return m.resetBackendURL()
	case "esc":
		m.viewMode = ViewForm
		if cmd := m.maybeRefreshPersonas(); cmd != nil {
			return m, tea.Batch(m.spinner.Tick, cmd)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

// applyBackendURL switches the session to a new backend. Cached personas
// belong to the old backend, so they are refetched immediately.
func (m Model) applyBackendURL(url string) (tea.Model, tea.Cmd) {
	if url == "" {
		m.settingsMsg = ""
		return m, nil
	}

	if url == m.session.BackendURL() {
		m.settingsMsg = "Backend unchanged."
		return m, nil
	}

	m.session.SetBackendURL(url)
	m.rebindClient(url)
	if err := (&config.Config{BackendURL: url}).Save(); err != nil {
		m.settingsMsg = "Backend updated for this session; saving failed: " + err.Error()
	} else {
		m.settingsMsg = "Backend updated. Refreshing personas..."
	}
	m.loadingPersonas = true
	m.personaIndex = 0
	return m, tea.Batch(m.spinner.Tick, m.fetchPersonas())
}

// resetBackendURL restores the session's default backend. The reset always
// drops the cached personas and refetches, even when the URL is unchanged.
func (m Model) resetBackendURL() (tea.Model, tea.Cmd) {
	def := m.session.ResetBackendURL()
	m.urlInput.SetValue(def)
	m.rebindClient(def)
	m.session.InvalidatePersonas()
	if err := (&config.Config{BackendURL: def}).Save(); err != nil {
		m.settingsMsg = "Backend reset for this session; saving failed: " + err.Error()
	} else {
		m.settingsMsg = "Backend reset to default. Refreshing personas..."
	}
	m.loadingPersonas = true
	m.personaIndex = 0
	return m, tea.Batch(m.spinner.Tick, m.fetchPersonas())
}
