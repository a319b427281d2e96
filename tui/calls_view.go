// ABOUTME: TUI view for browsing placed calls
// ABOUTME: Renders a searchable call table sorted newest first
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/vishnet/models"
)

func (m Model) renderCallsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CALL HISTORY"))
	s.WriteString("\n\n")

	if m.searching || m.searchInput.Value() != "" {
		s.WriteString(m.searchInput.View())
		s.WriteString("\n\n")
	}

	switch {
	case m.callsLoading:
		s.WriteString(m.spinner.View() + " Loading calls...")
		s.WriteString("\n")
	case m.callsErr != "":
		s.WriteString(errorStyle.Render(m.callsErr))
		s.WriteString("\n")
	default:
		s.WriteString(m.renderCallsTable())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.renderCallsHelp())
	return s.String()
}

// visibleCalls applies the search filter to the fetched call list.
func (m Model) visibleCalls() []models.CallRecord {
	return models.FilterCalls(m.calls, m.searchInput.Value())
}

func (m Model) renderCallsTable() string {
	visible := m.visibleCalls()
	if len(visible) == 0 {
		if m.searchInput.Value() != "" {
			return mutedStyle.Render("No calls match the search.")
		}
		return mutedStyle.Render("No calls placed yet.")
	}

	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Phone", Width: 16},
		{Title: "Mode", Width: 14},
		{Title: "Placed", Width: 28},
	}

	var rows []table.Row
	for _, call := range visible {
		rows = append(rows, table.Row{
			call.Name,
			call.Phone,
			string(call.Mode),
			models.FormatTimestampIST(call.TimestampMillis),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(!m.searching),
		table.WithHeight(max(3, min(len(rows)+1, m.height-10))),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderCallsHelp() string {
	if m.searching {
		return helpStyle.Render("Enter/Esc: Done searching")
	}
	help := []string{
		"↑/↓: Navigate",
		"Enter: View details",
		"/: Search",
		"r: Refresh",
		"n: New call",
		"o: Settings",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleCallsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.searchInput.Blur()
			m.selectedRow = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.selectedRow = 0
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.visibleCalls())-1 {
			m.selectedRow++
		}
	case "/":
		m.searching = true
		m.searchInput.Focus()
	case "r":
		m.callsLoading = true
		m.callsErr = ""
		return m, tea.Batch(m.spinner.Tick, m.fetchCalls())
	case "n", "esc":
		m.viewMode = ViewForm
		if cmd := m.maybeRefreshPersonas(); cmd != nil {
			return m, tea.Batch(m.spinner.Tick, cmd)
		}
	case "o":
		m.viewMode = ViewSettings
		m.settingsMsg = ""
		m.urlInput.SetValue(m.session.BackendURL())
		m.urlInput.Focus()
	case "enter":
		visible := m.visibleCalls()
		if m.selectedRow < len(visible) {
			return m.openDetail(visible[m.selectedRow].CallSid)
		}
	}

	return m, nil
}

// openDetail switches to the detail view and kicks off both sub-view
// fetches; each carries its own loading and error state.
func (m Model) openDetail(callSid string) (tea.Model, tea.Cmd) {
	m.session.SetSelectedSid(callSid)
	m.viewMode = ViewDetail
	m.detailTab = tabDetails
	m.detail = nil
	m.report = nil
	m.detailErr = ""
	m.reportErr = ""
	m.detailLoading = true
	m.reportLoading = true
	return m, tea.Batch(m.spinner.Tick, m.fetchDetail(callSid), m.fetchReport(callSid))
}

func (m Model) handleCallsLoaded(msg CallsLoadedMsg) (tea.Model, tea.Cmd) {
	m.callsLoading = false
	if msg.Err != nil {
		m.callsErr = msg.Err.Error()
		return m, nil
	}
	m.callsErr = ""
	m.calls = msg.Calls
	if m.selectedRow >= len(msg.Calls) {
		m.selectedRow = 0
	}
	return m, nil
}
