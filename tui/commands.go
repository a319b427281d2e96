// ABOUTME: Async backend operations as bubbletea commands
// ABOUTME: Each command returns a typed completion message consumed by Update
package tui

import (
	"context"
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/vishnet/client"
	"github.com/harperreed/vishnet/models"
)

// PersonasLoadedMsg is sent when a persona fetch completes.
type PersonasLoadedMsg struct {
	Set models.PersonaSet
	Err error
}

// CallPlacedMsg is sent when a call placement completes.
type CallPlacedMsg struct {
	Payload string
	Result  map[string]any
	Err     error
}

// CallsLoadedMsg is sent when the call history fetch completes.
type CallsLoadedMsg struct {
	Calls []models.CallRecord
	Err   error
}

// DetailLoadedMsg is sent when a single call's detail fetch completes.
type DetailLoadedMsg struct {
	CallSid string
	Record  models.CallRecord
	Err     error
}

// ReportLoadedMsg is sent when a report fetch completes.
type ReportLoadedMsg struct {
	CallSid string
	Report  models.ReportRecord
	Err     error
}

func (m Model) fetchPersonas() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		set, err := c.ListPersonas(context.Background())
		return PersonasLoadedMsg{Set: set, Err: err}
	}
}

func (m Model) placeCall(req models.CallRequest) tea.Cmd {
	c := m.client
	payload, _ := json.MarshalIndent(req.Payload(), "", "  ")
	return func() tea.Msg {
		result, err := c.PlaceCall(context.Background(), req)
		return CallPlacedMsg{Payload: string(payload), Result: result, Err: err}
	}
}

func (m Model) fetchCalls() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		calls, err := c.ListCalls(context.Background())
		return CallsLoadedMsg{Calls: calls, Err: err}
	}
}

func (m Model) fetchDetail(callSid string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		record, err := c.GetCallDetails(context.Background(), callSid)
		return DetailLoadedMsg{CallSid: callSid, Record: record, Err: err}
	}
}

func (m Model) fetchReport(callSid string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		report, err := c.GetReport(context.Background(), callSid)
		return ReportLoadedMsg{CallSid: callSid, Report: report, Err: err}
	}
}

// rebindClient replaces the backend client after a URL change.
func (m *Model) rebindClient(baseURL string) {
	m.client = client.New(baseURL)
}
