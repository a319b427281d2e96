// ABOUTME: TUI view for the call placement form
// ABOUTME: Handles field focus, mode toggling, persona choice, consent, and submission
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/vishnet/models"
)

func (m Model) renderFormView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("VISHNET"))
	s.WriteString("\n")
	s.WriteString(captionStyle.Render("Backend: " + m.session.BackendURL()))
	s.WriteString("\n\n")

	// Mode toggle
	s.WriteString(labelStyle.Render("Mode:"))
	if m.session.Mode() == models.ModeNormal {
		s.WriteString(tabActiveStyle.Render("normal"))
		s.WriteString(tabInactiveStyle.Render("impersonation"))
	} else {
		s.WriteString(tabInactiveStyle.Render("normal"))
		s.WriteString(tabActiveStyle.Render("impersonation"))
	}
	s.WriteString("\n\n")

	// Text fields
	for i, input := range m.formInputs {
		if i == focusVoice && m.session.Mode() == models.ModeImpersonation {
			s.WriteString("  ")
			s.WriteString(mutedStyle.Render("Voice ID:             (unavailable in impersonation mode)"))
			s.WriteString("\n")
			continue
		}
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	// Persona selector
	s.WriteString(m.renderPersonaRow())
	s.WriteString("\n")

	// Consent checkbox
	if m.focusIndex == focusConsent {
		s.WriteString("> ")
	} else {
		s.WriteString("  ")
	}
	check := "[ ]"
	if m.consent {
		check = "[x]"
	}
	s.WriteString(check + " I confirm the target has consented to this simulation")
	s.WriteString("\n\n")

	switch {
	case m.placing:
		s.WriteString(m.spinner.View() + " Placing call...")
		s.WriteString("\n")
	case m.loadingPersonas:
		s.WriteString(m.spinner.View() + " Loading personas...")
		s.WriteString("\n")
	}

	if m.personasErr != "" {
		s.WriteString(errorStyle.Render(m.personasErr))
		s.WriteString("\n")
	}
	if m.formErr != "" {
		s.WriteString(errorStyle.Render(m.formErr))
		s.WriteString("\n")
	}
	if m.confirmation != "" {
		s.WriteString(successStyle.Render("✓ " + m.confirmation))
		s.WriteString("\n")
		if m.lastPayload != "" {
			s.WriteString(mutedStyle.Render("Request sent:"))
			s.WriteString("\n")
			s.WriteString(m.lastPayload)
			s.WriteString("\n")
		}
	}

	s.WriteString(m.renderFormHelp())
	return s.String()
}

func (m Model) renderPersonaRow() string {
	choices := m.session.CachedPersonas().ForMode(m.session.Mode())

	prefix := "  "
	if m.focusIndex == focusPersona {
		prefix = "> "
	}

	if len(choices) == 0 {
		return prefix + mutedStyle.Render("Persona:              (No personas available)")
	}

	idx := m.personaIndex
	if idx >= len(choices) {
		idx = 0
	}
	selector := "◀ " + choices[idx] + " ▶"
	if m.focusIndex == focusPersona {
		selector = tabActiveStyle.Render(selector)
	}
	return prefix + "Persona:              " + selector
}

func (m Model) renderFormHelp() string {
	help := []string{
		"Tab: Next field",
		"←/→: Persona",
		"Space: Consent",
		"Ctrl+T: Mode",
		"Enter: Place call",
		"Ctrl+R: Refresh personas",
		"Ctrl+L: Call history",
		"Ctrl+O: Settings",
		"Ctrl+C: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil
	case "enter":
		return m.submitForm()
	case "ctrl+t":
		m.toggleMode()
		return m, nil
	case "ctrl+r":
		m.session.InvalidatePersonas()
		m.loadingPersonas = true
		m.personasErr = ""
		return m, tea.Batch(m.spinner.Tick, m.fetchPersonas())
	case "ctrl+l":
		m.viewMode = ViewCalls
		m.callsLoading = true
		m.callsErr = ""
		return m, tea.Batch(m.spinner.Tick, m.fetchCalls())
	case "ctrl+o":
		m.viewMode = ViewSettings
		m.settingsMsg = ""
		m.urlInput.SetValue(m.session.BackendURL())
		m.urlInput.Focus()
		return m, nil
	case "left", "right":
		if m.focusIndex == focusPersona {
			m.cyclePersona(msg.String() == "right")
			return m, nil
		}
	case " ":
		if m.focusIndex == focusConsent {
			m.consent = !m.consent
			return m, nil
		}
	}

	// Everything else edits the focused text input
	if m.focusIndex < len(m.formInputs) {
		var cmd tea.Cmd
		m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
		return m, cmd
	}
	return m, nil
}

// cycleFocus moves focus by delta, skipping the voice field in
// impersonation mode where it is disabled.
func (m *Model) cycleFocus(delta int) {
	for {
		m.focusIndex = (m.focusIndex + delta + focusZones) % focusZones
		if m.focusIndex == focusVoice && m.session.Mode() == models.ModeImpersonation {
			continue
		}
		break
	}
	m.updateFormFocus()
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m *Model) cyclePersona(forward bool) {
	choices := m.session.CachedPersonas().ForMode(m.session.Mode())
	if len(choices) == 0 {
		m.personaIndex = 0
		return
	}
	if forward {
		m.personaIndex = (m.personaIndex + 1) % len(choices)
	} else {
		m.personaIndex = (m.personaIndex - 1 + len(choices)) % len(choices)
	}
}

// toggleMode flips between normal and impersonation. The persona list swaps
// immediately from the cached snapshot; the voice field empties and disables
// for impersonation and refills with the default voice for normal.
func (m *Model) toggleMode() {
	if m.session.Mode() == models.ModeNormal {
		m.session.SetMode(models.ModeImpersonation)
		m.formInputs[focusVoice].SetValue("")
		m.formInputs[focusVoice].Blur()
		if m.focusIndex == focusVoice {
			m.cycleFocus(1)
		}
	} else {
		m.session.SetMode(models.ModeNormal)
		if m.formInputs[focusVoice].Value() == "" {
			m.formInputs[focusVoice].SetValue(models.DefaultVoiceID)
		}
	}
	m.personaIndex = 0
	m.formErr = ""
}

// maybeRefreshPersonas starts a background refetch when the cached snapshot
// has aged past the freshness window. No-op while a fetch is in flight.
func (m *Model) maybeRefreshPersonas() tea.Cmd {
	if m.loadingPersonas {
		return nil
	}
	if _, fresh := m.session.Personas(); fresh {
		return nil
	}
	m.loadingPersonas = true
	m.personasErr = ""
	return m.fetchPersonas()
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.placing {
		return m, nil
	}
	// A stale snapshot is refetched instead of submitted against; the
	// operator resubmits once the fresh persona list is in.
	if cmd := m.maybeRefreshPersonas(); cmd != nil {
		m.formErr = ""
		return m, tea.Batch(m.spinner.Tick, cmd)
	}
	m.formErr = ""
	m.confirmation = ""
	m.lastPayload = ""

	set := m.session.CachedPersonas()
	mode := m.session.Mode()
	choices := set.ForMode(mode)
	persona := ""
	if m.personaIndex < len(choices) {
		persona = choices[m.personaIndex]
	}

	req := models.CallRequest{
		Phone:   strings.TrimSpace(m.formInputs[focusPhone].Value()),
		Name:    strings.TrimSpace(m.formInputs[focusName].Value()),
		Persona: persona,
		Mode:    mode,
		VoiceID: m.formInputs[focusVoice].Value(),
	}

	if err := req.Validate(set); err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	if !m.consent {
		m.formErr = models.MsgConsentRequired
		return m, nil
	}

	m.placing = true
	return m, tea.Batch(m.spinner.Tick, m.placeCall(req))
}

// handlePersonasLoaded stores a fresh snapshot or surfaces the fetch error.
// On error the old (possibly empty) snapshot stays in place.
func (m Model) handlePersonasLoaded(msg PersonasLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingPersonas = false
	if msg.Err != nil {
		m.personasErr = msg.Err.Error()
		return m, nil
	}
	m.personasErr = ""
	m.session.StorePersonas(msg.Set)
	if choices := msg.Set.ForMode(m.session.Mode()); m.personaIndex >= len(choices) {
		m.personaIndex = 0
	}
	return m, nil
}

func (m Model) handleCallPlaced(msg CallPlacedMsg) (tea.Model, tea.Cmd) {
	m.placing = false
	if msg.Err != nil {
		m.formErr = msg.Err.Error()
		return m, nil
	}
	m.confirmation = "Call requested. The target should receive the call shortly."
	m.lastPayload = msg.Payload
	// Consent is per call, not per session
	m.consent = false
	return m, nil
}
