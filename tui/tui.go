// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Provides the interactive console for placing and browsing simulated calls
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/vishnet/client"
	"github.com/harperreed/vishnet/models"
	"github.com/harperreed/vishnet/state"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewForm ViewMode = iota
	ViewCalls
	ViewDetail
	ViewSettings
)

// Form focus zones, in visual order. Text inputs come first so their index
// doubles as the formInputs index.
const (
	focusPhone = iota
	focusName
	focusVoice
	focusPersona
	focusConsent
	focusZones
)

// Detail sub-tabs.
const (
	tabDetails = iota
	tabReport
)

// Model is the main bubbletea model
type Model struct {
	session *state.Session
	client  *client.Client

	viewMode ViewMode
	width    int
	height   int
	spinner  spinner.Model

	// Form view state
	formInputs      []textinput.Model // phone, name, voice
	focusIndex      int
	personaIndex    int
	consent         bool
	placing         bool
	loadingPersonas bool
	personasErr     string
	formErr         string
	confirmation    string
	lastPayload     string

	// Calls view state
	calls        []models.CallRecord
	searchInput  textinput.Model
	searching    bool
	selectedRow  int
	callsLoading bool
	callsErr     string

	// Detail view state
	detailTab     int
	detail        *models.CallRecord
	detailLoading bool
	detailErr     string
	report        *models.ReportRecord
	reportLoading bool
	reportErr     string
	renderer      *glamour.TermRenderer

	// Settings view state
	urlInput    textinput.Model
	settingsMsg string
}

// NewModel creates a new TUI model bound to a session.
func NewModel(session *state.Session) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	inputs := make([]textinput.Model, 3)

	inputs[focusPhone] = textinput.New()
	inputs[focusPhone].Placeholder = "+15551234567"
	inputs[focusPhone].Prompt = "Target phone (E.164): "
	inputs[focusPhone].CharLimit = 16
	inputs[focusPhone].Focus()

	inputs[focusName] = textinput.New()
	inputs[focusName].Placeholder = "Jane Doe"
	inputs[focusName].Prompt = "Target name:          "
	inputs[focusName].CharLimit = 100

	inputs[focusVoice] = textinput.New()
	inputs[focusVoice].Prompt = "Voice ID:             "
	inputs[focusVoice].CharLimit = 64
	inputs[focusVoice].SetValue(models.DefaultVoiceID)

	search := textinput.New()
	search.Placeholder = "name or phone"
	search.Prompt = "/ "
	search.CharLimit = 64

	urlInput := textinput.New()
	urlInput.Prompt = "Backend URL: "
	urlInput.CharLimit = 200
	urlInput.SetValue(session.BackendURL())

	return Model{
		session:         session,
		client:          client.New(session.BackendURL()),
		viewMode:        ViewForm,
		width:           80,
		height:          24,
		spinner:         sp,
		formInputs:      inputs,
		searchInput:     search,
		urlInput:        urlInput,
		loadingPersonas: true,
	}
}

func (m Model) Init() tea.Cmd {
	// Prefetch personas so the form has choices on first paint
	return tea.Batch(m.spinner.Tick, m.fetchPersonas())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer = nil // rebuilt lazily with the new wrap width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case PersonasLoadedMsg:
		return m.handlePersonasLoaded(msg)
	case CallPlacedMsg:
		return m.handleCallPlaced(msg)
	case CallsLoadedMsg:
		return m.handleCallsLoaded(msg)
	case DetailLoadedMsg:
		return m.handleDetailLoaded(msg)
	case ReportLoadedMsg:
		return m.handleReportLoaded(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewForm:
		return m.renderFormView()
	case ViewCalls:
		return m.renderCallsView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewSettings:
		return m.renderSettingsView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewForm:
		return m.handleFormKeys(msg)
	case ViewCalls:
		return m.handleCallsKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewSettings:
		return m.handleSettingsKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(12)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
