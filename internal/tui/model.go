// Package tui is the interactive surface: a hub menu fanning out to
// discovery, the library, the reader, and settings. One bubbletea program
// hosts all views; navigation swaps the active sub-model.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/lumina/internal/annotation"
	"github.com/blackwell-systems/lumina/internal/gemini"
	"github.com/blackwell-systems/lumina/internal/ingest"
	"github.com/blackwell-systems/lumina/internal/library"
	"github.com/blackwell-systems/lumina/internal/settings"
)

// View identifies a top-level screen.
type View string

const (
	ViewHub      View = "hub"
	ViewDiscover View = "discover"
	ViewLibrary  View = "library"
	ViewReader   View = "reader"
	ViewSettings View = "settings"
)

// Deps wires the session's stores and services into the UI. NewPipeline
// builds a fresh import pipeline around the given progress callback so each
// discovery screen can stream stage transitions into its own channel.
type Deps struct {
	Library      *library.Store
	Highlights   *annotation.Store
	Settings     *settings.Settings
	AI           *gemini.Client
	NewPipeline  func(ingest.ProgressFunc) *ingest.Pipeline
	SaveSettings func() error
	DeleteItem   func(id string) error
}

type rootModel struct {
	deps   Deps
	view   View
	width  int
	height int

	hub       hubModel
	discover  discoverModel
	libraryV  libraryModel
	reader    readerModel
	settingsV settingsModel
}

func newRootModel(deps Deps, start View, itemID string) rootModel {
	m := rootModel{deps: deps, view: start}
	switch start {
	case ViewReader:
		m.reader = newReaderModel(deps, itemID, 0, 0)
	case ViewDiscover:
		m.discover = newDiscoverModel(deps, 0, 0)
	case ViewLibrary:
		m.libraryV = newLibraryModel(deps, 0, 0)
	case ViewSettings:
		m.settingsV = newSettingsModel(deps, 0, 0)
	default:
		m.view = ViewHub
		m.hub = newHubModel(deps, 0, 0)
	}
	return m
}

func (m rootModel) Init() tea.Cmd {
	return m.activeInit()
}

func (m rootModel) activeInit() tea.Cmd {
	switch m.view {
	case ViewDiscover:
		return m.discover.Init()
	case ViewLibrary:
		return m.libraryV.Init()
	case ViewReader:
		return m.reader.Init()
	case ViewSettings:
		return m.settingsV.Init()
	default:
		return m.hub.Init()
	}
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case NavigateMsg:
		return m.navigate(msg)
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewDiscover:
		m.discover, cmd = m.discover.Update(msg)
	case ViewLibrary:
		m.libraryV, cmd = m.libraryV.Update(msg)
	case ViewReader:
		m.reader, cmd = m.reader.Update(msg)
	case ViewSettings:
		m.settingsV, cmd = m.settingsV.Update(msg)
	default:
		m.hub, cmd = m.hub.Update(msg)
	}
	return m, cmd
}

// navigate rebuilds the target sub-model from live store state, so a view
// always reflects mutations made elsewhere (imports, deletions, settings).
func (m rootModel) navigate(msg NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.To {
	case ViewDiscover:
		m.discover = newDiscoverModel(m.deps, m.width, m.height)
	case ViewLibrary:
		m.libraryV = newLibraryModel(m.deps, m.width, m.height)
	case ViewReader:
		if m.deps.Library.ByID(msg.ItemID) == nil {
			// Item vanished underneath the navigation; land on the library.
			m.view = ViewLibrary
			m.libraryV = newLibraryModel(m.deps, m.width, m.height)
			return m, m.libraryV.Init()
		}
		m.reader = newReaderModel(m.deps, msg.ItemID, m.width, m.height)
	case ViewSettings:
		m.settingsV = newSettingsModel(m.deps, m.width, m.height)
	default:
		msg.To = ViewHub
		m.hub = newHubModel(m.deps, m.width, m.height)
	}
	m.view = msg.To
	return m, m.activeInit()
}

func (m rootModel) View() string {
	switch m.view {
	case ViewDiscover:
		return m.discover.View()
	case ViewLibrary:
		return m.libraryV.View()
	case ViewReader:
		return m.reader.View()
	case ViewSettings:
		return m.settingsV.View()
	default:
		return m.hub.View()
	}
}

// Run launches the interactive surface at the given view. itemID is only
// used when start is ViewReader.
func Run(deps Deps, start View, itemID string) error {
	p := tea.NewProgram(newRootModel(deps, start, itemID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
