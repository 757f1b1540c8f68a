package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanguard-ops/vanguard/internal/opsapi"
	"github.com/vanguard-ops/vanguard/internal/prefs"
	"github.com/vanguard-ops/vanguard/internal/state"
)

// View represents the current active panel.
type View int

const (
	ViewConvoys View = iota
	ViewRoutes
	ViewThreats
)

// Options configure the UI.
type Options struct {
	Context     context.Context
	Client      opsapi.StateFetcher
	Store       *state.Store
	Selections  *state.SelectionCoordinator
	ThemeName   string
	DefaultView string
	PrefsPath   string
}

// Messages delivered into the Bubble Tea loop from the state layer.
type (
	snapshotMsg  struct{ snap *opsapi.UnifiedState }
	selectionMsg struct{ sel state.Selection }
	vehiclesMsg  struct {
		convoyID int64
		vehicles []opsapi.Vehicle
		err      error
	}
)

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	client     opsapi.StateFetcher
	store      *state.Store
	selections *state.SelectionCoordinator
	prefsPath  string

	theme  Theme
	styles Styles

	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	snapshot  *opsapi.UnifiedState
	selection state.Selection

	cursor map[View]int

	detailViewport viewport.Model
	vehicles       []opsapi.Vehicle
	vehiclesFor    int64
	vehiclesErr    error
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	theme := ThemeByName(opts.ThemeName)
	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		selections:  opts.Selections,
		prefsPath:   opts.PrefsPath,
		theme:       theme,
		styles:      theme.Styles(),
		cursor:      map[View]int{},
		currentView: viewByName(opts.DefaultView),
	}
	if opts.Store != nil {
		m.snapshot = opts.Store.Snapshot()
	}
	if opts.Selections != nil {
		m.selection = opts.Selections.Selection()
	}
	return m
}

func viewByName(name string) View {
	switch name {
	case "routes":
		return ViewRoutes
	case "threats":
		return ViewThreats
	default:
		return ViewConvoys
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.detailViewport = viewport.New(m.detailWidth(), m.panelHeight())
		m.refreshDetail()
		return m, nil

	case snapshotMsg:
		m.snapshot = msg.snap
		m.clampCursor()
		m.refreshDetail()
		return m, nil

	case selectionMsg:
		m.selection = msg.sel
		if msg.sel.ConvoyID == nil || (m.vehiclesFor != 0 && *msg.sel.ConvoyID != m.vehiclesFor) {
			m.vehicles = nil
			m.vehiclesFor = 0
			m.vehiclesErr = nil
		}
		m.refreshDetail()
		return m, nil

	case vehiclesMsg:
		// Drop rosters for convoys the operator has moved away from.
		if m.selection.ConvoyID != nil && *m.selection.ConvoyID == msg.convoyID {
			m.vehicles = msg.vehicles
			m.vehiclesFor = msg.convoyID
			m.vehiclesErr = msg.err
			m.refreshDetail()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.currentView = (m.currentView + 1) % 3
		return m, nil

	case "up", "k":
		m.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "enter":
		m.selectCurrent()
		return m, nil

	case "esc":
		m.clearSelection()
		return m, nil

	case "r":
		if m.store != nil {
			m.store.Refresh()
		}
		return m, nil

	case "v":
		return m, m.fetchVehiclesCmd()

	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = m.theme.Styles()
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, DefaultView: viewName(m.currentView)})
		return m, nil

	case "?":
		m.showHelp = true
		return m, nil
	}

	return m, nil
}

func viewName(v View) string {
	switch v {
	case ViewRoutes:
		return "routes"
	case ViewThreats:
		return "threats"
	default:
		return "convoys"
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor[m.currentView] += delta
	m.clampCursor()
	m.refreshDetail()
}

func (m *Model) clampCursor() {
	for view, pos := range m.cursor {
		max := m.rowCount(view) - 1
		if pos > max {
			pos = max
		}
		if pos < 0 {
			pos = 0
		}
		m.cursor[view] = pos
	}
}

func (m Model) rowCount(view View) int {
	if m.snapshot == nil {
		return 0
	}
	switch view {
	case ViewConvoys:
		return len(m.snapshot.Convoys)
	case ViewRoutes:
		return len(m.snapshot.Routes)
	case ViewThreats:
		return len(m.snapshot.Threats)
	}
	return 0
}

// selectCurrent pushes the highlighted row into the selection coordinator,
// which fans it out to every panel.
func (m *Model) selectCurrent() {
	if m.snapshot == nil || m.selections == nil {
		return
	}
	pos := m.cursor[m.currentView]
	switch m.currentView {
	case ViewConvoys:
		if pos < len(m.snapshot.Convoys) {
			id := m.snapshot.Convoys[pos].ID
			m.selections.SetSelectedConvoyID(&id)
		}
	case ViewRoutes:
		if pos < len(m.snapshot.Routes) {
			id := m.snapshot.Routes[pos].ID
			m.selections.SetSelectedRouteID(&id)
		}
	case ViewThreats:
		if pos < len(m.snapshot.Threats) {
			if routeID := m.snapshot.Threats[pos].RouteID; routeID != nil {
				m.selections.SetSelectedRouteID(routeID)
			}
		}
	}
}

func (m *Model) clearSelection() {
	if m.selections == nil {
		return
	}
	switch m.currentView {
	case ViewConvoys:
		m.selections.SetSelectedConvoyID(nil)
	default:
		m.selections.SetSelectedRouteID(nil)
	}
}

func (m Model) fetchVehiclesCmd() tea.Cmd {
	if m.client == nil || m.selection.ConvoyID == nil {
		return nil
	}
	convoyID := *m.selection.ConvoyID
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		vehicles, err := client.FetchConvoyVehicles(fetchCtx, convoyID)
		return vehiclesMsg{convoyID: convoyID, vehicles: vehicles, err: err}
	}
}

// Run starts the UI and blocks until the user quits or ctx is cancelled. The
// store subscription lives exactly as long as the program: the scheduler
// starts when the dashboard mounts and stops when it exits.
func Run(opts Options) error {
	model := New(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(opts.Context))

	var unsubscribe, unwatch func()
	if opts.Store != nil {
		unsubscribe = opts.Store.Subscribe(func(snap *opsapi.UnifiedState) {
			program.Send(snapshotMsg{snap: snap})
		})
		defer unsubscribe()
	}
	if opts.Selections != nil {
		unwatch = opts.Selections.Watch(func(sel state.Selection) {
			program.Send(selectionMsg{sel: sel})
		})
		defer unwatch()
	}

	_, err := program.Run()
	return err
}
