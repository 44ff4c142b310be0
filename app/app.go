package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"callstrip/config"
	"callstrip/filmstrip"
	"callstrip/inspect"
	"callstrip/keys"
	"callstrip/layout"
	"callstrip/log"
	"callstrip/participants"
	"callstrip/ui"
	"callstrip/ui/overlay"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// volumeStep is how much one +/- press changes a participant's volume.
const volumeStep = 0.1

var seedNames = []string{"alice", "bob", "carol", "dave"}

var demoNames = []string{
	"erin", "frank", "grace", "heidi", "ivan", "judy", "mallory", "niaj",
	"olivia", "peggy", "rupert", "sybil", "trent", "victor", "walter",
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h := newHome(ctx, cfg, config.LoadState(cfg), seedNames)
	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse clicks and wheel
	)

	if path, err := config.GetConfigPath(); err != nil {
		log.WarningLog.Printf("config hot reload disabled: %v", err)
	} else if err := config.Watch(ctx, path, func(c *config.Config) {
		p.Send(configReloadedMsg{cfg: c})
	}); err != nil {
		log.WarningLog.Printf("config hot reload disabled: %v", err)
	}

	_, err := p.Run()
	h.saveState()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateHelp is the state when a help screen is displayed.
	stateHelp
	// stateMode is the state when the mode selector is displayed.
	stateMode
)

func (s state) String() string {
	switch s {
	case stateHelp:
		return "help"
	case stateMode:
		return "mode"
	default:
		return "default"
	}
}

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	appConfig *config.Config

	// -- State --

	state     state
	directory *participants.Directory
	engine    *filmstrip.Engine
	nameSeq   int

	width, height int
	// rosterWidth is the width of the participant list; the stage starts there.
	rosterWidth int
	chatCells   int

	// stripView is the last filmstrip render; its hit regions match it.
	stripView string

	// copyToClipboard is clipboard.WriteAll outside of tests.
	copyToClipboard func(string) error

	// -- UI Components --

	list        *ui.List
	menu        *ui.Menu
	errBox      *ui.ErrBox
	strip       *ui.FilmstripView
	help        help.Model
	textOverlay *overlay.TextOverlay
	modeOverlay *overlay.ModeSelectorOverlay
}

func newHome(ctx context.Context, cfg *config.Config, st *config.State, seed []string) *home {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if st == nil {
		st = config.DefaultState(cfg)
	}

	dir := participants.New()
	h := &home{
		ctx:             ctx,
		appConfig:       cfg,
		directory:       dir,
		engine:          filmstrip.New(cfg, dir),
		copyToClipboard: clipboard.WriteAll,
		list:            ui.NewList(),
		menu:            ui.NewMenu(),
		errBox:          ui.NewErrBox(),
		strip:           ui.NewFilmstripView(ui.CellSize{Width: cfg.CellWidth, Height: cfg.CellHeight}),
		help:            help.New(),
	}
	dir.Subscribe(h.participantChanged)

	mode, err := layout.ParseMode(st.Mode)
	if err != nil {
		log.WarningLog.Printf("saved state: %v", err)
		mode = cfg.Mode()
	}
	h.engine.SetMode(mode)
	h.engine.SetChatOpen(st.ChatOpen)
	h.engine.SetFilmstripVisible(st.FilmstripVisible)

	for _, name := range seed {
		dir.Add(name)
	}
	h.afterUpdate()
	return h
}

// participantChanged forwards directory changes to the engine. The directory
// is only mutated from Update, so this runs on the event loop.
func (m *home) participantChanged(c participants.Change) {
	switch c.Kind {
	case participants.Joined:
		m.engine.ParticipantJoined(c.Index)
	case participants.Left:
		m.engine.ParticipantLeft(c.Index)
		m.engine.ClearVolume(c.ID)
	default:
		m.engine.ParticipantsChanged()
	}
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.layoutComponents()
}

// layoutComponents splits the terminal into header, roster, stage, menu and
// error rows, and reports the stage to the engine in pixels.
func (m *home) layoutComponents() {
	contentHeight := max(m.height-3, 0)

	m.rosterWidth = min(max(m.width/4, 18), 32)
	if m.width-m.rosterWidth < 24 {
		m.rosterWidth = 0
	}
	stageWidth := m.width - m.rosterWidth

	m.chatCells = 0
	if m.engine.ChatOpen() {
		cw := max(m.appConfig.CellWidth, 1)
		m.chatCells = min((m.appConfig.Layout.ChatWidth+cw-1)/cw, stageWidth/2)
	}

	m.list.SetSize(m.rosterWidth, contentHeight)
	m.strip.SetCellSize(ui.CellSize{Width: m.appConfig.CellWidth, Height: m.appConfig.CellHeight})
	m.strip.SetSize(stageWidth-m.chatCells, contentHeight)
	m.menu.SetSize(m.width, 1)
	m.errBox.SetSize(int(float32(m.width)*0.9), 1)

	m.engine.SetViewportSize(stageWidth*m.appConfig.CellWidth, contentHeight*m.appConfig.CellHeight)
}

func (m *home) Init() tea.Cmd {
	return nil
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.afterUpdate()
	return model, cmd
}

func (m *home) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hideErrMsg:
		m.errBox.Clear()
	case keyupMsg:
		m.menu.ClearKeydown()
	case configReloadedMsg:
		m.appConfig = msg.cfg
		m.engine.SetConfig(msg.cfg)
		m.layoutComponents()
		return m, m.handleNotice("config reloaded")
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
	case error:
		return m, m.handleError(msg)
	}
	return m, nil
}

// afterUpdate consumes engine events and refreshes everything derived from
// engine state.
func (m *home) afterUpdate() {
	for _, ev := range m.engine.Drain() {
		log.WindowTrace("event %s %+v", ev.Name(), ev)
		if p, ok := ev.(filmstrip.PinChanged); ok {
			if p.Cleared() {
				m.errBox.SetNotice("pin cleared")
			} else {
				m.errBox.SetNotice("pinned " + m.nameOf(p.ParticipantID))
			}
		}
	}

	m.list.SetItems(m.roster())
	if m.state == stateDefault {
		if m.directory.Len() == 0 {
			m.menu.SetState(ui.StateEmpty)
		} else {
			m.menu.SetState(ui.StateDefault)
		}
	}

	m.stripView = m.strip.Render(m.frame())

	if inspect.IsEnabled() {
		if err := inspect.WriteSnapshot(m.snapshot()); err != nil {
			log.WarningLog.Printf("inspect: %v", err)
		}
	}
}

func (m *home) frame() ui.Frame {
	names := make(map[string]string)
	for _, p := range m.directory.Snapshot() {
		names[p.ID] = p.Name
	}
	return ui.Frame{
		Mode:       m.engine.Mode(),
		Dimensions: m.engine.Dimensions(),
		Thumbnails: m.engine.Thumbnails(),
		Names:      names,
		Visible:    m.engine.FilmstripVisible(),
	}
}

func (m *home) roster() []ui.RosterEntry {
	w := m.engine.Window()
	pinned := m.engine.Pinned()
	people := m.directory.Snapshot()
	entries := make([]ui.RosterEntry, 0, len(people))
	for i, p := range people {
		v, hasVolume := m.engine.Volume(p.ID)
		entries = append(entries, ui.RosterEntry{
			Participant: p,
			Pinned:      p.ID == pinned,
			Visible:     w.Contains(i),
			Volume:      v,
			HasVolume:   hasVolume,
		})
	}
	return entries
}

func (m *home) nameOf(id string) string {
	if p, ok := m.directory.Get(id); ok {
		return p.Name
	}
	return id
}

func (m *home) nextName() string {
	name := demoNames[m.nameSeq%len(demoNames)]
	if round := m.nameSeq / len(demoNames); round > 0 {
		name = fmt.Sprintf("%s-%d", name, round+1)
	}
	m.nameSeq++
	return name
}

func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != stateDefault || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.engine.ScrollBy(-m.engine.ScrollStep())
	case tea.MouseButtonWheelDown:
		m.engine.ScrollBy(m.engine.ScrollStep())
	case tea.MouseButtonLeft:
		// The stage starts after the roster and below the header row.
		x, y := msg.X-m.rosterWidth, msg.Y-1
		if id, ok := m.strip.HitTest(x, y); ok {
			log.InputTrace("click at %d,%d -> %s", x, y, id)
			m.engine.ClickOnParticipant(id)
		}
	}
	return m, nil
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	m.saveState()
	return m, tea.Quit
}

func (m *home) saveState() {
	st := &config.State{
		Mode:             m.engine.Mode().String(),
		ChatOpen:         m.engine.ChatOpen(),
		FilmstripVisible: m.engine.FilmstripVisible(),
	}
	if err := config.SaveState(st); err != nil {
		log.ErrorLog.Printf("failed to save state: %v", err)
	}
}

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	if m.state != stateDefault {
		return nil
	}
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (mod tea.Model, cmd tea.Cmd) {
	highlightCmd := m.handleMenuHighlighting(msg)

	switch m.state {
	case stateHelp:
		if m.textOverlay.HandleKeyPress(msg) {
			m.textOverlay = nil
			m.state = stateDefault
		}
		return m, nil
	case stateMode:
		if m.modeOverlay.HandleKeyPress(msg) {
			if m.modeOverlay.Chosen() {
				m.engine.SetMode(m.modeOverlay.Selected)
			}
			m.modeOverlay = nil
			m.state = stateDefault
		}
		return m, nil
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}
	log.InputTrace("key %q", msg.String())

	model, actionCmd := m.handleAction(name, msg)
	return model, tea.Batch(highlightCmd, actionCmd)
}

func (m *home) handleAction(name keys.KeyName, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected, hasSelection := m.list.Selected()

	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyUp:
		m.list.Up()
	case keys.KeyDown:
		m.list.Down()
	case keys.KeyScrollBack:
		m.engine.ScrollBy(-m.engine.ScrollStep())
	case keys.KeyScrollForward:
		m.engine.ScrollBy(m.engine.ScrollStep())
	case keys.KeyModeNext:
		m.engine.SetMode(m.engine.Mode().Next())
	case keys.KeyModeSelect:
		m.modeOverlay = overlay.NewModeSelectorOverlay(m.engine.Mode())
		m.state = stateMode
		m.menu.SetState(ui.StateOverlay)
	case keys.KeyChat:
		m.engine.SetChatOpen(!m.engine.ChatOpen())
		m.layoutComponents()
	case keys.KeyFilmstrip:
		m.engine.SetFilmstripVisible(!m.engine.FilmstripVisible())
	case keys.KeyAdd:
		p := m.directory.Add(m.nextName())
		log.InfoLog.Printf("%s joined as %s", p.Name, p.ID)
	case keys.KeyRemove:
		if !hasSelection {
			return m, nil
		}
		if _, ok := m.directory.Remove(selected.Participant.ID); ok {
			log.InfoLog.Printf("%s left", selected.Participant.Name)
		}
	case keys.KeyPromote:
		if hasSelection {
			m.directory.Promote(selected.Participant.ID)
		}
	case keys.KeyPin:
		if hasSelection {
			m.engine.ClickOnParticipant(selected.Participant.ID)
		}
	case keys.KeyPinOrdinal:
		if len(msg.Runes) == 1 {
			m.engine.ClickOnVideo(int(msg.Runes[0] - '1'))
		}
	case keys.KeyVolumeUp, keys.KeyVolumeDown:
		if !hasSelection {
			return m, nil
		}
		id := selected.Participant.ID
		v, ok := m.engine.Volume(id)
		if !ok {
			v = 1
		}
		if name == keys.KeyVolumeUp {
			v += volumeStep
		} else {
			v -= volumeStep
		}
		m.engine.SetVolume(id, v)
	case keys.KeyCopy:
		return m, m.copyLayout()
	case keys.KeyHelp:
		m.textOverlay = overlay.NewTextOverlay("Keys", m.help.FullHelpView(keys.KeyMap{}.FullHelp()))
		m.textOverlay.SetWidth(min(max(m.width*6/10, 40), max(m.width-4, 20)))
		m.state = stateHelp
		m.menu.SetState(ui.StateOverlay)
	}
	return m, nil
}

// copyLayout puts the active mode's dimension record on the clipboard as JSON.
func (m *home) copyLayout() tea.Cmd {
	d := m.engine.Dimensions()
	if d == nil {
		return m.handleError(fmt.Errorf("no layout computed yet"))
	}
	data, err := json.Marshal(d)
	if err != nil {
		return m.handleError(fmt.Errorf("failed to encode layout: %w", err))
	}
	if err := m.copyToClipboard(string(data)); err != nil {
		return m.handleError(fmt.Errorf("failed to copy layout: %w", err))
	}
	return m.handleNotice("copied " + m.engine.Mode().String() + " layout")
}

func (m *home) snapshot() *inspect.Snapshot {
	var remote, local layout.Size
	switch d := m.engine.Dimensions().(type) {
	case layout.TileDimensions:
		remote, local = d.ThumbnailSize, d.ThumbnailSize
	case layout.StripDimensions:
		remote, local = d.Remote, d.Local
	}

	root := inspect.NewNode("App").WithBounds(0, 0, m.width, m.height)
	// Both panes sit below the header row; the stage starts after the roster.
	root.AddChild(m.list.InspectNode().Offset(0, 1)).
		AddChild(m.strip.InspectNodeWithPixels(remote, local).Offset(m.rosterWidth, 1))

	return inspect.NewSnapshot().
		WithTerminal(m.width, m.height, m.appConfig.CellWidth, m.appConfig.CellHeight).
		WithAppState(inspect.AppStateInfo{
			State:            m.state.String(),
			HasOverlay:       m.state != stateDefault,
			ParticipantCount: m.directory.Len(),
			SelectedIndex:    m.list.SelectedIndex(),
			DroppedEvents:    m.engine.DroppedEvents(),
			ErrorMessage:     m.errBox.Message(),
		}).
		WithEngine(m.engine.Snapshot()).
		WithComponents(root)
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

// hideErrMsg implements tea.Msg and clears the error text from the screen.
type hideErrMsg struct{}

// configReloadedMsg carries a config that changed on disk.
type configReloadedMsg struct {
	cfg *config.Config
}

// handleError handles all errors which get bubbled up to the app. sets the error message. We return a callback tea.Cmd that returns a hideErrMsg message
// which clears the error message after 3 seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.errBox.SetError(err)
	return m.hideErrLater()
}

func (m *home) handleNotice(msg string) tea.Cmd {
	m.errBox.SetNotice(msg)
	return m.hideErrLater()
}

func (m *home) hideErrLater() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(3 * time.Second):
		}
		return hideErrMsg{}
	}
}

func (m *home) header() string {
	title := ui.HeaderStyle.Render("callstrip")
	v := m.engine.Viewport()
	info := fmt.Sprintf(" %s · %dx%dpx · showing %s of %d",
		m.engine.Mode(), v.Width, v.Height, m.engine.Window(), m.directory.Len())
	if m.engine.ChatOpen() {
		info += " · chat"
	}
	line := title + ui.TextStyles.Muted.Render(info)
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(line)
}

func (m *home) View() string {
	start := time.Now()
	defer func() { log.GetProfiler().RecordFrame(time.Since(start)) }()

	stage := m.stripView
	if m.chatCells > 0 {
		chat := ui.ChatPanelStyle(m.chatCells, max(m.height-3, 0)).Render("chat")
		stage = lipgloss.JoinHorizontal(lipgloss.Top, stage, chat)
	}
	body := stage
	if m.rosterWidth > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.list.String(), stage)
	}

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		body,
		m.menu.String(),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.errBox.String()),
	)

	switch m.state {
	case stateHelp:
		if m.textOverlay == nil {
			log.ErrorLog.Printf("text overlay is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.textOverlay.Render(), mainView, true)
	case stateMode:
		if m.modeOverlay == nil {
			log.ErrorLog.Printf("mode overlay is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.modeOverlay.Render(), mainView, true)
	}
	return mainView
}
