package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/pgale/chime/internal/auth"
	"github.com/pgale/chime/internal/config"
	"github.com/pgale/chime/internal/core"
	chimeerrors "github.com/pgale/chime/internal/errors"
	"github.com/pgale/chime/internal/playback"
	"github.com/pgale/chime/internal/player"
	"github.com/pgale/chime/internal/store"
	"github.com/pgale/chime/internal/tui/components"
	"github.com/pgale/chime/internal/tui/styles"
	"github.com/pgale/chime/internal/youtube"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelQueue
	PanelHistory
)

const (
	searchDebounce = 300 * time.Millisecond
	seekStep       = 5 * time.Second
	volumeStep     = 0.05
	noticeTimeout  = 5 * time.Second
)

// Options carries the collaborators for a playback session.
type Options struct {
	Config  *config.Config
	Logger  *log.Logger
	Store   *store.Store
	Auth    *auth.Service
	YouTube *youtube.Client
	Seed    []core.Track
}

// Model is the main TUI model
type Model struct {
	engine  *playback.Orchestrator
	yt      *youtube.Client
	refresh time.Duration

	width        int
	height       int
	focusedPanel Panel

	// Snapshots of engine state, refreshed on tick
	state     core.PlaybackState
	queue     []core.Track
	history   []core.HistoryEntry
	liked     bool
	stateHash uint64

	// Components
	nowPlaying  *components.NowPlaying
	queueView   *components.Queue
	historyView *components.History

	// Overlays
	showHelp bool

	// Search state
	showSearch    bool
	searchInput   textinput.Model
	searchResults []core.SearchResult
	searchCursor  int
	searching     bool
	lastQuery     string

	// Transient status-bar notice
	notice       string
	noticeExpiry time.Time

	loginCh chan struct{}

	quitting bool
}

func newModel(engine *playback.Orchestrator, yt *youtube.Client, refresh time.Duration, loginCh chan struct{}) Model {
	ti := textinput.New()
	ti.Placeholder = "Search YouTube..."
	ti.CharLimit = 100
	ti.Width = 50

	return Model{
		engine:       engine,
		yt:           yt,
		refresh:      refresh,
		focusedPanel: PanelNowPlaying,
		nowPlaying:   components.NewNowPlaying(),
		queueView:    components.NewQueue(),
		historyView:  components.NewHistory(),
		searchInput:  ti,
		loginCh:      loginCh,
	}
}

// Messages
type tickMsg time.Time
type likedMsg bool
type loginPromptMsg struct{}
type noticeMsg string
type searchDebounceMsg struct{ query string }
type searchResultsMsg []core.SearchResult
type trackResolvedMsg struct {
	track     core.Track
	queueOnly bool
}
type resolveErrMsg error

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitLoginPrompt() tea.Cmd {
	ch := m.loginCh
	return func() tea.Msg {
		<-ch
		return loginPromptMsg{}
	}
}

func (m Model) fetchLiked(trackID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return likedMsg(m.engine.IsLiked(ctx, trackID))
	}
}

func (m Model) doSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if query == "" {
			return searchResultsMsg(nil)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return searchResultsMsg(m.yt.Search(ctx, query, 10))
	}
}

func (m Model) resolveResult(r core.SearchResult, queueOnly bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		track, err := m.yt.VideoDetails(ctx, r.VideoID)
		if err != nil {
			return resolveErrMsg(err)
		}
		return trackResolvedMsg{track: *track, queueOnly: queueOnly}
	}
}

func (m Model) toggleLikeCurrent() tea.Cmd {
	track := m.state.Track
	if track == nil {
		return nil
	}
	t := *track
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		liked, err := m.engine.ToggleLike(ctx, t)
		if err != nil {
			// The login prompt channel handles the unauthenticated case.
			if errors.Is(err, chimeerrors.ErrLoginRequired) {
				return nil
			}
			return noticeMsg("Like failed: " + err.Error())
		}
		return likedMsg(liked)
	}
}

func (m Model) setVisibility(hidden bool) tea.Cmd {
	return func() tea.Msg {
		m.engine.SetVisibility(context.Background(), hidden)
		return nil
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitLoginPrompt())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		return m, m.setVisibility(false)

	case tea.BlurMsg:
		return m, m.setVisibility(true)

	case tickMsg:
		if !m.noticeExpiry.IsZero() && time.Now().After(m.noticeExpiry) {
			m.notice = ""
			m.noticeExpiry = time.Time{}
		}

		m.state = m.engine.State()
		m.queue = m.engine.QueueTracks()
		m.history = m.engine.History()

		// Re-check liked membership only when the visible state actually
		// changed, to keep idle refreshes free of store queries.
		hash, err := hashstructure.Hash(m.state, hashstructure.FormatV2, nil)
		cmds := []tea.Cmd{m.tick()}
		if err == nil && hash != m.stateHash {
			m.stateHash = hash
			if m.state.HasTrack() {
				cmds = append(cmds, m.fetchLiked(m.state.Track.ID))
			} else {
				m.liked = false
			}
		}
		return m, tea.Batch(cmds...)

	case likedMsg:
		m.liked = bool(msg)
		return m, nil

	case loginPromptMsg:
		m.notice = "Sign in to like songs: quit and run 'chime auth login'"
		m.noticeExpiry = time.Now().Add(noticeTimeout)
		return m, m.waitLoginPrompt()

	case noticeMsg:
		m.notice = string(msg)
		m.noticeExpiry = time.Now().Add(noticeTimeout)
		return m, nil

	case searchDebounceMsg:
		if msg.query == m.searchInput.Value() && msg.query != m.lastQuery {
			m.lastQuery = msg.query
			m.searching = true
			return m, m.doSearch(msg.query)
		}

	case searchResultsMsg:
		m.searching = false
		m.searchResults = msg
		m.searchCursor = 0
		return m, nil

	case trackResolvedMsg:
		ctx := context.Background()
		m.engine.AddToQueue(msg.track)
		if msg.queueOnly {
			m.notice = "Queued " + msg.track.Title
			m.noticeExpiry = time.Now().Add(noticeTimeout)
		} else {
			m.engine.SetCurrentTrack(ctx, msg.track)
		}
		return m, nil

	case resolveErrMsg:
		m.notice = "Error: " + error(msg).Error()
		m.noticeExpiry = time.Now().Add(noticeTimeout)
		return m, nil
	}

	if m.showSearch {
		var inputCmd tea.Cmd
		m.searchInput, inputCmd = m.searchInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	if m.showSearch {
		return m.handleSearchKeyPress(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "/":
		m.showSearch = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.searchResults = nil
		m.searchCursor = 0
		m.lastQuery = ""
		return m, textinput.Blink

	case "tab":
		m.focusedPanel = (m.focusedPanel + 1) % 3
		return m, nil

	case "shift+tab":
		m.focusedPanel = (m.focusedPanel + 2) % 3
		return m, nil
	}

	// Playback controls
	switch msg.String() {
	case " ":
		m.engine.TogglePlay(ctx)
		return m, nil
	case "n":
		m.engine.PlayNext(ctx)
		return m, nil
	case "p":
		m.engine.PlayPrevious(ctx)
		return m, nil
	case "m":
		m.engine.ToggleMute(ctx)
		return m, nil
	case "+", "=":
		m.engine.SetVolume(ctx, m.state.Volume+volumeStep)
		return m, nil
	case "-":
		m.engine.SetVolume(ctx, m.state.Volume-volumeStep)
		return m, nil
	case "right":
		m.engine.Seek(ctx, m.state.Progress+seekStep)
		return m, nil
	case "left":
		m.engine.Seek(ctx, m.state.Progress-seekStep)
		return m, nil
	case "l":
		return m, m.toggleLikeCurrent()
	case "r":
		m.engine.SetRepeat(!m.engine.Repeat())
		return m, nil
	case "s":
		m.engine.SetShuffle(!m.engine.Shuffle())
		return m, nil
	}

	// Panel-specific keys
	if m.focusedPanel == PanelQueue {
		switch msg.String() {
		case "j", "down":
			m.queueView.SelectNext(len(m.queue))
		case "k", "up":
			m.queueView.SelectPrev()
		case "enter":
			if idx := m.queueView.Selected(); idx >= 0 && idx < len(m.queue) {
				m.engine.SetCurrentTrack(ctx, m.queue[idx])
			}
		case "d":
			if idx := m.queueView.Selected(); idx >= 0 && idx < len(m.queue) {
				m.engine.RemoveFromQueue(m.queue[idx].ID)
			}
		case "c":
			m.engine.ClearQueue()
			m.queueView.Reset()
		}
	}

	return m, nil
}

func (m Model) handleSearchKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "esc":
		m.showSearch = false
		m.searchInput.Blur()
		return m, nil

	case "enter":
		if len(m.searchResults) > 0 && m.searchCursor < len(m.searchResults) {
			result := m.searchResults[m.searchCursor]
			m.showSearch = false
			m.searchInput.Blur()
			return m, m.resolveResult(result, false)
		}
		return m, nil

	case "up", "ctrl+p":
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil

	case "ctrl+q":
		if len(m.searchResults) > 0 && m.searchCursor < len(m.searchResults) {
			result := m.searchResults[m.searchCursor]
			m.showSearch = false
			m.searchInput.Blur()
			return m, m.resolveResult(result, true)
		}
		return m, nil
	}

	var inputCmd tea.Cmd
	m.searchInput, inputCmd = m.searchInput.Update(msg)
	cmds = append(cmds, inputCmd)

	// Debounce search
	if m.searchInput.Value() != m.lastQuery {
		query := m.searchInput.Value()
		cmds = append(cmds, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{query: query}
		}))
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showSearch {
		return m.renderSearch()
	}

	// Left: Now Playing (top), Queue (bottom). Right: History.
	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	topHeight := m.height * 40 / 100
	bottomHeight := m.height - topHeight - 2

	currentID := ""
	if m.state.HasTrack() {
		currentID = m.state.Track.ID
	}

	nowPlaying := m.nowPlaying.Render(m.state, m.liked, m.engine.Muted(), m.engine.Repeat(), m.engine.Shuffle(), leftWidth-2, topHeight-2, m.focusedPanel == PanelNowPlaying)
	queueView := m.queueView.Render(m.queue, currentID, leftWidth-2, bottomHeight-2, m.focusedPanel == PanelQueue)
	historyView := m.historyView.Render(m.history, rightWidth-2, m.height-4, m.focusedPanel == PanelHistory)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, queueView)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, historyView)

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  /:search  space:play/pause  n:next  p:prev  m:mute  l:like  ←/→:seek  +/-:volume  tab:panel")

	if m.notice != "" {
		status = styles.Paused.Render(m.notice)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "Chime - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  /            Search
  Tab          Next panel
  Shift+Tab    Previous panel

  Playback
  ────────
  Space        Play/Pause
  n            Next track
  p            Previous track
  m            Mute/Unmute
  l            Like current track
  ←/→          Seek 5s
  +/=          Volume up
  -            Volume down
  r            Toggle repeat
  s            Toggle shuffle

  Queue Panel
  ───────────
  j/↓          Select next
  k/↑          Select previous
  Enter        Play selected
  d            Remove selected
  c            Clear queue

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

func (m Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(styles.Highlight.Render("Search"))
	b.WriteString("\n\n")

	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(styles.Subtitle.Render("Searching..."))
	} else if len(m.searchResults) == 0 && m.searchInput.Value() != "" && m.lastQuery != "" {
		b.WriteString(styles.Subtitle.Render("No results found"))
	} else {
		selectedStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		for i, result := range m.searchResults {
			line := result.Title
			if result.Channel != "" {
				line += " " + styles.Subtitle.Render(result.Channel)
			}

			if i == m.searchCursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("↑/↓:nav  Enter:play  Ctrl+q:queue  Esc:close"))

	content := lipgloss.NewStyle().
		Width(60).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Render(content))
}

// Run wires the embedded player to the playback engine and drives the
// session until the user quits.
func Run(opts Options) error {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	styles.SetTheme(cfg.TUI.Theme)

	bridge := player.NewMpvBridge(cfg.Playback.MpvBinary, cfg.Playback.IPCSocket, logger)
	adapter := player.NewAdapter(bridge, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := adapter.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}
	defer func() { _ = adapter.Close() }()

	loginCh := make(chan struct{}, 1)
	pollInterval := time.Duration(cfg.Playback.PollIntervalMS) * time.Millisecond

	engine := playback.New(adapter, pollInterval, logger,
		playback.WithLibrary(opts.Store),
		playback.WithAuth(opts.Auth),
		playback.WithLoginPrompt(func() {
			select {
			case loginCh <- struct{}{}:
			default:
			}
		}),
	)
	go engine.Run(ctx)
	defer engine.Close(context.Background())

	engine.SetVolume(ctx, cfg.Playback.Volume)
	for _, t := range opts.Seed {
		engine.AddToQueue(t)
	}
	if len(opts.Seed) > 0 {
		engine.SetCurrentTrack(ctx, opts.Seed[0])
	}

	refresh := time.Duration(cfg.TUI.RefreshInterval) * time.Millisecond
	if refresh <= 0 {
		refresh = time.Second
	}

	model := newModel(engine, opts.YouTube, refresh, loginCh)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	_, err := p.Run()
	return err
}
