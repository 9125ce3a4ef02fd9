package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/lyriek/internal/formatter"
	"github.com/desertthunder/lyriek/internal/models"
	"github.com/desertthunder/lyriek/internal/shared"
	"github.com/desertthunder/lyriek/internal/tasks"
)

const (
	headerHeight = 7
	footerHeight = 2

	loadingText = "Loading..."
	waitingText = "Waiting for a player..."
)

// Model represents the TUI application state.
type Model struct {
	stop     context.CancelFunc
	updates  <-chan tasks.StatusUpdate
	song     *models.Song
	loading  bool
	failure  string
	notice   string
	done     bool
	width    int
	height   int
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	open     func(string) error
}

// NewModel creates a TUI model that renders updates from the engine channel.
//
// stop is called when the user quits so the engine can shut down.
func NewModel(updates <-chan tasks.StatusUpdate, stop context.CancelFunc) *Model {
	vp := viewport.New(80, 20)
	return &Model{
		stop:     stop,
		updates:  updates,
		viewport: vp,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.warn)),
		help:     help.New(),
		keys:     newKeyMap(),
		open:     shared.OpenURL,
	}
}

// Init starts listening to the engine.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForStatus(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 10)
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.refreshLyrics()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgStatus:
			m.apply(msg.data.(tasks.StatusUpdate))
			return m, m.waitForStatus()
		case MsgStreamClosed:
			m.done = true
			return m, tea.Quit
		case MsgOpened:
			if err, _ := msg.data.(error); err != nil {
				m.notice = err.Error()
			} else {
				m.notice = ""
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// apply folds one engine status into the model.
func (m *Model) apply(u tasks.StatusUpdate) {
	switch u.Kind {
	case tasks.SongUpdated:
		song := u.Song
		m.song = &song
		m.failure = ""
		m.notice = ""
		m.refreshLyrics()
		m.viewport.GotoTop()
	case tasks.Failure:
		m.failure = u.Message
	case tasks.LoadingStarted:
		m.loading = true
	case tasks.LoadingStopped:
		m.loading = false
	case tasks.Shutdown:
		m.done = true
		m.loading = false
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		if m.stop != nil {
			m.stop()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.open):
		return m, m.openSource()
	case key.Matches(msg, m.keys.top):
		m.viewport.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		if m.updates == nil {
			return streamClosedMsg()
		}
		update, ok := <-m.updates
		if !ok {
			return streamClosedMsg()
		}
		return statusMsg(update)
	}
}

func (m *Model) openSource() tea.Cmd {
	if m.song == nil || m.song.SourceURL == "" {
		m.notice = "no source URL for this song"
		return nil
	}
	target := m.song.SourceURL
	return func() tea.Msg {
		return openedMsg(m.open(target))
	}
}

func (m *Model) refreshLyrics() {
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(m.lyricsText()))
}

func (m *Model) lyricsText() string {
	if m.song == nil {
		return ""
	}
	return formatter.LyricsText(m.song.Lyrics)
}

// View renders the now-playing header, lyrics and help.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	if m.song != nil {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return styles.frame.Render(b.String())
}

func (m *Model) renderHeader() string {
	if m.song == nil {
		return styles.title.Render("lyriek") + "\n" + styles.help.Render(waitingText)
	}

	lines := []string{
		styles.title.Render(m.song.Title),
		styles.artists.Render(m.song.Artists),
	}
	var details []string
	if m.song.Album != "" {
		details = append(details, m.song.Album)
	}
	if m.song.Length > 0 {
		details = append(details, formatter.Duration(m.song.Length))
	}
	if len(details) > 0 {
		lines = append(lines, styles.help.Render(strings.Join(details, " • ")))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	switch {
	case m.done:
		return styles.help.Render("stopped")
	case m.loading:
		return fmt.Sprintf("%s %s", m.spinner.View(), styles.warn.Render(loadingText))
	case m.failure != "":
		return styles.err.Render(m.failure)
	case m.notice != "":
		return styles.warn.Render(m.notice)
	default:
		return ""
	}
}
