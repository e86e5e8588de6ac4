package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quakeboy/qmd-search-obsidian/internal/config"
	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
	"github.com/quakeboy/qmd-search-obsidian/internal/eventbus"
	"github.com/quakeboy/qmd-search-obsidian/internal/qmd"
	"github.com/quakeboy/qmd-search-obsidian/internal/search"
	"github.com/quakeboy/qmd-search-obsidian/internal/vault"
)

// statusKind classifies what the status region is showing
type statusKind int

const (
	statusIdle statusKind = iota
	statusSearching
	statusEmpty
	statusResults
	statusError
	statusNotice
)

// Model represents the search modal state
type Model struct {
	session *search.Session
	runner  qmd.Runner
	vault   *vault.Vault
	cfg     *config.Config
	bus     eventbus.EventBus

	input   textinput.Model
	spinner spinner.Model
	keys    keyMap
	help    help.Model
	styles  *Styles

	width  int
	height int

	status     string
	statusKind statusKind

	initialQuery string
	program      *tea.Program
}

// NewModel creates a search modal for one mode. An initial query, when
// non-empty, is submitted as soon as the program starts.
func NewModel(mode domain.Mode, cfg *config.Config, runner qmd.Runner, v *vault.Vault, bus eventbus.EventBus, initialQuery string) *Model {
	ti := textinput.New()
	ti.Placeholder = "search your vault"
	ti.Prompt = "> "
	ti.Focus()
	ti.SetValue(initialQuery)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		session:      search.NewSession(mode, bus),
		runner:       runner,
		vault:        v,
		cfg:          cfg,
		bus:          bus,
		input:        ti,
		spinner:      sp,
		keys:         defaultKeyMap(),
		help:         help.New(),
		styles:       NewStyles(),
		statusKind:   statusIdle,
		initialQuery: initialQuery,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Session exposes the underlying session, mainly for tests
func (m *Model) Session() *search.Session {
	return m.session
}

// Init starts cursor blink and submits any initial query
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if strings.TrimSpace(m.initialQuery) != "" {
		if cmd := m.startSearch(m.initialQuery); cmd != nil {
			cmds = append(cmds, cmd, m.spinner.Tick)
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.session.State() != search.StateSearching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchDoneMsg:
		// Late output from a superseded invocation is dropped outright
		if !m.session.Deliver(msg.generation, msg.results) {
			return m, nil
		}
		if len(msg.results) == 0 {
			m.setStatus(statusEmpty, "No results")
		} else {
			m.setStatus(statusResults, fmt.Sprintf("%d results", len(msg.results)))
		}
		return m, nil

	case searchErrMsg:
		if !m.session.Fail(msg.generation, msg.message) {
			return m, nil
		}
		m.setStatus(statusError, msg.message)
		return m, nil

	case openDoneMsg:
		if msg.err != nil {
			if msg.bestEffort {
				m.setStatus(statusNotice, fmt.Sprintf("Could not resolve %q in vault", msg.path))
			} else {
				m.setStatus(statusError, msg.err.Error())
			}
			return m, nil
		}
		if msg.bestEffort {
			m.setStatus(statusNotice, fmt.Sprintf("Opened best-effort match %s", msg.path))
		} else {
			m.setStatus(statusResults, fmt.Sprintf("Opened %s", msg.path))
		}
		if m.bus != nil {
			m.bus.Publish(eventbus.NoteOpenedEvent{Path: msg.path, BestEffort: msg.bestEffort})
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Close):
		if m.session.SelectedIndex() >= 0 {
			m.session.ClearSelection()
			m.input.Focus()
			return m, nil
		}
		m.session.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.session.MoveSelection(-1)
		m.syncFocus()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.session.MoveSelection(1)
		m.syncFocus()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		// Confirm opens the selected result; with no selection the input
		// text is submitted as a fresh query instead.
		if res, ok := m.session.Selected(); ok {
			return m, m.openResult(res)
		}
		if cmd := m.startSearch(m.input.Value()); cmd != nil {
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
		return m, nil
	}

	// Any other key belongs to the query field; typing pulls focus back
	// from the result list
	if m.session.SelectedIndex() >= 0 && msg.Type == tea.KeyRunes {
		m.session.ClearSelection()
		m.input.Focus()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// syncFocus blurs the input while a result row is selected
func (m *Model) syncFocus() {
	if m.session.SelectedIndex() >= 0 {
		m.input.Blur()
	} else {
		m.input.Focus()
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// startSearch submits the query and returns the command that runs qmd.
// Whitespace-only queries are a no-op.
func (m *Model) startSearch(query string) tea.Cmd {
	ctx, generation, ok := m.session.Submit(query)
	if !ok {
		return nil
	}

	m.setStatus(statusSearching, "Searching…")

	req := qmd.Request{
		Executable: m.cfg.Executable,
		Mode:       m.session.Mode(),
		Query:      query,
		Collection: m.cfg.Collection,
		Limit:      m.cfg.Limit,
		ExtraPath:  m.cfg.ExtraPath,
		Debug:      m.cfg.Debug,
	}
	runner := m.runner
	debug := m.cfg.Debug

	return func() tea.Msg {
		res, err := runner.Run(ctx, req)
		if ctx.Err() != nil {
			// Cancelled: no callback fires for a superseded invocation
			return nil
		}
		if err != nil {
			return searchErrMsg{generation: generation, message: err.Error()}
		}

		results, perr := qmd.ParseResults(res.Stdout)
		if perr != nil {
			if debug {
				log.Printf("qmd raw output (%d bytes): %s", len(res.Stdout), res.Stdout)
			}
			return searchErrMsg{
				generation: generation,
				message:    "Failed to parse qmd output (enable debug logging for details)",
			}
		}
		return searchDoneMsg{generation: generation, results: results}
	}
}

// openResult resolves the result against a fresh vault snapshot and pages it
func (m *Model) openResult(res domain.SearchResult) tea.Cmd {
	collection := m.cfg.Collection
	v := m.vault

	return func() tea.Msg {
		notes, err := v.Scan(context.Background())
		if err != nil {
			return openDoneMsg{err: err}
		}

		cleaned := vault.CleanPath(res.File, collection)
		target := cleaned
		bestEffort := true
		if note := vault.Resolve(res.File, collection, notes); note != nil {
			target = note.Path
			bestEffort = false
		}

		content, err := v.Content(target)
		if err != nil {
			return openDoneMsg{path: target, bestEffort: bestEffort, err: err}
		}

		if err := m.pageContent(target, content); err != nil {
			return openDoneMsg{path: target, bestEffort: bestEffort, err: err}
		}
		return openDoneMsg{path: target, bestEffort: bestEffort}
	}
}

// View renders the modal
func (m *Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("qmd %s · %s", m.session.Mode(), m.cfg.Collection)
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	results := m.session.Results()
	if len(results) > 0 {
		b.WriteString("\n")
		for i, res := range results {
			b.WriteString(m.renderResult(i, res))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	content := b.String()
	if m.width > 0 {
		modal := m.styles.Modal.Width(min(m.width-4, 76)).Render(content)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return m.styles.Modal.Render(content)
}

func (m *Model) statusLine() string {
	switch m.statusKind {
	case statusSearching:
		return m.spinner.View() + m.styles.Status.Render(" Searching…")
	case statusError:
		return m.styles.StatusError.Render(m.status)
	case statusNotice:
		return m.styles.Notice.Render(m.status)
	case statusEmpty, statusResults:
		return m.styles.Status.Render(m.status)
	default:
		return m.styles.Status.Render("Type a query and press enter")
	}
}

// renderResult renders one result row plus its snippet line
func (m *Model) renderResult(i int, res domain.SearchResult) string {
	cursor := "  "
	rowStyle := m.styles.Result
	if i == m.session.SelectedIndex() {
		cursor = "▸ "
		rowStyle = m.styles.Selected
	}

	score := m.styles.Score.Render(fmt.Sprintf("%3d%%", res.ScorePercent()))
	row := fmt.Sprintf("%s%s  %s", cursor, score, rowStyle.Render(res.DisplayTitle()))

	if excerpt := firstLine(res.Excerpt()); excerpt != "" {
		row += "\n       " + m.styles.Snippet.Render(truncate(excerpt, 64))
	}
	return row
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
