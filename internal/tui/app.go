// Package tui renders the mod registry and its load order as an interactive
// terminal view. The model is a pure projection of the session: every
// mutation goes through a Session method and the rows are rebuilt from the
// next snapshot, never edited in place.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"twmm/internal/core"
	"twmm/internal/domain"
)

// row is one rendered line: a category header or a mod with its checkbox and,
// when enabled and orderable, its position in the load order.
type row struct {
	id        string // empty for header rows
	name      string
	creator   string
	movie     bool
	enabled   bool
	canToggle bool
	pos       int // 1-based position in the orderable list, 0 when unordered
}

func (r row) header() bool { return r.id == "" }

// reloadedMsg carries a fresh snapshot after a mutation round-trip.
type reloadedMsg struct {
	rows      []row
	ordered   int // number of mods currently in the orderable list
	automatic bool
	meta      <-chan core.MetadataResult
	status    string
}

// metadataMsg is the delayed result of a background workshop refresh.
type metadataMsg struct {
	result core.MetadataResult
	ok     bool
}

type errMsg struct{ err error }

// Model is the load order view.
type Model struct {
	session *core.Session
	keys    keyMap
	help    help.Model

	rows      []row
	ordered   int
	automatic bool
	cursor    int
	status    string
	err       error
	width     int
}

// NewModel builds the view from the session's current state.
func NewModel(session *core.Session) Model {
	m := Model{
		session: session,
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   80,
	}
	snap := m.snapshot("")
	m.rows, m.ordered, m.automatic = snap.rows, snap.ordered, snap.automatic
	m.cursor = m.nextSelectable(0, 1)
	return m
}

// Selected returns the cursor index.
func (m Model) Selected() int { return m.cursor }

// SelectedID returns the mod id under the cursor, or "" on a header row.
func (m Model) SelectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].id
}

// RowCount returns the number of rendered rows, headers included.
func (m Model) RowCount() int { return len(m.rows) }

// Automatic reports the ordering mode the view last observed.
func (m Model) Automatic() bool { return m.automatic }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case reloadedMsg:
		m.rows, m.ordered, m.automatic = msg.rows, msg.ordered, msg.automatic
		m.err = nil
		if msg.status != "" {
			m.status = msg.status
		}
		m.clampCursor()
		if msg.meta != nil {
			return m, awaitMetadata(msg.meta)
		}
		return m, nil

	case metadataMsg:
		if !msg.ok || msg.result.Err != nil || msg.result.Updated == 0 {
			return m, nil // offline is fine, cached names stay
		}
		status := fmt.Sprintf("workshop metadata refreshed (%d)", msg.result.Updated)
		return m, func() tea.Msg { return m.snapshot(status) }

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.cursor = m.nextSelectable(m.cursor-1, -1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.cursor = m.nextSelectable(m.cursor+1, 1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = m.nextSelectable(0, 1)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = m.nextSelectable(len(m.rows)-1, -1)
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		r := m.selectedRow()
		if r == nil || !r.canToggle {
			return m, nil
		}
		id, enabled := r.id, r.enabled
		return m, m.mutate(func(s *core.Session) error {
			return s.SetModEnabled(id, !enabled)
		}, "")

	case key.Matches(msg, m.keys.MoveUp):
		r := m.selectedRow()
		if r == nil || r.movie || r.pos <= 1 {
			return m, nil
		}
		from, to := r.pos-1, r.pos-2
		return m, m.mutate(func(s *core.Session) error {
			s.MoveMod(from, to)
			return nil
		}, "")

	case key.Matches(msg, m.keys.MoveDown):
		r := m.selectedRow()
		if r == nil || r.movie || r.pos == 0 || r.pos >= m.ordered {
			return m, nil
		}
		from, to := r.pos-1, r.pos
		return m, m.mutate(func(s *core.Session) error {
			s.MoveMod(from, to)
			return nil
		}, "")

	case key.Matches(msg, m.keys.Automatic):
		next := !m.automatic
		return m, m.mutate(func(s *core.Session) error {
			s.SetAutomatic(next)
			return nil
		}, "")

	case key.Matches(msg, m.keys.Save):
		return m, func() tea.Msg {
			if err := m.session.SaveConfig(); err != nil {
				return errMsg{err}
			}
			if err := m.session.SaveOrder(); err != nil {
				return errMsg{err}
			}
			return m.snapshot("saved")
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, func() tea.Msg {
			meta, err := m.session.RefreshMods(context.Background(), core.RefreshOptions{})
			if err != nil {
				return errMsg{err}
			}
			if err := m.session.Resolve(); err != nil {
				return errMsg{err}
			}
			snap := m.snapshot("rescanned")
			snap.meta = meta
			return snap
		}
	}

	return m, nil
}

// mutate applies fn to the session, re-resolves, and delivers the fresh
// snapshot. The closure runs off the update loop so a slow resolve never
// freezes the view.
func (m Model) mutate(fn func(*core.Session) error, status string) tea.Cmd {
	return func() tea.Msg {
		if err := fn(m.session); err != nil {
			return errMsg{err}
		}
		if err := m.session.Resolve(); err != nil {
			return errMsg{err}
		}
		return m.snapshot(status)
	}
}

// snapshot projects the session state into view rows: every category in
// display order as a header followed by its member mods, each carrying its
// current load order position.
func (m Model) snapshot(status string) reloadedMsg {
	order := m.session.Order()
	position := make(map[string]int, len(order.Mods))
	for i, id := range order.Mods {
		position[id] = i + 1
	}

	var rows []row
	for _, group := range m.session.CategorizedMods() {
		if len(group.Mods) == 0 {
			continue
		}
		rows = append(rows, row{name: group.Name})
		for _, mod := range group.Mods {
			rows = append(rows, row{
				id:        mod.ID,
				name:      mod.Name,
				creator:   mod.Creator,
				movie:     mod.PackType == domain.PackMovie,
				enabled:   mod.Enabled(),
				canToggle: mod.CanToggle(),
				pos:       position[mod.ID],
			})
		}
	}

	return reloadedMsg{
		rows:      rows,
		ordered:   len(order.Mods),
		automatic: order.Automatic,
		status:    status,
	}
}

func awaitMetadata(ch <-chan core.MetadataResult) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-ch
		return metadataMsg{result: result, ok: ok}
	}
}

func (m Model) selectedRow() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].header() {
		return nil
	}
	return &m.rows[m.cursor]
}

// nextSelectable walks from start in the given direction, wrapping, until it
// finds a mod row. Header rows are never selectable.
func (m Model) nextSelectable(start, dir int) int {
	if len(m.rows) == 0 {
		return 0
	}
	i := start
	for j, n := 0, len(m.rows); j < n; j++ {
		if i < 0 {
			i = len(m.rows) - 1
		}
		if i >= len(m.rows) {
			i = 0
		}
		if !m.rows[i].header() {
			return i
		}
		i += dir
	}
	return 0
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(m.rows) > 0 && m.rows[m.cursor].header() {
		m.cursor = m.nextSelectable(m.cursor, 1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69"))

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	selectedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	disabledStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("241"))

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("twmm - "+m.session.Game().Name) + "\n")

	mode := "manual"
	if m.automatic {
		mode = "automatic"
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("order: %s (%d mods)", mode, m.ordered)) + "\n\n")

	if len(m.rows) == 0 {
		b.WriteString(itemStyle.Render("No mods known.") + "\n")
		b.WriteString(infoStyle.Render("Press r to rescan the install locations.") + "\n")
	}

	for i, r := range m.rows {
		if r.header() {
			b.WriteString(headerStyle.Render(r.name) + "\n")
			continue
		}

		cursor := "  "
		style := itemStyle
		if i == m.cursor {
			cursor = "▸ "
			style = selectedStyle
		} else if !r.enabled {
			style = disabledStyle
		}

		box := "[ ]"
		switch {
		case !r.canToggle:
			box = "[▪]" // loaded unconditionally by the engine
		case r.enabled:
			box = "[✓]"
		}

		slot := "   "
		if r.pos > 0 {
			slot = fmt.Sprintf("%2d.", r.pos)
		} else if r.movie && r.enabled {
			slot = " M."
		}

		line := fmt.Sprintf("%s%s %s %s", cursor, box, slot, r.name)
		if i == m.cursor && r.creator != "" {
			line += infoStyle.Render("  by " + r.creator)
		}
		b.WriteString(style.Render(line) + "\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	} else if m.status != "" {
		b.WriteString(infoStyle.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// Run starts the interactive view and blocks until it exits.
func Run(session *core.Session) error {
	p := tea.NewProgram(NewModel(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
