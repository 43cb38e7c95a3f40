package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-sieve/internal/discovery"
	"github.com/mattsolo1/grove-sieve/internal/sievetree"
)

var (
	matchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dirStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	prunedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// nodeWithLevel flattens the tree into a navigable, indentation-aware list.
type nodeWithLevel struct {
	node  *sievetree.FileNode
	level int
}

// model is the sieveview TUI's single bubbletea model: a read-only,
// expand/collapse tree view over one discovery.FindFiles result.
type model struct {
	root *sievetree.FileNode
	err  error
	stat *discovery.Stats

	expanded map[string]bool
	visible  []*nodeWithLevel
	cursor   int

	width, height int
}

func newModel(root *sievetree.FileNode, stat *discovery.Stats, err error) *model {
	m := &model{
		root:     root,
		stat:     stat,
		err:      err,
		expanded: make(map[string]bool),
	}
	if root != nil {
		m.expanded[root.Path] = true
		m.rebuild()
	}
	return m
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "enter", " ", "right", "l":
			m.toggleCursor()
		case "left", "h":
			m.collapseCursor()
		}
	}
	return m, nil
}

func (m *model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("error: %v\n", m.err))
	}
	if m.root == nil {
		return "no files matched\n"
	}

	var b strings.Builder
	for i, nl := range m.visible {
		b.WriteString(m.renderLine(i, nl))
		b.WriteString("\n")
	}

	for _, line := range m.footerLines() {
		b.WriteString(footerStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// footerLines reports the match/group counts plus, when there are any, a
// summary line listing the patterns that matched nothing — surfaced only
// when the engine was run with ErrorOnUnmatchedPattern false, since
// otherwise the first such pattern becomes an error before the TUI ever
// gets a result to render.
func (m *model) footerLines() []string {
	if m.stat == nil {
		return []string{"q quit  ↑/↓ move  enter toggle"}
	}

	lines := []string{
		fmt.Sprintf("%d files across %d groups  (q quit, ↑/↓ move, enter toggle)", len(m.stat.Files), m.stat.GroupCount),
	}
	if len(m.stat.UnmatchedPatterns) > 0 {
		lines = append(lines, fmt.Sprintf("unmatched: %s", strings.Join(m.stat.UnmatchedPatterns, ", ")))
	}
	return lines
}

func (m *model) renderLine(index int, nl *nodeWithLevel) string {
	indent := strings.Repeat("  ", nl.level)
	cursor := "  "
	if index == m.cursor {
		cursor = cursorStyle.Render("> ")
	}

	icon := "  "
	if nl.node.IsDir {
		if m.expanded[nl.node.Path] {
			icon = "▾ "
		} else {
			icon = "▸ "
		}
	}

	name := nl.node.Name
	style := dirStyle
	switch {
	case nl.node.Status == sievetree.StatusPruned:
		style = prunedStyle
	case nl.node.Status == sievetree.StatusMatched && !nl.node.IsDir:
		style = matchedStyle
	}

	return cursor + indent + icon + style.Render(name)
}

// toggleCursor expands a collapsed directory at the cursor, or collapses an
// expanded one.
func (m *model) toggleCursor() {
	if m.cursor >= len(m.visible) {
		return
	}
	node := m.visible[m.cursor].node
	if !node.IsDir {
		return
	}
	m.expanded[node.Path] = !m.expanded[node.Path]
	m.rebuild()
}

func (m *model) collapseCursor() {
	if m.cursor >= len(m.visible) {
		return
	}
	node := m.visible[m.cursor].node
	if node.IsDir && m.expanded[node.Path] {
		m.expanded[node.Path] = false
		m.rebuild()
	}
}

// rebuild recomputes the flattened, expansion-aware visible list.
func (m *model) rebuild() {
	m.visible = m.visible[:0]
	m.flatten(m.root, 0)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) flatten(node *sievetree.FileNode, level int) {
	if node == nil {
		return
	}
	m.visible = append(m.visible, &nodeWithLevel{node: node, level: level})
	if node.IsDir && !m.expanded[node.Path] {
		return
	}
	for _, child := range node.Children {
		m.flatten(child, level+1)
	}
}
