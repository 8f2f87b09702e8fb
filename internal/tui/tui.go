// Package tui is a terminal browser over the syllabus: strands, topics,
// modules and the text view of the active module. Every move goes through
// the navigation controller and the session, so the browser shows exactly
// what a graphical host would.
package tui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/navigation"
	"github.com/vk/mathviz/internal/session"
	"github.com/vk/mathviz/internal/syllabus"
)

// item is one selectable row.
type item struct {
	key   string
	label string
}

// Model is the Bubble Tea model of the browser.
type Model struct {
	ctx     context.Context
	catalog *catalog.Catalog
	tree    *syllabus.Tree
	session *session.Session

	items  []item
	cursor int
	active *session.ActiveModule
	view   string
	status string
}

// New creates a browser positioned wherever navigation currently is.
func New(ctx context.Context, c *catalog.Catalog, tree *syllabus.Tree, s *session.Session) Model {
	m := Model{ctx: ctx, catalog: c, tree: tree, session: s, status: "Ready."}
	if active, err := s.Current(ctx); err != nil {
		m.status = err.Error()
	} else {
		m.show(active)
	}
	m.refresh()
	return m
}

func (m Model) nav() *navigation.Controller { return m.session.Navigation() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		m.descend()
	case "esc", "backspace":
		m.ascend()
	case "b":
		active, err := m.session.Back(m.ctx)
		switch {
		case err != nil:
			m.status = err.Error()
		case active == nil:
			m.status = "Nothing to go back to."
		default:
			m.show(active)
			m.status = "Back to " + active.Descriptor.Name + "."
		}
		m.refresh()
	case "h":
		m.session.Home(m.ctx)
		m.active, m.view = nil, ""
		m.cursor = 0
		m.status = "Home."
		m.refresh()
	case "r":
		if m.active != nil {
			m.session.ResetModule(m.ctx, m.active.Descriptor.ID)
			active, err := m.session.Current(m.ctx)
			if err != nil {
				m.status = err.Error()
			} else {
				m.show(active)
				m.status = "State reset."
			}
		}
	}
	return m, nil
}

// descend selects the row under the cursor.
func (m *Model) descend() {
	if m.active != nil || len(m.items) == 0 {
		return
	}
	selected := m.items[m.cursor]
	pos := m.nav().Position()

	switch {
	case pos.Strand == "":
		m.nav().NavigateToStrand(m.ctx, syllabus.Strand(selected.key))
	case pos.Topic == "":
		m.nav().NavigateToTopic(m.ctx, selected.key)
	default:
		active, err := m.session.Open(m.ctx, selected.key)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.show(active)
		m.status = ""
	}
	m.cursor = 0
	m.refresh()
}

// ascend moves one level up the hierarchy.
func (m *Model) ascend() {
	pos := m.nav().Position()
	switch {
	case m.active != nil:
		m.active, m.view = nil, ""
		m.nav().NavigateToTopic(m.ctx, pos.Topic)
	case pos.Topic != "":
		m.nav().NavigateToStrand(m.ctx, pos.Strand)
	case pos.Strand != "":
		m.session.Home(m.ctx)
	}
	m.cursor = 0
	m.refresh()
}

func (m *Model) show(active *session.ActiveModule) {
	m.active = active
	if active == nil {
		m.view = ""
		return
	}
	out, err := active.Render(m.ctx)
	if err != nil {
		m.view = "render failed: " + err.Error()
		return
	}
	m.view = fmt.Sprint(out)
}

// refresh rebuilds the rows for the current navigation level.
func (m *Model) refresh() {
	pos := m.nav().Position()
	m.items = nil

	switch {
	case m.active != nil:
	case pos.Strand == "":
		for _, s := range syllabus.Strands() {
			label := fmt.Sprintf("%s (%d)", m.tree.StrandLabel(s), len(m.catalog.GetByStrand(s)))
			m.items = append(m.items, item{key: string(s), label: label})
		}
	case pos.Topic == "":
		for _, topic := range strandTopics(m.catalog, m.tree, pos.Strand) {
			m.items = append(m.items, item{key: topic, label: m.tree.TopicLabel(topic)})
		}
	default:
		for _, d := range m.catalog.GetByTopic(pos.Topic) {
			if d.Strand() == pos.Strand {
				m.items = append(m.items, item{key: d.ID, label: d.Name})
			}
		}
	}

	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

// strandTopics lists the syllabus topics of a strand in declaration order,
// followed by topics that only registered modules mention.
func strandTopics(c *catalog.Catalog, tree *syllabus.Tree, strand syllabus.Strand) []string {
	var topics []string
	for _, t := range tree.Topics(strand) {
		topics = append(topics, t.Key)
	}
	var extra []string
	for _, d := range c.GetByStrand(strand) {
		if t := d.Topic(); !slices.Contains(topics, t) && !slices.Contains(extra, t) {
			extra = append(extra, t)
		}
	}
	slices.Sort(extra)
	return append(topics, extra...)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("mathviz")
	for _, crumb := range m.nav().Breadcrumbs() {
		b.WriteString(" > " + crumb.Label)
	}
	b.WriteString("\n\n")

	if m.active != nil {
		b.WriteString(m.view)
		b.WriteString("\n")
	} else if len(m.items) == 0 {
		b.WriteString("  (empty)\n")
	}
	for i, it := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(cursor + it.label + "\n")
	}

	b.WriteString("\nenter select, esc up, b back, h home, r reset, q quit\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	return b.String()
}

// Run starts the browser on the given terminal streams.
func Run(ctx context.Context, c *catalog.Catalog, tree *syllabus.Tree, s *session.Session, in io.Reader, out io.Writer) error {
	_, err := tea.NewProgram(New(ctx, c, tree, s), tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}
