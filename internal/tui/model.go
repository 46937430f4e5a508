package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/couchcryptid/brewery-dashboard/internal/dashboard"
	"github.com/couchcryptid/brewery-dashboard/internal/domain"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	// rows taken by everything except the list
	chromeHeight = 16
)

// Dashboard is the service surface the terminal UI drives.
type Dashboard interface {
	Load(ctx context.Context) error
	View(q domain.Query) dashboard.View
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx  context.Context
	dash Dashboard
	keys KeyMap

	search  textinput.Model
	options []domain.FilterOption
	typeIdx int

	view   dashboard.View
	cursor int
	offset int

	width  int
	height int
}

// New creates the root model. ctx bounds every load the model starts.
func New(ctx context.Context, dash Dashboard) Model {
	ti := textinput.New()
	ti.Placeholder = "Search breweries by name"
	ti.Prompt = "Search: "
	ti.CharLimit = 100
	ti.Focus()

	m := Model{
		ctx:     ctx,
		dash:    dash,
		keys:    DefaultKeyMap(),
		search:  ti,
		options: domain.FilterOptions(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.refreshView()
	return m
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadCmd(m.ctx, m.dash))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.refreshView()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextType):
			m.typeIdx = (m.typeIdx + 1) % len(m.options)
			m.refreshView()
			return m, nil
		case key.Matches(msg, m.keys.PrevType):
			m.typeIdx = (m.typeIdx - 1 + len(m.options)) % len(m.options)
			m.refreshView()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.search.SetValue("")
			m.typeIdx = 0
			m.refreshView()
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.view.Loading = true
			return m, loadCmd(m.ctx, m.dash)
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refreshView()
	}
	return m, cmd
}

// Query returns the current filter inputs.
func (m Model) Query() domain.Query {
	return domain.Query{Search: m.search.Value(), Type: m.options[m.typeIdx].Value}
}

func (m *Model) refreshView() {
	m.view = m.dash.View(m.Query())
	m.cursor = 0
	m.offset = 0
}

func (m *Model) moveCursor(delta int) {
	n := len(m.view.Records)
	if n == 0 {
		return
	}
	m.cursor = max(0, min(n-1, m.cursor+delta))

	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m Model) listHeight() int {
	return max(3, m.height-chromeHeight)
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Brewery Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.renderCards())
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderTypeSelector())
	b.WriteString("\n\n")

	switch {
	case m.view.Loading:
		b.WriteString(MutedStyle.Render("Loading breweries..."))
	case m.view.Error != "":
		b.WriteString(ErrorStyle.Render("Could not load breweries: " + m.view.Error))
	default:
		list := m.renderList()
		chart := renderBars(m.view.TypeDistribution, 24)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", chart))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderCards() string {
	s := m.view.Stats
	card := func(label, value string) string {
		return CardStyle.Render(MutedStyle.Render(label) + "\n" + CardValueStyle.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Breweries", fmt.Sprint(s.Total)),
		card("Most Common Type", s.MostCommonType),
		card("States", fmt.Sprint(s.UniqueStateCount)),
	)
}

func (m Model) renderTypeSelector() string {
	return LabelStyle.Render("Type: ") + m.options[m.typeIdx].Label +
		MutedStyle.Render(fmt.Sprintf("  (%d/%d)", m.typeIdx+1, len(m.options)))
}

func (m Model) renderList() string {
	records := m.view.Records
	if len(records) == 0 {
		return MutedStyle.Render("No breweries match.")
	}

	rowWidth := max(20, m.width-40)
	end := min(len(records), m.offset+m.listHeight())

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", MutedStyle.Render(fmt.Sprintf("%d of %d shown", len(records), m.view.Stats.Total)))
	for i := m.offset; i < end; i++ {
		r := records[i]
		line := truncate(fmt.Sprintf("%-28s %-10s %s, %s", r.Name, r.TypeLabel(), r.City, r.StateLabel()), rowWidth)
		if i == m.cursor {
			b.WriteString(SelectedRowStyle.Render(line))
		} else {
			b.WriteString(NormalRowStyle.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderFooter() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, LabelStyle.Render(h.Key)+" "+h.Desc)
	}
	return FooterStyle.Render(strings.Join(parts, "  "))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// Commands

func loadCmd(ctx context.Context, dash Dashboard) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{Err: dash.Load(ctx)}
	}
}

// Run starts the terminal dashboard and blocks until the user quits or ctx
// ends. In-flight loads are cancelled on exit.
func Run(ctx context.Context, dash Dashboard) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, dash), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
