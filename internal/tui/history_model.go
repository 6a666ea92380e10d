package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/history"
)

// HistorySortField is the ordering of the history table.
type HistorySortField int

const (
	// SortByNewest keeps the stored newest-first order.
	SortByNewest HistorySortField = iota
	// SortByEmission orders by total emission, highest first.
	SortByEmission
	// SortByDistance orders by one-way distance, longest first.
	SortByDistance

	numHistorySortFields = 3
)

// String returns the label shown in the status line.
func (f HistorySortField) String() string {
	switch f {
	case SortByNewest:
		return "newest"
	case SortByEmission:
		return "emission"
	case SortByDistance:
		return "distance"
	default:
		return "unknown"
	}
}

const (
	defaultTableHeight = 15
	chromeHeight       = 6
)

// HistoryModel is the bubbletea model of the history browser.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type HistoryModel struct {
	state   ViewState
	allRows []history.Entry // newest first, as stored
	rows    []history.Entry // filtered and sorted
	stats   history.Stats

	table      table.Model
	textInput  textinput.Model
	query      string
	showFilter bool
	sortBy     HistorySortField
	selected   int

	width  int
	height int
}

// NewHistoryModel builds a browser over entries.
func NewHistoryModel(entries []history.Entry, stats history.Stats) HistoryModel {
	ti := textinput.New()
	ti.Placeholder = "origin, destination or transport"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	m := HistoryModel{
		state:     ViewStateList,
		allRows:   entries,
		stats:     stats,
		textInput: ti,
		width:     defaultBoxWidth,
		height:    defaultTableHeight + chromeHeight,
	}
	m.applyFilter("")
	return m
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildTable()
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	default:
		return m, nil
	}
}

func (m HistoryModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.applyFilter(m.textInput.Value())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m HistoryModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		m.selected = m.table.Cursor()
		if m.selected >= 0 && m.selected < len(m.rows) {
			m.state = ViewStateDetail
		}
		return m, nil
	case keySlash:
		m.showFilter = true
		m.textInput.Focus()
		return m, textinput.Blink
	case keyS:
		m.sortBy = (m.sortBy + 1) % numHistorySortFields
		m.refreshTable()
		return m, nil
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.applyFilter("")
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m HistoryModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.state = ViewStateList
			m.table.Focus()
			return m, nil
		}
	}
	return m, nil
}

// applyFilter keeps the entries whose origin, destination or transport
// contains query, case-insensitively.
func (m *HistoryModel) applyFilter(query string) {
	m.query = strings.ToLower(strings.TrimSpace(query))
	m.refreshTable()
}

func entryMatches(e history.Entry, query string) bool {
	for _, field := range []string{e.Origin, e.Destination, e.Transport, e.TransportName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// refreshTable recomputes the visible rows from the filter and sort order.
func (m *HistoryModel) refreshTable() {
	m.rows = make([]history.Entry, 0, len(m.allRows))
	for _, e := range m.allRows {
		if m.query == "" || entryMatches(e, m.query) {
			m.rows = append(m.rows, e)
		}
	}

	switch m.sortBy {
	case SortByNewest:
		// stored order
	case SortByEmission:
		sort.SliceStable(m.rows, func(i, j int) bool {
			return m.rows[i].TotalEmissionKg > m.rows[j].TotalEmissionKg
		})
	case SortByDistance:
		sort.SliceStable(m.rows, func(i, j int) bool {
			return m.rows[i].DistanceKm > m.rows[j].DistanceKm
		})
	}
	m.rebuildTable()
}

func (m *HistoryModel) rebuildTable() {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Origin", Width: 16},
		{Title: "Destination", Width: 16},
		{Title: "Transport", Width: 16},
		{Title: "Distance", Width: 11},
		{Title: "CO₂", Width: 11},
		{Title: "Impact", Width: 10},
	}

	rows := make([]table.Row, len(m.rows))
	for i, e := range m.rows {
		name := e.TransportName
		if name == "" {
			name = e.Transport
		}
		rows[i] = table.Row{
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(e.Origin, 16),
			truncate(e.Destination, 16),
			truncate(name, 16),
			greenops.FormatDistance(e.DistanceKm),
			greenops.FormatEmission(e.TotalEmissionKg),
			string(greenops.ImpactLevelFor(e.TotalEmissionKg)),
		}
	}

	height := m.height - chromeHeight
	if height < 1 {
		height = 1
	}
	if height > len(rows)+1 {
		height = len(rows) + 1
	}

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(m.state == ViewStateList),
		table.WithHeight(height),
	)
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		if m.selected < 0 || m.selected >= len(m.rows) {
			return InfoStyle.Render("No entry selected.")
		}
		return RenderEntryDetail(m.rows[m.selected], m.width) + "\n" +
			SubtleStyle.Render("esc: back • q: quit")
	default:
		return m.listView()
	}
}

func (m HistoryModel) listView() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("CALCULATION HISTORY"))
	b.WriteString(LabelStyle.Render(fmt.Sprintf("  %d of %d entries • total %s • sort: %s",
		len(m.rows), m.stats.Count, greenops.FormatEmission(m.stats.TotalEmissionKg), m.sortBy)))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(InfoStyle.Render("No entries match."))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	if m.showFilter {
		b.WriteString(m.textInput.View())
	} else {
		b.WriteString(SubtleStyle.Render("enter: details • /: filter • s: sort • esc: clear filter • q: quit"))
	}
	return b.String()
}

// Rows returns the entries currently shown, in display order.
func (m HistoryModel) Rows() []history.Entry {
	out := make([]history.Entry, len(m.rows))
	copy(out, m.rows)
	return out
}

// State returns the current view state.
func (m HistoryModel) State() ViewState {
	return m.state
}

// RunHistoryBrowser runs the browser on the terminal until the user quits.
func RunHistoryBrowser(entries []history.Entry, stats history.Stats) error {
	p := tea.NewProgram(NewHistoryModel(entries, stats), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running history browser: %w", err)
	}
	return nil
}
