package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoroute/internal/history"
)

func sampleEntries() []history.Entry {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []history.Entry{
		{ID: "3", Timestamp: base.Add(2 * time.Hour), Origin: "sao_paulo", Destination: "campinas",
			DistanceKm: 95, Transport: "trem", TransportName: "Trem/Metrô", TotalEmissionKg: 3.325},
		{ID: "2", Timestamp: base.Add(time.Hour), Origin: "sao_paulo", Destination: "rio_janeiro",
			DistanceKm: 430, Transport: "aviao", TransportName: "Avião", TotalEmissionKg: 52.89},
		{ID: "1", Timestamp: base, Origin: "curitiba", Destination: "florianopolis",
			DistanceKm: 300, Transport: "onibus", TransportName: "Ônibus", TotalEmissionKg: 22.5},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m HistoryModel, msg tea.Msg) (HistoryModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	hm, ok := updated.(HistoryModel)
	require.True(t, ok)
	return hm, cmd
}

func rowIDs(m HistoryModel) []string {
	var ids []string
	for _, e := range m.Rows() {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestNewHistoryModel(t *testing.T) {
	m := NewHistoryModel(sampleEntries(), history.Stats{Count: 3})
	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, []string{"3", "2", "1"}, rowIDs(m))
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "CALCULATION HISTORY")
}

func TestHistoryModel_StateTransitions(t *testing.T) {
	m := NewHistoryModel(sampleEntries(), history.Stats{Count: 3})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateDetail, m.State())
	assert.Contains(t, m.View(), "HISTORY ENTRY")
	assert.Contains(t, m.View(), "campinas")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, ViewStateList, m.State())

	m, cmd := update(t, m, keyRunes("q"))
	assert.Equal(t, ViewStateQuitting, m.State())
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestHistoryModel_CycleSort(t *testing.T) {
	m := NewHistoryModel(sampleEntries(), history.Stats{Count: 3})

	m, _ = update(t, m, keyRunes("s"))
	assert.Equal(t, SortByEmission, m.sortBy)
	assert.Equal(t, []string{"2", "1", "3"}, rowIDs(m))

	m, _ = update(t, m, keyRunes("s"))
	assert.Equal(t, SortByDistance, m.sortBy)
	assert.Equal(t, []string{"2", "1", "3"}, rowIDs(m))

	m, _ = update(t, m, keyRunes("s"))
	assert.Equal(t, SortByNewest, m.sortBy)
	assert.Equal(t, []string{"3", "2", "1"}, rowIDs(m), "stored order restored")
}

func TestHistoryModel_Filter(t *testing.T) {
	m := NewHistoryModel(sampleEntries(), history.Stats{Count: 3})

	m, cmd := update(t, m, keyRunes("/"))
	assert.True(t, m.showFilter)
	assert.NotNil(t, cmd)

	for _, r := range "SAO" {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.showFilter)
	assert.Equal(t, []string{"3", "2"}, rowIDs(m))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, []string{"3", "2", "1"}, rowIDs(m), "esc clears the filter")
}

func TestHistoryModel_FilterByTransportName(t *testing.T) {
	m := NewHistoryModel(sampleEntries(), history.Stats{Count: 3})
	m.applyFilter("ônibus")
	assert.Equal(t, []string{"1"}, rowIDs(m))

	m.applyFilter("nothing")
	assert.Empty(t, m.Rows())
	assert.Contains(t, m.View(), "No entries match.")
}

func TestHistoryModel_WindowResize(t *testing.T) {
	m := NewHistoryModel(sampleEntries(), history.Stats{Count: 3})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestHistorySortField_String(t *testing.T) {
	assert.Equal(t, "newest", SortByNewest.String())
	assert.Equal(t, "emission", SortByEmission.String())
	assert.Equal(t, "distance", SortByDistance.String())
	assert.Equal(t, "unknown", HistorySortField(9).String())
}
