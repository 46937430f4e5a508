package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/brewery-dashboard/internal/dashboard"
	"github.com/couchcryptid/brewery-dashboard/internal/domain"
)

type fakeDashboard struct {
	records []domain.Brewery
	loaded  bool
	loadErr error
	loads   int
}

func (f *fakeDashboard) Load(_ context.Context) error {
	f.loads++
	f.loaded = true
	return f.loadErr
}

func (f *fakeDashboard) View(q domain.Query) dashboard.View {
	v := dashboard.View{Loading: !f.loaded, Query: q}
	if f.loadErr != nil {
		v.Error = f.loadErr.Error()
		v.Stats = domain.ComputeStats(nil)
		return v
	}
	records := f.records
	if !f.loaded {
		records = nil
	}
	agg := domain.Aggregate(records)
	v.Stats = agg.Stats
	v.TypeDistribution = agg.TypeDistribution
	v.StateDistribution = agg.StateDistribution
	v.Records = domain.Filter(records, q)
	v.TotalVisible = len(v.Records)
	return v
}

func sampleDashboard() *fakeDashboard {
	return &fakeDashboard{records: []domain.Brewery{
		{ID: "1", Name: "Odell", BreweryType: "regional", City: "Fort Collins", State: "Colorado"},
		{ID: "2", Name: "Ballast Point", BreweryType: "large", City: "San Diego", State: "California"},
		{ID: "3", Name: "Odd13", BreweryType: "regional", City: "Lafayette", State: "Colorado"},
	}}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func loaded(t *testing.T, dash *fakeDashboard) Model {
	t.Helper()
	m := New(context.Background(), dash)
	cmd := loadCmd(context.Background(), dash)
	return update(t, m, cmd())
}

func TestModel_InitialLoading(t *testing.T) {
	m := New(context.Background(), sampleDashboard())
	assert.True(t, m.view.Loading)
	assert.Contains(t, m.View(), "Loading breweries")
	assert.NotNil(t, m.Init())
}

func TestModel_LoadedShowsStatsAndList(t *testing.T) {
	m := loaded(t, sampleDashboard())

	out := m.View()
	assert.Contains(t, out, "Total Breweries")
	assert.Contains(t, out, "regional")
	assert.Contains(t, out, "Ballast Point")
	assert.Contains(t, out, "By Type")
	assert.NotContains(t, out, "Loading breweries")
}

func TestModel_LoadErrorRenderedDistinctly(t *testing.T) {
	dash := sampleDashboard()
	dash.loadErr = errors.New("transport failure")
	m := loaded(t, dash)

	assert.Contains(t, m.View(), "Could not load breweries: transport failure")
}

func TestModel_TypeCycling(t *testing.T) {
	m := loaded(t, sampleDashboard())
	require.Empty(t, m.Query().Type)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.TypeMicro, m.Query().Type)
	assert.Empty(t, m.view.Records)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, domain.TypeClosed, m.Query().Type, "shift+tab wraps to the last option")

	for range 6 {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	}
	assert.Equal(t, domain.TypeRegional, m.Query().Type)
	assert.Len(t, m.view.Records, 2)
}

func TestModel_SearchFiltersList(t *testing.T) {
	m := loaded(t, sampleDashboard())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ODD")})
	assert.Equal(t, "ODD", m.Query().Search)
	require.Len(t, m.view.Records, 1)
	assert.Equal(t, "Odd13", m.view.Records[0].Name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Query().IsZero())
	assert.Len(t, m.view.Records, 3)
}

func TestModel_CursorBounds(t *testing.T) {
	m := loaded(t, sampleDashboard())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	for range 5 {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 2, m.cursor)
}

func TestModel_RefreshStartsLoad(t *testing.T) {
	dash := sampleDashboard()
	m := loaded(t, dash)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).view.Loading)

	_ = cmd()
	assert.Equal(t, 2, dash.loads)
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t, sampleDashboard())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderBars(t *testing.T) {
	assert.Empty(t, renderBars(nil, 10))

	out := renderBars(domain.Distribution{{Label: "micro", Count: 10}, {Label: "nano", Count: 1}}, 10)
	assert.Contains(t, out, "micro")
	assert.Contains(t, out, "nano")

	assert.Equal(t, 10, barLength(10, 10, 10))
	assert.Equal(t, 1, barLength(1, 100, 10))
	assert.Equal(t, 0, barLength(0, 100, 10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Ballast P…", truncate("Ballast Point", 10))
}
