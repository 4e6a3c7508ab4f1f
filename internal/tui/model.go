package tui

import (
	"fmt"
	"time"

	"senales-radar/internal/domain"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Snapshotter is the read surface of the signal store.
type Snapshotter interface {
	Snapshot() ([]domain.TradingSignal, domain.Statistics)
}

const refreshInterval = 2 * time.Second

type refreshMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)
	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// Model renders the live signal feed and acceptance statistics.
type Model struct {
	store  Snapshotter
	table  table.Model
	stats  domain.Statistics
	height int
}

func NewModel(store Snapshotter) Model {
	columns := []table.Column{
		{Title: "Pair", Width: 8},
		{Title: "Dir", Width: 8},
		{Title: "Entry", Width: 7},
		{Title: "Exp", Width: 5},
		{Title: "Received", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m := Model{store: store, table: t}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	signals, stats := m.store.Snapshot()
	rows := make([]table.Row, 0, len(signals))
	for _, s := range signals {
		rows = append(rows, table.Row{
			s.Pair,
			string(s.Direction),
			s.EntryTime,
			s.Expiration,
			s.CreatedAt.Format("15:04:05"),
		})
	}
	m.table.SetRows(rows)
	m.stats = stats
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
		h := msg.Height - 7
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
	case refreshMsg:
		m.refresh()
		return m, tick()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	stats := fmt.Sprintf(
		"received %d | accepted %d | otc %d | closed %d | rate %.1f%%",
		m.stats.TotalReceived,
		m.stats.TotalAccepted,
		m.stats.TotalRejectedOTC,
		m.stats.TotalRejectedMarketClosed,
		m.stats.AcceptanceRate,
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Señales Radar"),
		tableStyle.Render(m.table.View()),
		statsStyle.Render(stats),
		helpStyle.Render("r refresh | q quit"),
	)
}
