package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/microkorg2editor/mk2ctl/sdk/catalog"
	"github.com/microkorg2editor/mk2ctl/sdk/contracts"
	"github.com/microkorg2editor/mk2ctl/sdk/session"
)

const barWidth = 24

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type model struct {
	sess   *session.Session
	cat    *catalog.Catalog
	events chan<- contracts.ParameterChanged

	values    map[contracts.ParameterID]int
	rows      []catalog.Entry
	cursor    int
	offset    int
	filter    string
	filtering bool

	devices []contracts.DeviceInfo
	status  string
	failed  bool
	height  int
}

func newModel(sess *session.Session, cat *catalog.Catalog, events chan<- contracts.ParameterChanged) model {
	m := model{
		sess:   sess,
		cat:    cat,
		events: events,
		values: make(map[contracts.ParameterID]int),
		rows:   cat.Entries(),
		height: 24,
	}
	for _, e := range m.rows {
		m.values[e.ID] = clamp(0, e.Min, e.Max)
	}
	m.refreshDevices()
	return m
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *model) refreshDevices() {
	devices, err := m.sess.Output().ListDevices()
	if err != nil {
		m.devices = nil
		m.setStatus(err.Error(), true)
		return
	}
	m.devices = devices
}

func (m *model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-10)
		case "pgdown":
			m.move(10)
		case "left", "h":
			m.adjust(-1)
		case "right", "l":
			m.adjust(1)
		case "shift+left", "H":
			m.adjust(-10)
		case "shift+right", "L":
			m.adjust(10)
		case "/":
			m.filtering = true
		case "tab":
			m.nextDevice()
		case "r":
			m.refreshDevices()
			m.setStatus(fmt.Sprintf("%d output devices", len(m.devices)), false)
		case "[":
			m.shiftChannel(-1)
		case "]":
			m.shiftChannel(1)
		}
	}
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.filtering = false
	case tea.KeyBackspace:
		if len(m.filter) > 0 {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
	case tea.KeyCtrlC:
		m.filtering = false
		m.filter = ""
	}
	m.rows = m.cat.Filter(m.filter)
	m.cursor = clamp(m.cursor, 0, max(len(m.rows)-1, 0))
	m.offset = 0
	m.scroll()
	return m
}

func (m *model) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.rows)-1)
	m.scroll()
}

// scroll keeps the cursor row inside the visible window.
func (m *model) scroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m model) visibleRows() int {
	return max(m.height-6, 1)
}

// adjust changes the selected parameter and hands the new value to the session.
func (m *model) adjust(delta int) {
	if len(m.rows) == 0 {
		return
	}
	e := m.rows[m.cursor]
	v := clamp(m.values[e.ID]+delta, e.Min, e.Max)
	if v == m.values[e.ID] {
		return
	}
	m.values[e.ID] = v
	select {
	case m.events <- contracts.ParameterChanged{ID: e.ID, Value: v}:
		m.setStatus(fmt.Sprintf("%s = %d", e.Name, v), false)
	default:
		m.setStatus("output busy; change dropped", true)
	}
}

func (m *model) nextDevice() {
	m.refreshDevices()
	if len(m.devices) == 0 {
		return
	}
	out := m.sess.Output()
	next := (out.Selected() + 1) % len(m.devices)
	if err := out.SelectDevice(next); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("output: "+m.devices[next].Name, false)
}

func (m *model) shiftChannel(delta int) {
	ch := (int(m.sess.Channel()) + delta + 16) % 16
	if err := m.sess.SetChannel(contracts.ChannelID(ch)); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("channel %d", ch+1), false)
}

func (m model) View() string {
	var b strings.Builder

	device := "none"
	if i := m.sess.Output().Selected(); i >= 0 && i < len(m.devices) {
		device = m.devices[i].Name
	}
	b.WriteString(titleStyle.Render("mk2ctl"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  out: %s  ch: %d", device, m.sess.Channel()+1)))
	b.WriteString("\n")

	search := m.filter
	if m.filtering {
		search += "_"
	}
	b.WriteString(fmt.Sprintf("search: %s\n\n", search))

	end := min(m.offset+m.visibleRows(), len(m.rows))
	for i := m.offset; i < end; i++ {
		e := m.rows[i]
		line := fmt.Sprintf("%-28s %s %5d", truncate(e.Name, 28), bar(m.values[e.ID], e.Min, e.Max), m.values[e.ID])
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("no matching parameters") + "\n")
	}

	b.WriteString("\n")
	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ select  ←/→ adjust  / search  tab output  [/] channel  r rescan  q quit"))
	return b.String()
}

func bar(v, lo, hi int) string {
	filled := 0
	if hi > lo {
		filled = (v - lo) * barWidth / (hi - lo)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
