package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-graph-peer/internal/resolver"
	"github.com/MKhiriev/go-graph-peer/models"
)

const (
	statusTTL     = 2 * time.Second
	maxValueWidth = 60
)

type pickerModel struct {
	presets []resolver.Preset
	idx     int

	peers []string
	env   models.Environment
	info  models.AppBuildInfo

	copyFn func(string) error

	showInfo   bool
	status     string
	lastErr    error
	chosen     string
	quitByUser bool
}

func newPickerModel(peers []string, env models.Environment, info models.AppBuildInfo) pickerModel {
	return pickerModel{
		presets: resolver.Presets(),
		peers:   peers,
		env:     env,
		info:    info,
		copyFn:  clipboard.WriteAll,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

// resolve returns what the highlighted preset resolves to.
func (m pickerModel) resolve() (resolver.Resolution, error) {
	env := m.env
	return resolver.Resolve(resolver.Request{
		Scenario:    resolver.ScenarioPreset,
		Preset:      m.presets[m.idx].Name,
		Environment: &env,
		Peers:       m.peers,
	})
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case copiedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.status = ""
			return m, nil
		}
		m.lastErr = nil
		m.status = "record copied to clipboard"
		return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m pickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		m.quitByUser = true
		return m, tea.Quit
	}

	if m.showInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
			m.showInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
		m.lastErr = nil
	case key.Matches(msg, keys.down):
		if m.idx < len(m.presets)-1 {
			m.idx++
		}
		m.lastErr = nil
	case key.Matches(msg, keys.enter):
		m.chosen = m.presets[m.idx].Name
		return m, tea.Quit
	case key.Matches(msg, keys.info):
		m.showInfo = true
	case key.Matches(msg, keys.copy):
		return m, m.copyRecord()
	}

	return m, nil
}

func (m pickerModel) copyRecord() tea.Cmd {
	res, err := m.resolve()
	copyFn := m.copyFn
	return func() tea.Msg {
		if err != nil {
			return copiedMsg{err: err}
		}
		data, err := json.MarshalIndent(res.Record, "", "  ")
		if err != nil {
			return copiedMsg{err: fmt.Errorf("encode record: %w", err)}
		}
		if err = copyFn(string(data)); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func (m pickerModel) View() string {
	if m.showInfo {
		return renderBuildInfoWindow(m.info)
	}

	var b strings.Builder
	b.WriteString(m.renderTable())
	b.WriteString("\n\n")

	res, err := m.resolve()
	if err != nil {
		b.WriteString(errorStyle.Render("Error: " + err.Error()))
	} else {
		rows := res.Record.Summary()
		for i := range rows {
			rows[i][1] = fitText(rows[i][1], maxValueWidth)
		}
		b.WriteString(renderPairs(rows))
		for _, a := range res.Advisories {
			b.WriteString("\n! ")
			b.WriteString(a.Message)
		}
	}

	if m.status != "" {
		b.WriteString("\n\nOK: ")
		b.WriteString(m.status)
	}
	if m.lastErr != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
	}

	return renderPage("PRESETS", b.String(), "enter: select │ ↑/↓: move │ c: copy record │ v: version │ q: quit")
}

func (m pickerModel) renderTable() string {
	header := []string{"Preset", "chunk", "until", "localStorage", "persistence", "realtime"}
	rows := make([][]string, 0, len(m.presets))
	for _, p := range m.presets {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%d", p.ChunkSize),
			fmt.Sprintf("%dms", p.TimeoutMs),
			fmt.Sprintf("%t", p.LocalStorage),
			fmt.Sprintf("%t", p.Persistence),
			fmt.Sprintf("%t", p.Realtime),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(joinCells(header, widths))
	b.WriteString("\n  ")
	for i, w := range widths {
		if i > 0 {
			b.WriteString("─┼─")
		}
		b.WriteString(strings.Repeat("─", w))
	}

	for i, r := range rows {
		b.WriteString("\n")
		line := joinCells(r, widths)
		if i == m.idx {
			b.WriteString("> ")
			b.WriteString(selectedStyle.Render(line))
			continue
		}
		b.WriteString("  ")
		b.WriteString(line)
	}

	return b.String()
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
	}
	return strings.Join(padded, " │ ")
}
