package tui

import (
	"encoding/json"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-graph-peer/internal/resolver"
	"github.com/MKhiriev/go-graph-peer/models"
)

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestPicker(copyFn func(string) error) pickerModel {
	m := newPickerModel([]string{"ws://relay:8765/gun"}, models.BrowserEnvironment(), models.NewAppBuildInfo("v1.2.3", "", ""))
	m.copyFn = copyFn
	return m
}

func update(t *testing.T, m pickerModel, msg tea.Msg) (pickerModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	pm, ok := next.(pickerModel)
	require.True(t, ok)
	return pm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPicker_Navigation(t *testing.T) {
	m := newTestPicker(nil)
	require.Len(t, m.presets, 4)

	m, _ = update(t, m, keyUp)
	assert.Equal(t, 0, m.idx, "stays at the top")

	for range 10 {
		m, _ = update(t, m, keyDown)
	}
	assert.Equal(t, 3, m.idx, "stays at the bottom")

	m, _ = update(t, m, runeKey('k'))
	assert.Equal(t, 2, m.idx)
}

func TestPicker_EnterSelects(t *testing.T) {
	m := newTestPicker(nil)

	m, _ = update(t, m, keyDown)
	m, cmd := update(t, m, keyEnter)

	assert.Equal(t, resolver.PresetReliable, m.chosen)
	assert.False(t, m.quitByUser)
	assert.True(t, isQuit(cmd))
}

func TestPicker_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			m, cmd := update(t, newTestPicker(nil), msg)

			assert.True(t, m.quitByUser)
			assert.Empty(t, m.chosen)
			assert.True(t, isQuit(cmd))
		})
	}
}

func TestPicker_CopyRecord(t *testing.T) {
	var copied string
	m := newTestPicker(func(s string) error {
		copied = s
		return nil
	})

	m, _ = update(t, m, keyDown)
	m, cmd := update(t, m, runeKey('c'))
	require.NotNil(t, cmd)

	msg := cmd()
	require.Equal(t, copiedMsg{}, msg)

	var rec models.Record
	require.NoError(t, json.Unmarshal([]byte(copied), &rec))
	assert.Equal(t, 2000, rec.ChunkSize)
	assert.Equal(t, 199, rec.TimeoutMs)
	assert.Equal(t, []string{"ws://relay:8765/gun"}, rec.Peers)
	assert.Equal(t, models.StorageIndexedDB, rec.StorageMode)

	m, tick := update(t, m, msg)
	assert.Equal(t, "record copied to clipboard", m.status)
	assert.NotNil(t, tick)

	m, _ = update(t, m, clearStatusMsg{})
	assert.Empty(t, m.status)
}

func TestPicker_CopyFails(t *testing.T) {
	m := newTestPicker(func(string) error { return errors.New("no clipboard") })

	_, cmd := update(t, m, runeKey('c'))
	msg := cmd()

	m, _ = update(t, m, msg)
	require.Error(t, m.lastErr)
	assert.Contains(t, m.lastErr.Error(), "no clipboard")
	assert.Contains(t, m.View(), "no clipboard")
}

func TestPicker_InfoWindow(t *testing.T) {
	m := newTestPicker(nil)

	m, _ = update(t, m, runeKey('v'))
	require.True(t, m.showInfo)
	assert.Contains(t, m.View(), "v1.2.3")

	m, _ = update(t, m, keyDown)
	assert.Equal(t, 0, m.idx, "navigation is ignored while the window is open")

	m, _ = update(t, m, keyEsc)
	assert.False(t, m.showInfo)
}

func TestPicker_View(t *testing.T) {
	m := newTestPicker(nil)
	m, _ = update(t, m, keyDown)

	view := m.View()

	for _, name := range resolver.PresetNames() {
		assert.Contains(t, view, name)
	}
	assert.Contains(t, view, "> ")
	assert.Contains(t, view, "ws://relay:8765/gun")
	assert.Contains(t, view, "radata")
	assert.Contains(t, view, "storage path")
}

func TestRenderPairs(t *testing.T) {
	got := renderPairs([][2]string{{"a", "1"}, {"long", "2"}})

	assert.Equal(t, "a     1\nlong  2", got)
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefgh", 5))
	assert.Equal(t, "ab", fitText("abcdefgh", 2))
}
