// Package tui implements the interactive preset picker of the client binary.
//
// The picker lists the preset table, previews the record each preset would
// resolve to for the configured peers and environment, and returns the name
// the user selected.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/models"
)

type TUI struct {
	peers []string
	env   models.Environment
	info  models.AppBuildInfo

	logger *logger.Logger
}

func New(peers []string, env models.Environment, info models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{peers: peers, env: env, info: info, logger: logger}
}

// PickPreset runs the picker until the user selects a preset or quits.
// Quitting yields [ErrUserQuit].
func (t *TUI) PickPreset(ctx context.Context) (string, error) {
	model := newPickerModel(t.peers, t.env, t.info)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		return "", runErr
	}

	result, ok := finalModel.(pickerModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.quitByUser || result.chosen == "" {
		return "", ErrUserQuit
	}

	t.logger.Debug().Str("preset", result.chosen).Msg("preset picked")
	return result.chosen, nil
}
