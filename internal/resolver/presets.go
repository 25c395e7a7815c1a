package resolver

import (
	"slices"
	"strings"
)

// Preset names.
const (
	PresetFast          = "FAST"
	PresetReliable      = "RELIABLE"
	PresetMinimal       = "MINIMAL"
	PresetCollaborative = "COLLABORATIVE"
)

// Preset is a named bundle of tuning values applied as one resolution layer.
type Preset struct {
	Name         string `json:"name"`
	ChunkSize    int    `json:"chunk_size"`
	TimeoutMs    int    `json:"timeout_ms"`
	LocalStorage bool   `json:"local_storage"`
	Persistence  bool   `json:"persistence"`
	Realtime     bool   `json:"realtime"`
}

// presetTable is never handed out directly; readers get copies.
var presetTable = [...]Preset{
	{Name: PresetFast, ChunkSize: 100, TimeoutMs: 9, LocalStorage: true, Persistence: false, Realtime: true},
	{Name: PresetReliable, ChunkSize: 2000, TimeoutMs: 199, LocalStorage: true, Persistence: true, Realtime: true},
	{Name: PresetMinimal, ChunkSize: 50, TimeoutMs: 1, LocalStorage: false, Persistence: false, Realtime: true},
	{Name: PresetCollaborative, ChunkSize: 500, TimeoutMs: 29, LocalStorage: true, Persistence: true, Realtime: true},
}

// Presets returns the preset table in its canonical order.
func Presets() []Preset {
	return slices.Clone(presetTable[:])
}

// PresetNames returns the preset names in canonical order.
func PresetNames() []string {
	names := make([]string, 0, len(presetTable))
	for _, p := range presetTable {
		names = append(names, p.Name)
	}
	return names
}

// LookupPreset finds a preset by name, ignoring case and surrounding spaces.
// An unknown name yields an [*UnknownPresetError].
func LookupPreset(name string) (Preset, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, p := range presetTable {
		if p.Name == key {
			return p, nil
		}
	}

	return Preset{}, &UnknownPresetError{Name: name, Valid: PresetNames()}
}

func (p Preset) layer() layer {
	return layer{
		LocalStorage: ptr(p.LocalStorage),
		Persistence:  ptr(p.Persistence),
		Realtime:     ptr(p.Realtime),
		ChunkSize:    ptr(p.ChunkSize),
		TimeoutMs:    ptr(p.TimeoutMs),
	}
}
