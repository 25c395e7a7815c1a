// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-graph-peer/models"
)

// Scenario selects the per-scenario defaults layer and the set of overrides
// a request may carry.
type Scenario string

const (
	// ScenarioClient is a client-side node; LocalStorage and Realtime
	// default to on.
	ScenarioClient Scenario = "client"

	// ScenarioServer is a relay node; Persistence and Realtime default to
	// on and the environment is always server-like.
	ScenarioServer Scenario = "server"

	// ScenarioPreset applies a named preset with no scenario defaults.
	ScenarioPreset Scenario = "preset"

	// ScenarioAuto chooses the storage flags from the injected environment.
	ScenarioAuto Scenario = "auto"
)

// Scenarios lists every known scenario.
var Scenarios = []Scenario{ScenarioClient, ScenarioServer, ScenarioPreset, ScenarioAuto}

// ParseScenario converts a name into a [Scenario], ignoring case.
func ParseScenario(s string) (Scenario, error) {
	for _, sc := range Scenarios {
		if strings.EqualFold(string(sc), strings.TrimSpace(s)) {
			return sc, nil
		}
	}
	return "", invalidArgument("unknown scenario %q", s)
}

// Request is the full input of one resolution.
type Request struct {
	Scenario Scenario

	// Preset names a row of the preset table. Required for ScenarioPreset,
	// optional for client and auto, rejected for server.
	Preset string

	// Environment describes the runtime. Nil means the scenario default:
	// [models.ServerEnvironment] for servers, [models.BrowserEnvironment]
	// for everything else.
	Environment *models.Environment

	Peers []string

	// Overrides may be nil.
	Overrides Overrides
}

// Resolution is the result of [Resolve]: the record plus any advisories
// raised while building it.
type Resolution struct {
	Record     models.Record
	Advisories []models.Advisory
}

// Resolve validates req and layers hard defaults, preset, scenario defaults
// and overrides into one record. It has no side effects; identical requests
// produce equal resolutions.
func Resolve(req Request) (Resolution, error) {
	if err := ValidatePeers(req.Peers); err != nil {
		return Resolution{}, err
	}

	if !slices.Contains(Scenarios, req.Scenario) {
		return Resolution{}, invalidArgument("unknown scenario %q", req.Scenario)
	}

	overrides, err := overrideLayer(req)
	if err != nil {
		return Resolution{}, err
	}

	layers := []layer{hardDefaults()}

	switch {
	case req.Scenario == ScenarioPreset && req.Preset == "":
		return Resolution{}, invalidArgument("preset scenario requires a preset name")
	case req.Scenario == ScenarioServer && req.Preset != "":
		return Resolution{}, invalidArgument("server scenario does not accept a preset")
	case req.Preset != "":
		preset, err := LookupPreset(req.Preset)
		if err != nil {
			return Resolution{}, err
		}
		layers = append(layers, preset.layer())
	}

	env := environmentFor(req)
	layers = append(layers, scenarioDefaults(req.Scenario, env), overrides)

	merged, err := mergeLayers(layers...)
	if err != nil {
		return Resolution{}, err
	}

	return finalize(req.Peers, merged, env)
}

// ValidatePeers checks that every endpoint is a non-blank string.
func ValidatePeers(peers []string) error {
	for i, p := range peers {
		if strings.TrimSpace(p) == "" {
			return invalidArgument("peers[%d] is empty", i)
		}
	}
	return nil
}

// PeersFrom converts a dynamically typed value into a peers list. Only
// sequences of strings are accepted; a bare string is rejected.
func PeersFrom(v any) ([]string, error) {
	var peers []string

	switch vv := v.(type) {
	case nil:
		return nil, nil
	case []string:
		peers = slices.Clone(vv)
	case []any:
		peers = make([]string, 0, len(vv))
		for i, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, invalidArgument("peers[%d] must be a string, got %T", i, item)
			}
			peers = append(peers, s)
		}
	default:
		return nil, invalidArgument("peers must be a sequence of strings, got %T", v)
	}

	if err := ValidatePeers(peers); err != nil {
		return nil, err
	}
	return peers, nil
}

func overrideLayer(req Request) (layer, error) {
	switch o := req.Overrides.(type) {
	case nil:
		return layer{}, nil
	case *ClientOptions:
		if o == nil {
			return layer{}, nil
		}
	case *ServerOptions:
		if o == nil {
			return layer{}, nil
		}
	}
	if !req.Overrides.allows(req.Scenario) {
		return layer{}, invalidArgument("%T is not valid for the %s scenario", req.Overrides, req.Scenario)
	}
	return req.Overrides.overrideLayer()
}

func environmentFor(req Request) models.Environment {
	if req.Scenario == ScenarioServer {
		env := models.ServerEnvironment()
		if req.Environment != nil {
			env = *req.Environment
			env.ServerLike = true
		}
		return env
	}

	if req.Environment != nil {
		return *req.Environment
	}
	return models.BrowserEnvironment()
}

func scenarioDefaults(s Scenario, env models.Environment) layer {
	switch s {
	case ScenarioClient:
		return layer{LocalStorage: ptr(true), Realtime: ptr(true)}
	case ScenarioServer:
		return layer{Persistence: ptr(true), Realtime: ptr(true)}
	case ScenarioAuto:
		l := layer{Realtime: ptr(true)}
		switch SelectStorage(env) {
		case models.StorageFileSystem:
			l.LocalStorage, l.Persistence = ptr(false), ptr(true)
		case models.StorageIndexedDB:
			l.LocalStorage, l.Persistence = ptr(true), ptr(true)
		default:
			l.LocalStorage, l.Persistence = ptr(true), ptr(false)
		}
		return l
	default:
		return layer{}
	}
}

func finalize(peers []string, l layer, env models.Environment) (Resolution, error) {
	rec := models.Record{
		Peers:        slices.Clone(peers),
		StoragePath:  deref(l.StoragePath),
		LocalStorage: deref(l.LocalStorage),
		Persistence:  deref(l.Persistence),
		Realtime:     deref(l.Realtime),
		ChunkSize:    deref(l.ChunkSize),
		TimeoutMs:    deref(l.TimeoutMs),
		QuotaBytes:   cloned(l.QuotaBytes),
	}

	if l.StorageMode != nil {
		rec.StorageMode = *l.StorageMode
		switch rec.StorageMode {
		case models.StorageNone:
			rec.LocalStorage, rec.Persistence = false, false
		case models.StorageLocalStorage:
			rec.LocalStorage, rec.Persistence = true, false
		default:
			rec.Persistence = true
		}
	} else {
		rec.StorageMode = deriveStorage(rec.LocalStorage, rec.Persistence, env)
	}

	if rec.ChunkSize <= 0 || rec.TimeoutMs < 0 {
		return Resolution{}, fmt.Errorf("%w: resolved chunkSize=%d timeoutMs=%d out of range",
			ErrInvalidArgument, rec.ChunkSize, rec.TimeoutMs)
	}

	var advisories []models.Advisory
	if rec.StoragePath == "" && (rec.Persistence || rec.StorageMode.RequiresPath()) {
		rec.StoragePath = FallbackStoragePath
		advisories = append(advisories, models.Advisory{
			Code:    models.AdvisoryStoragePathDefaulted,
			Field:   KeyStoragePath,
			Message: fmt.Sprintf("persistence enabled without a storage path, using %q", FallbackStoragePath),
		})
	}

	return Resolution{Record: rec, Advisories: advisories}, nil
}
