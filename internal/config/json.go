package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Node struct {
		Scenario           string         `json:"scenario"`
		Preset             string         `json:"preset"`
		Peers              []string       `json:"peers"`
		ServerLike         bool           `json:"server_like"`
		HasLargeStorage    bool           `json:"has_large_storage"`
		PreferLargeStorage bool           `json:"prefer_large_storage"`
		Overrides          map[string]any `json:"overrides,omitempty"`
		Interactive        bool           `json:"interactive"`
	} `json:"node,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
	} `json:"server,omitempty"`

	Discovery struct {
		URL     string   `json:"url"`
		Timeout Duration `json:"timeout"`
	} `json:"discovery,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	// overrides travel as a JSON string, the same shape env and flags use
	var overrides string
	if len(jsonCfg.Node.Overrides) > 0 {
		data, err := json.Marshal(jsonCfg.Node.Overrides)
		if err != nil {
			return nil, fmt.Errorf("error encoding node overrides: %w", err)
		}
		overrides = string(data)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Node: Node{
			Scenario:           jsonCfg.Node.Scenario,
			Preset:             jsonCfg.Node.Preset,
			Peers:              jsonCfg.Node.Peers,
			ServerLike:         jsonCfg.Node.ServerLike,
			HasLargeStorage:    jsonCfg.Node.HasLargeStorage,
			PreferLargeStorage: jsonCfg.Node.PreferLargeStorage,
			Overrides:          overrides,
			Interactive:        jsonCfg.Node.Interactive,
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
		},
		Discovery: Discovery{
			URL:     jsonCfg.Discovery.URL,
			Timeout: time.Duration(jsonCfg.Discovery.Timeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
