package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/models"
)

// defaultTimeout applies when the caller does not set one.
const defaultTimeout = 5 * time.Second

type httpRelayAdapter struct {
	client *resty.Client

	logger *logger.Logger
}

// NewHTTPRelayAdapter constructs an HTTP/REST implementation of
// [RelayAdapter] for the relay at address. A websocket endpoint such as
// ws://host:8765/gun is accepted as well; only its host is used.
//
// Returns an error if address is empty or cannot be parsed as a URL.
func NewHTTPRelayAdapter(address string, timeout time.Duration, logger *logger.Logger) (RelayAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid relay address: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &httpRelayAdapter{client: client, logger: logger}, nil
}

// normalizeBaseURL reduces raw to scheme://host. Websocket schemes are
// mapped to their HTTP counterparts.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return u.Scheme + "://" + u.Host, nil
}

func (h *httpRelayAdapter) Health(ctx context.Context) (string, error) {
	var body struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}
	if err := h.getJSON(ctx, "/healthz", &body); err != nil {
		return "", fmt.Errorf("health request: %w", err)
	}
	return body.ID, nil
}

func (h *httpRelayAdapter) Peers(ctx context.Context) (models.PeerList, error) {
	var list models.PeerList
	if err := h.getJSON(ctx, "/api/peers", &list); err != nil {
		return models.PeerList{}, fmt.Errorf("peers request: %w", err)
	}
	return list, nil
}

func (h *httpRelayAdapter) Config(ctx context.Context) (map[string]any, error) {
	var cfg map[string]any
	if err := h.getJSON(ctx, "/api/config", &cfg); err != nil {
		return nil, fmt.Errorf("config request: %w", err)
	}
	return cfg, nil
}

func (h *httpRelayAdapter) getJSON(ctx context.Context, path string, v any) error {
	resp, err := h.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return err
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	h.logger.Debug().Str("path", path).Dur("took", resp.Time()).Msg("relay answered")
	return nil
}
