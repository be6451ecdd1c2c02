// Package devices talks to the smart-lock gateway that fronts the physical
// devices on each space.
package devices

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"space-booking/internal/pkg/config"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/commands"
)

type HTTPGateway struct {
	cfg    config.DevicesConfig
	client *http.Client
}

func NewHTTPGateway(cfg config.DevicesConfig) *HTTPGateway {
	return &HTTPGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type provisionRequest struct {
	Code       string    `json:"code"`
	ValidUntil time.Time `json:"valid_until"`
}

type provisionResponse struct {
	Ref string `json:"ref"`
}

func (g *HTTPGateway) ProvisionCode(ctx context.Context, deviceID, code string, validUntil time.Time) (string, error) {
	body, err := json.Marshal(provisionRequest{Code: code, ValidUntil: validUntil})
	if err != nil {
		return "", errs.Wrap(err, "failed to marshal provision request")
	}

	url := fmt.Sprintf("%s/devices/%s/codes", g.cfg.GatewayURL, deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errs.Wrap(err, "failed to build provision request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", errs.Mark(err, errs.ErrExternalIntegration)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errs.Mark(
			errs.New(fmt.Sprintf("device gateway returned %d", resp.StatusCode)),
			errs.ErrExternalIntegration,
		)
	}

	var result provisionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&result); err != nil {
		return "", errs.Wrap(err, "failed to decode provision response")
	}
	return result.Ref, nil
}

func (g *HTTPGateway) UpdateCode(ctx context.Context, deviceID, ref, code string, validUntil time.Time) error {
	body, err := json.Marshal(provisionRequest{Code: code, ValidUntil: validUntil})
	if err != nil {
		return errs.Wrap(err, "failed to marshal update request")
	}

	url := fmt.Sprintf("%s/devices/%s/codes/%s", g.cfg.GatewayURL, deviceID, ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build update request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return errs.Mark(err, errs.ErrExternalIntegration)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Mark(
			errs.New(fmt.Sprintf("device gateway returned %d", resp.StatusCode)),
			errs.ErrExternalIntegration,
		)
	}
	return nil
}

func (g *HTTPGateway) RevokeCode(ctx context.Context, deviceID, ref string) error {
	url := fmt.Sprintf("%s/devices/%s/codes/%s", g.cfg.GatewayURL, deviceID, ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return errs.Wrap(err, "failed to build revoke request")
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return errs.Mark(err, errs.ErrExternalIntegration)
	}
	defer func() { _ = resp.Body.Close() }()

	// 404 means the code is already gone, which is the desired end state.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Mark(
			errs.New(fmt.Sprintf("device gateway returned %d", resp.StatusCode)),
			errs.ErrExternalIntegration,
		)
	}
	return nil
}

type statusResponse struct {
	Status string `json:"status"`
}

func (g *HTTPGateway) Status(ctx context.Context, deviceID string) (commands.DeviceStatus, error) {
	url := fmt.Sprintf("%s/devices/%s/status", g.cfg.GatewayURL, deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return commands.DeviceOffline, errs.Wrap(err, "failed to build status request")
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return commands.DeviceOffline, errs.Mark(err, errs.ErrExternalIntegration)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return commands.DeviceOffline, errs.Mark(
			errs.New(fmt.Sprintf("device gateway returned %d", resp.StatusCode)),
			errs.ErrExternalIntegration,
		)
	}

	var result statusResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&result); err != nil {
		return commands.DeviceOffline, errs.Wrap(err, "failed to decode status response")
	}
	if result.Status == string(commands.DeviceOnline) {
		return commands.DeviceOnline, nil
	}
	return commands.DeviceOffline, nil
}

// NoopGateway serves deployments without connected locks: codes are issued
// and shared with residents, nothing is pushed anywhere.
type NoopGateway struct{}

func NewNoopGateway() *NoopGateway {
	return &NoopGateway{}
}

func (g *NoopGateway) ProvisionCode(_ context.Context, deviceID, _ string, _ time.Time) (string, error) {
	slog.Debug("device gateway disabled, skipping provisioning", "device_id", deviceID)
	return "", nil
}

func (g *NoopGateway) UpdateCode(_ context.Context, _, _, _ string, _ time.Time) error {
	return nil
}

func (g *NoopGateway) RevokeCode(_ context.Context, _, _ string) error {
	return nil
}

func (g *NoopGateway) Status(_ context.Context, _ string) (commands.DeviceStatus, error) {
	return commands.DeviceOnline, nil
}

// NewGateway picks the HTTP implementation when a gateway URL is configured.
func NewGateway(cfg config.DevicesConfig) commands.DeviceGateway {
	if cfg.GatewayURL == "" {
		return NewNoopGateway()
	}
	return NewHTTPGateway(cfg)
}
