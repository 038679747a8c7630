package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// BootstrapConfig mirrors the bootstrap service's config schema. A config
// pairs an unprovisioned device (identified by ExternalID/ExternalKey)
// with the thing and channels it should come up with.
type BootstrapConfig struct {
	ThingID     string    `json:"thing_id,omitempty"`
	Channels    []Channel `json:"channels,omitempty"`
	ExternalID  string    `json:"external_id,omitempty"`
	ExternalKey string    `json:"external_key,omitempty"`
	ThingKey    string    `json:"thing_key,omitempty"`
	Name        string    `json:"name,omitempty"`
	ClientCert  string    `json:"client_cert,omitempty"`
	ClientKey   string    `json:"client_key,omitempty"`
	CACert      string    `json:"ca_cert,omitempty"`
	Content     string    `json:"content,omitempty"`
	State       int       `json:"state,omitempty"`
}

// bootstrapUpdateReq limits connection updates to the channel list.
type bootstrapUpdateReq struct {
	Channels []string `json:"channels"`
}

// BootstrapPage is one page of bootstrap configs.
type BootstrapPage struct {
	PageMetadata
	Configs []BootstrapConfig `json:"configs"`
}

// AddBootstrap registers a bootstrap config and returns the ID the
// service assigned to it (from the Location header).
func (s *SDK) AddBootstrap(ctx context.Context, cfg BootstrapConfig, token string) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal bootstrap config: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s", s.config.BootstrapURL, bootstrapEndpoint)

	headers, _, err := s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusCreated)
	if err != nil {
		return "", err
	}

	location := headers.Get("Location")
	id := location[strings.LastIndex(location, "/")+1:]
	if id == "" {
		return "", fmt.Errorf("bootstrap service returned no config ID in the Location header %q", location)
	}
	return id, nil
}

// ViewBootstrap retrieves the bootstrap config of a thing.
func (s *SDK) ViewBootstrap(ctx context.Context, thingID, token string) (BootstrapConfig, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.BootstrapURL, bootstrapEndpoint, url.PathEscape(thingID))

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return BootstrapConfig{}, err
	}

	var cfg BootstrapConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return BootstrapConfig{}, fmt.Errorf("failed to decode bootstrap config: %w", err)
	}
	return cfg, nil
}

// Bootstraps lists bootstrap configs matching pm.
func (s *SDK) Bootstraps(ctx context.Context, pm PageMetadata, token string) (BootstrapPage, error) {
	reqURL := s.withQueryParams(s.config.BootstrapURL, bootstrapEndpoint, pm)

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return BootstrapPage{}, err
	}

	var res bootstrapPageRes
	if err := json.Unmarshal(body, &res); err != nil {
		return BootstrapPage{}, fmt.Errorf("failed to decode bootstrap page: %w", err)
	}
	return BootstrapPage{
		PageMetadata: PageMetadata{Total: res.Total, Offset: res.Offset, Limit: res.Limit},
		Configs:      res.Configs,
	}, nil
}

// UpdateBootstrap updates the name and content of a bootstrap config.
func (s *SDK) UpdateBootstrap(ctx context.Context, cfg BootstrapConfig, token string) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal bootstrap config: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s", s.config.BootstrapURL, bootstrapEndpoint, url.PathEscape(cfg.ThingID))

	_, _, err = s.processRequest(ctx, http.MethodPut, reqURL, token, data, http.StatusOK)
	return err
}

// UpdateBootstrapCerts replaces the certificate material of a bootstrap
// config.
func (s *SDK) UpdateBootstrapCerts(ctx context.Context, id, clientCert, clientKey, caCert, token string) (BootstrapConfig, error) {
	payload := map[string]string{
		"client_cert": clientCert,
		"client_key":  clientKey,
		"ca_cert":     caCert,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return BootstrapConfig{}, fmt.Errorf("failed to marshal certs: %w", err)
	}

	reqURL := fmt.Sprintf("%s/configs/certs/%s", s.config.BootstrapURL, url.PathEscape(id))

	_, body, err := s.processRequest(ctx, http.MethodPatch, reqURL, token, data, http.StatusOK)
	if err != nil {
		return BootstrapConfig{}, err
	}

	var cfg BootstrapConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return BootstrapConfig{}, fmt.Errorf("failed to decode bootstrap config: %w", err)
	}
	return cfg, nil
}

// UpdateBootstrapConnection replaces the channel list of a bootstrap
// config.
func (s *SDK) UpdateBootstrapConnection(ctx context.Context, id string, channels []string, token string) error {
	data, err := json.Marshal(bootstrapUpdateReq{Channels: channels})
	if err != nil {
		return fmt.Errorf("failed to marshal channels: %w", err)
	}

	reqURL := fmt.Sprintf("%s/configs/connections/%s", s.config.BootstrapURL, url.PathEscape(id))

	_, _, err = s.processRequest(ctx, http.MethodPut, reqURL, token, data, http.StatusOK)
	return err
}

// RemoveBootstrap deletes a bootstrap config.
func (s *SDK) RemoveBootstrap(ctx context.Context, id, token string) error {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.BootstrapURL, bootstrapEndpoint, url.PathEscape(id))

	_, _, err := s.processRequest(ctx, http.MethodDelete, reqURL, token, nil, http.StatusNoContent)
	return err
}

// Bootstrap retrieves the config an unprovisioned device boots from,
// authenticating with its external key instead of a user token.
func (s *SDK) Bootstrap(ctx context.Context, externalID, externalKey string) (BootstrapConfig, error) {
	reqURL := fmt.Sprintf("%s/things/bootstrap/%s", s.config.BootstrapURL, url.PathEscape(externalID))

	_, body, err := s.doRequest(ctx, http.MethodGet, reqURL, ThingPrefix+externalKey, nil, http.StatusOK)
	if err != nil {
		return BootstrapConfig{}, err
	}

	var cfg BootstrapConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return BootstrapConfig{}, fmt.Errorf("failed to decode bootstrap config: %w", err)
	}
	return cfg, nil
}

// Whitelist changes the state of a bootstrap config (0 inactive,
// 1 active).
func (s *SDK) Whitelist(ctx context.Context, thingID string, state int, token string) error {
	data, err := json.Marshal(map[string]int{"state": state})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	reqURL := fmt.Sprintf("%s/things/state/%s", s.config.BootstrapURL, url.PathEscape(thingID))

	_, _, err = s.processRequest(ctx, http.MethodPut, reqURL, token, data, http.StatusCreated)
	return err
}
