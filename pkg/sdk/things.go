package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Thing mirrors the platform's thing (device) schema.
type Thing struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	Credentials ThingCreds  `json:"credentials,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Metadata    Metadata    `json:"metadata,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at,omitempty"`
	Status      string      `json:"status,omitempty"`
}

// ThingCreds hold a thing's connection secret.
type ThingCreds struct {
	Identity string `json:"identity,omitempty"`
	Secret   string `json:"secret,omitempty"`
}

// Connection links things to channels.
type Connection struct {
	ThingIDs   []string `json:"thing_ids"`
	ChannelIDs []string `json:"channel_ids"`
}

// ThingsPage is one page of things.
type ThingsPage struct {
	PageMetadata
	Things []Thing `json:"things"`
}

// CreateThing provisions a single thing.
func (s *SDK) CreateThing(ctx context.Context, thing Thing, token string) (Thing, error) {
	data, err := json.Marshal(thing)
	if err != nil {
		return Thing{}, fmt.Errorf("failed to marshal thing: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s", s.config.ThingsURL, thingsEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusCreated)
	if err != nil {
		return Thing{}, err
	}

	var created Thing
	if err := json.Unmarshal(body, &created); err != nil {
		return Thing{}, fmt.Errorf("failed to decode thing: %w", err)
	}
	return created, nil
}

// CreateThings provisions a batch of things in one request.
func (s *SDK) CreateThings(ctx context.Context, things []Thing, token string) ([]Thing, error) {
	data, err := json.Marshal(things)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal things: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/bulk", s.config.ThingsURL, thingsEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var res createThingsRes
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode things: %w", err)
	}
	return res.Things, nil
}

// Thing retrieves a thing by ID.
func (s *SDK) Thing(ctx context.Context, id, token string) (Thing, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.ThingsURL, thingsEndpoint, url.PathEscape(id))

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return Thing{}, err
	}

	var thing Thing
	if err := json.Unmarshal(body, &thing); err != nil {
		return Thing{}, fmt.Errorf("failed to decode thing: %w", err)
	}
	return thing, nil
}

// Things lists things matching pm.
func (s *SDK) Things(ctx context.Context, pm PageMetadata, token string) (ThingsPage, error) {
	reqURL := s.withQueryParams(s.config.ThingsURL, thingsEndpoint, pm)
	return s.thingsPage(ctx, reqURL, token)
}

// ThingsByChannel lists things connected to the given channel.
func (s *SDK) ThingsByChannel(ctx context.Context, channelID string, pm PageMetadata, token string) (ThingsPage, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", channelsEndpoint, url.PathEscape(channelID), thingsEndpoint)
	reqURL := s.withQueryParams(s.config.ThingsURL, endpoint, pm)
	return s.thingsPage(ctx, reqURL, token)
}

func (s *SDK) thingsPage(ctx context.Context, reqURL, token string) (ThingsPage, error) {
	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return ThingsPage{}, err
	}

	var res thingsPageRes
	if err := json.Unmarshal(body, &res); err != nil {
		return ThingsPage{}, fmt.Errorf("failed to decode things page: %w", err)
	}
	return ThingsPage{
		PageMetadata: PageMetadata{Total: res.Total, Offset: res.Offset, Limit: res.Limit},
		Things:       res.Things,
	}, nil
}

// UpdateThing updates a thing's name and metadata.
func (s *SDK) UpdateThing(ctx context.Context, thing Thing, token string) (Thing, error) {
	data, err := json.Marshal(thing)
	if err != nil {
		return Thing{}, fmt.Errorf("failed to marshal thing: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s", s.config.ThingsURL, thingsEndpoint, url.PathEscape(thing.ID))

	_, body, err := s.processRequest(ctx, http.MethodPatch, reqURL, token, data, http.StatusOK)
	if err != nil {
		return Thing{}, err
	}

	var updated Thing
	if err := json.Unmarshal(body, &updated); err != nil {
		return Thing{}, fmt.Errorf("failed to decode thing: %w", err)
	}
	return updated, nil
}

// UpdateThingTags replaces a thing's tags.
func (s *SDK) UpdateThingTags(ctx context.Context, thing Thing, token string) (Thing, error) {
	data, err := json.Marshal(thing)
	if err != nil {
		return Thing{}, fmt.Errorf("failed to marshal thing: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s/tags", s.config.ThingsURL, thingsEndpoint, url.PathEscape(thing.ID))

	_, body, err := s.processRequest(ctx, http.MethodPatch, reqURL, token, data, http.StatusOK)
	if err != nil {
		return Thing{}, err
	}

	var updated Thing
	if err := json.Unmarshal(body, &updated); err != nil {
		return Thing{}, fmt.Errorf("failed to decode thing: %w", err)
	}
	return updated, nil
}

// UpdateThingSecret rotates a thing's connection secret.
func (s *SDK) UpdateThingSecret(ctx context.Context, id, secret, token string) (Thing, error) {
	payload := map[string]string{"secret": secret}
	data, err := json.Marshal(payload)
	if err != nil {
		return Thing{}, fmt.Errorf("failed to marshal secret: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s/secret", s.config.ThingsURL, thingsEndpoint, url.PathEscape(id))

	_, body, err := s.processRequest(ctx, http.MethodPatch, reqURL, token, data, http.StatusOK)
	if err != nil {
		return Thing{}, err
	}

	var updated Thing
	if err := json.Unmarshal(body, &updated); err != nil {
		return Thing{}, fmt.Errorf("failed to decode thing: %w", err)
	}
	return updated, nil
}

// EnableThing moves a thing to the enabled state.
func (s *SDK) EnableThing(ctx context.Context, id, token string) (Thing, error) {
	return s.changeThingStatus(ctx, id, "enable", token)
}

// DisableThing moves a thing to the disabled state.
func (s *SDK) DisableThing(ctx context.Context, id, token string) (Thing, error) {
	return s.changeThingStatus(ctx, id, "disable", token)
}

func (s *SDK) changeThingStatus(ctx context.Context, id, action, token string) (Thing, error) {
	reqURL := fmt.Sprintf("%s/%s/%s/%s", s.config.ThingsURL, thingsEndpoint, url.PathEscape(id), action)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return Thing{}, err
	}

	var thing Thing
	if err := json.Unmarshal(body, &thing); err != nil {
		return Thing{}, fmt.Errorf("failed to decode thing: %w", err)
	}
	return thing, nil
}

// DeleteThing permanently removes a thing.
func (s *SDK) DeleteThing(ctx context.Context, id, token string) error {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.ThingsURL, thingsEndpoint, url.PathEscape(id))

	_, _, err := s.processRequest(ctx, http.MethodDelete, reqURL, token, nil, http.StatusNoContent)
	return err
}

// Connect links the things and channels named in conn.
func (s *SDK) Connect(ctx context.Context, conn Connection, token string) error {
	data, err := json.Marshal(conn)
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	reqURL := fmt.Sprintf("%s/connect", s.config.ThingsURL)

	_, _, err = s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusCreated)
	return err
}

// Disconnect removes the links named in conn.
func (s *SDK) Disconnect(ctx context.Context, conn Connection, token string) error {
	data, err := json.Marshal(conn)
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	reqURL := fmt.Sprintf("%s/disconnect", s.config.ThingsURL)

	_, _, err = s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusNoContent)
	return err
}
