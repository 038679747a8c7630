package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Channel mirrors the platform's channel (message topic) schema.
type Channel struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	ParentID    string    `json:"parent_id,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// ChannelsPage is one page of channels.
type ChannelsPage struct {
	PageMetadata
	Channels []Channel `json:"channels"`
}

// CreateChannel provisions a single channel.
func (s *SDK) CreateChannel(ctx context.Context, channel Channel, token string) (Channel, error) {
	data, err := json.Marshal(channel)
	if err != nil {
		return Channel{}, fmt.Errorf("failed to marshal channel: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s", s.config.ChannelsURL, channelsEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusCreated)
	if err != nil {
		return Channel{}, err
	}

	var created Channel
	if err := json.Unmarshal(body, &created); err != nil {
		return Channel{}, fmt.Errorf("failed to decode channel: %w", err)
	}
	return created, nil
}

// CreateChannels provisions a batch of channels in one request.
func (s *SDK) CreateChannels(ctx context.Context, channels []Channel, token string) ([]Channel, error) {
	data, err := json.Marshal(channels)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal channels: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/bulk", s.config.ChannelsURL, channelsEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var res createChannelsRes
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode channels: %w", err)
	}
	return res.Channels, nil
}

// Channel retrieves a channel by ID.
func (s *SDK) Channel(ctx context.Context, id, token string) (Channel, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.ChannelsURL, channelsEndpoint, url.PathEscape(id))

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return Channel{}, err
	}

	var channel Channel
	if err := json.Unmarshal(body, &channel); err != nil {
		return Channel{}, fmt.Errorf("failed to decode channel: %w", err)
	}
	return channel, nil
}

// Channels lists channels matching pm.
func (s *SDK) Channels(ctx context.Context, pm PageMetadata, token string) (ChannelsPage, error) {
	reqURL := s.withQueryParams(s.config.ChannelsURL, channelsEndpoint, pm)
	return s.channelsPage(ctx, reqURL, token)
}

// ChannelsByThing lists channels the given thing is connected to.
func (s *SDK) ChannelsByThing(ctx context.Context, thingID string, pm PageMetadata, token string) (ChannelsPage, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", thingsEndpoint, url.PathEscape(thingID), channelsEndpoint)
	reqURL := s.withQueryParams(s.config.ChannelsURL, endpoint, pm)
	return s.channelsPage(ctx, reqURL, token)
}

func (s *SDK) channelsPage(ctx context.Context, reqURL, token string) (ChannelsPage, error) {
	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return ChannelsPage{}, err
	}

	var res channelsPageRes
	if err := json.Unmarshal(body, &res); err != nil {
		return ChannelsPage{}, fmt.Errorf("failed to decode channels page: %w", err)
	}
	return ChannelsPage{
		PageMetadata: PageMetadata{Total: res.Total, Offset: res.Offset, Limit: res.Limit},
		Channels:     res.Channels,
	}, nil
}

// UpdateChannel updates a channel's name, description and metadata.
func (s *SDK) UpdateChannel(ctx context.Context, channel Channel, token string) (Channel, error) {
	data, err := json.Marshal(channel)
	if err != nil {
		return Channel{}, fmt.Errorf("failed to marshal channel: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s", s.config.ChannelsURL, channelsEndpoint, url.PathEscape(channel.ID))

	_, body, err := s.processRequest(ctx, http.MethodPut, reqURL, token, data, http.StatusOK)
	if err != nil {
		return Channel{}, err
	}

	var updated Channel
	if err := json.Unmarshal(body, &updated); err != nil {
		return Channel{}, fmt.Errorf("failed to decode channel: %w", err)
	}
	return updated, nil
}

// EnableChannel moves a channel to the enabled state.
func (s *SDK) EnableChannel(ctx context.Context, id, token string) (Channel, error) {
	return s.changeChannelStatus(ctx, id, "enable", token)
}

// DisableChannel moves a channel to the disabled state.
func (s *SDK) DisableChannel(ctx context.Context, id, token string) (Channel, error) {
	return s.changeChannelStatus(ctx, id, "disable", token)
}

func (s *SDK) changeChannelStatus(ctx context.Context, id, action, token string) (Channel, error) {
	reqURL := fmt.Sprintf("%s/%s/%s/%s", s.config.ChannelsURL, channelsEndpoint, url.PathEscape(id), action)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return Channel{}, err
	}

	var channel Channel
	if err := json.Unmarshal(body, &channel); err != nil {
		return Channel{}, fmt.Errorf("failed to decode channel: %w", err)
	}
	return channel, nil
}

// DeleteChannel permanently removes a channel.
func (s *SDK) DeleteChannel(ctx context.Context, id, token string) error {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.ChannelsURL, channelsEndpoint, url.PathEscape(id))

	_, _, err := s.processRequest(ctx, http.MethodDelete, reqURL, token, nil, http.StatusNoContent)
	return err
}
