package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Message is a SenML record as stored by the platform's readers.
type Message struct {
	Channel     string   `json:"channel,omitempty"`
	Subtopic    string   `json:"subtopic,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Protocol    string   `json:"protocol,omitempty"`
	Name        string   `json:"name,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Time        float64  `json:"time,omitempty"`
	UpdateTime  float64  `json:"update_time,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	StringValue *string  `json:"string_value,omitempty"`
	DataValue   *string  `json:"data_value,omitempty"`
	BoolValue   *bool    `json:"bool_value,omitempty"`
	Sum         *float64 `json:"sum,omitempty"`
}

// MessagesPage is one page of messages.
type MessagesPage struct {
	PageMetadata
	Messages []Message `json:"messages"`
}

// SendMessage publishes msg (a SenML payload) to a channel through the
// HTTP adapter. It authenticates with the thing's secret, not a user
// token.
func (s *SDK) SendMessage(ctx context.Context, channelID, msg, secret string) error {
	reqURL := fmt.Sprintf("%s/%s/%s/messages", s.config.HTTPAdapterURL, channelsEndpoint, url.PathEscape(channelID))

	_, _, err := s.doRequest(ctx, http.MethodPost, reqURL, ThingPrefix+secret, []byte(msg), http.StatusAccepted)
	return err
}

// ReadMessages queries the reader service for messages published on a
// channel. Use pm.From/pm.To to bound the window and pm.Subtopic or
// pm.Publisher to narrow it.
func (s *SDK) ReadMessages(ctx context.Context, channelID string, pm PageMetadata, token string) (MessagesPage, error) {
	endpoint := fmt.Sprintf("%s/%s/messages", channelsEndpoint, url.PathEscape(channelID))
	reqURL := s.withQueryParams(s.config.ReaderURL, endpoint, pm)

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return MessagesPage{}, err
	}

	var res messagesPageRes
	if err := json.Unmarshal(body, &res); err != nil {
		return MessagesPage{}, fmt.Errorf("failed to decode messages page: %w", err)
	}
	return MessagesPage{
		PageMetadata: PageMetadata{Total: res.Total, Offset: res.Offset, Limit: res.Limit},
		Messages:     res.Messages,
	}, nil
}
