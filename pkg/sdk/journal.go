package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Journal is a single audit log entry recorded by the platform.
type Journal struct {
	ID         string                 `json:"id,omitempty"`
	Operation  string                 `json:"operation,omitempty"`
	OccurredAt time.Time              `json:"occurred_at,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
	Metadata   Metadata               `json:"metadata,omitempty"`
}

// JournalsPage is one page of journal entries.
type JournalsPage struct {
	PageMetadata
	Journals []Journal `json:"journals"`
}

// Journal lists the audit entries recorded for an entity. entityType is
// one of "user", "thing", "channel" or "group". Filter with pm.Operation,
// pm.From/pm.To and pm.Direction.
func (s *SDK) Journal(ctx context.Context, entityType, entityID string, pm PageMetadata, token string) (JournalsPage, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", journalEndpoint, url.PathEscape(entityType), url.PathEscape(entityID))
	reqURL := s.withQueryParams(s.config.JournalURL, endpoint, pm)

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return JournalsPage{}, err
	}

	var res journalPageRes
	if err := json.Unmarshal(body, &res); err != nil {
		return JournalsPage{}, fmt.Errorf("failed to decode journal page: %w", err)
	}
	return JournalsPage{
		PageMetadata: PageMetadata{Total: res.Total, Offset: res.Offset, Limit: res.Limit},
		Journals:     res.Journals,
	}, nil
}
