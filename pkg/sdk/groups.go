package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Group mirrors the platform's group schema. Groups form a hierarchy
// through ParentID; the hierarchy is maintained entirely server-side.
type Group struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	ParentID    string    `json:"parent_id,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	Level       int       `json:"level,omitempty"`
	Path        string    `json:"path,omitempty"`
	Children    []*Group  `json:"children,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// GroupsPage is one page of groups.
type GroupsPage struct {
	PageMetadata
	Groups []Group `json:"groups"`
}

// CreateGroup provisions a group. Set ParentID to nest it.
func (s *SDK) CreateGroup(ctx context.Context, group Group, token string) (Group, error) {
	data, err := json.Marshal(group)
	if err != nil {
		return Group{}, fmt.Errorf("failed to marshal group: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s", s.config.GroupsURL, groupsEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusCreated)
	if err != nil {
		return Group{}, err
	}

	var created Group
	if err := json.Unmarshal(body, &created); err != nil {
		return Group{}, fmt.Errorf("failed to decode group: %w", err)
	}
	return created, nil
}

// Group retrieves a group by ID.
func (s *SDK) Group(ctx context.Context, id, token string) (Group, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.GroupsURL, groupsEndpoint, url.PathEscape(id))

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return Group{}, err
	}

	var group Group
	if err := json.Unmarshal(body, &group); err != nil {
		return Group{}, fmt.Errorf("failed to decode group: %w", err)
	}
	return group, nil
}

// Groups lists groups matching pm.
func (s *SDK) Groups(ctx context.Context, pm PageMetadata, token string) (GroupsPage, error) {
	reqURL := s.withQueryParams(s.config.GroupsURL, groupsEndpoint, pm)
	return s.groupsPage(ctx, reqURL, token)
}

// Children lists the subtree under the given group, pm.Level deep.
func (s *SDK) Children(ctx context.Context, id string, pm PageMetadata, token string) (GroupsPage, error) {
	endpoint := fmt.Sprintf("%s/%s/children", groupsEndpoint, url.PathEscape(id))
	reqURL := s.withQueryParams(s.config.GroupsURL, endpoint, pm)
	return s.groupsPage(ctx, reqURL, token)
}

// Parents lists the ancestors of the given group, pm.Level high.
func (s *SDK) Parents(ctx context.Context, id string, pm PageMetadata, token string) (GroupsPage, error) {
	endpoint := fmt.Sprintf("%s/%s/parents", groupsEndpoint, url.PathEscape(id))
	reqURL := s.withQueryParams(s.config.GroupsURL, endpoint, pm)
	return s.groupsPage(ctx, reqURL, token)
}

func (s *SDK) groupsPage(ctx context.Context, reqURL, token string) (GroupsPage, error) {
	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return GroupsPage{}, err
	}

	var res groupsPageRes
	if err := json.Unmarshal(body, &res); err != nil {
		return GroupsPage{}, fmt.Errorf("failed to decode groups page: %w", err)
	}
	return GroupsPage{
		PageMetadata: PageMetadata{Total: res.Total, Offset: res.Offset, Limit: res.Limit},
		Groups:       res.Groups,
	}, nil
}

// UpdateGroup updates a group's name, description and metadata.
func (s *SDK) UpdateGroup(ctx context.Context, group Group, token string) (Group, error) {
	data, err := json.Marshal(group)
	if err != nil {
		return Group{}, fmt.Errorf("failed to marshal group: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s", s.config.GroupsURL, groupsEndpoint, url.PathEscape(group.ID))

	_, body, err := s.processRequest(ctx, http.MethodPut, reqURL, token, data, http.StatusOK)
	if err != nil {
		return Group{}, err
	}

	var updated Group
	if err := json.Unmarshal(body, &updated); err != nil {
		return Group{}, fmt.Errorf("failed to decode group: %w", err)
	}
	return updated, nil
}

// EnableGroup moves a group to the enabled state.
func (s *SDK) EnableGroup(ctx context.Context, id, token string) (Group, error) {
	return s.changeGroupStatus(ctx, id, "enable", token)
}

// DisableGroup moves a group to the disabled state.
func (s *SDK) DisableGroup(ctx context.Context, id, token string) (Group, error) {
	return s.changeGroupStatus(ctx, id, "disable", token)
}

func (s *SDK) changeGroupStatus(ctx context.Context, id, action, token string) (Group, error) {
	reqURL := fmt.Sprintf("%s/%s/%s/%s", s.config.GroupsURL, groupsEndpoint, url.PathEscape(id), action)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return Group{}, err
	}

	var group Group
	if err := json.Unmarshal(body, &group); err != nil {
		return Group{}, fmt.Errorf("failed to decode group: %w", err)
	}
	return group, nil
}

// DeleteGroup permanently removes a group.
func (s *SDK) DeleteGroup(ctx context.Context, id, token string) error {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.GroupsURL, groupsEndpoint, url.PathEscape(id))

	_, _, err := s.processRequest(ctx, http.MethodDelete, reqURL, token, nil, http.StatusNoContent)
	return err
}
