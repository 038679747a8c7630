package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	parent := uuid.NewString()

	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/groups", r.URL.Path)

		var got Group
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, parent, got.ParentID)

		got.ID = uuid.NewString()
		got.Level = 2
		writeJSON(t, w, http.StatusCreated, got)
	}))

	created, err := s.CreateGroup(context.Background(), Group{Name: "floor-2", ParentID: parent}, "token")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 2, created.Level)
}

func TestGroupHierarchy(t *testing.T) {
	tests := []struct {
		name     string
		call     func(s *SDK) (GroupsPage, error)
		wantPath string
	}{
		{
			name: "children",
			call: func(s *SDK) (GroupsPage, error) {
				return s.Children(context.Background(), "g1", PageMetadata{Level: 2}, "token")
			},
			wantPath: "/groups/g1/children",
		},
		{
			name: "parents",
			call: func(s *SDK) (GroupsPage, error) {
				return s.Parents(context.Background(), "g1", PageMetadata{Level: 2}, "token")
			},
			wantPath: "/groups/g1/parents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, "2", r.URL.Query().Get("level"))

				writeJSON(t, w, http.StatusOK, groupsPageRes{
					pageRes: pageRes{Total: 1},
					Groups:  []Group{{ID: "g2", ParentID: "g1"}},
				})
			}))

			page, err := tt.call(s)
			require.NoError(t, err)
			require.Len(t, page.Groups, 1)
		})
	}
}

func TestGroupStatusAndDelete(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/groups/g1/enable":
			writeJSON(t, w, http.StatusOK, Group{ID: "g1", Status: "enabled"})
		case "/groups/g1":
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	enabled, err := s.EnableGroup(context.Background(), "g1", "token")
	require.NoError(t, err)
	assert.Equal(t, "enabled", enabled.Status)

	require.NoError(t, s.DeleteGroup(context.Background(), "g1", "token"))
}
