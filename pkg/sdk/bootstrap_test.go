package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBootstrap(t *testing.T) {
	id := uuid.NewString()
	cfg := BootstrapConfig{
		ThingID:     "t1",
		ExternalID:  "09:6:0:sb:sa",
		ExternalKey: "key",
		Name:        "gateway",
	}

	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/things/configs", r.URL.Path)

		var got BootstrapConfig
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, cfg.ExternalID, got.ExternalID)

		w.Header().Set("Location", fmt.Sprintf("/things/configs/%s", id))
		w.WriteHeader(http.StatusCreated)
	}))

	got, err := s.AddBootstrap(context.Background(), cfg, "token")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestAddBootstrapMissingLocation(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	id, err := s.AddBootstrap(context.Background(), BootstrapConfig{ThingID: "t1"}, "token")
	assert.Error(t, err)
	assert.Empty(t, id)
}

func TestBootstrapWithExternalKey(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/things/bootstrap/09:6:0:sb:sa", r.URL.Path)
		assert.Equal(t, "Thing external-key", r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusOK, BootstrapConfig{
			ThingID:  "t1",
			ThingKey: "secret",
			Channels: []Channel{{ID: "c1"}},
		})
	}))

	cfg, err := s.Bootstrap(context.Background(), "09:6:0:sb:sa", "external-key")
	require.NoError(t, err)
	assert.Equal(t, "t1", cfg.ThingID)
	require.Len(t, cfg.Channels, 1)
}

func TestUpdateBootstrapConnection(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/configs/connections/b1", r.URL.Path)

		var got bootstrapUpdateReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, []string{"c1", "c2"}, got.Channels)

		w.WriteHeader(http.StatusOK)
	}))

	err := s.UpdateBootstrapConnection(context.Background(), "b1", []string{"c1", "c2"}, "token")
	require.NoError(t, err)
}

func TestWhitelist(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/things/state/t1", r.URL.Path)

		var payload map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 1, payload["state"])

		w.WriteHeader(http.StatusCreated)
	}))

	require.NoError(t, s.Whitelist(context.Background(), "t1", 1, "token"))
}

func TestRemoveBootstrap(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/things/configs/b1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, s.RemoveBootstrap(context.Background(), "b1", "token"))
}
