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

func TestCreateChannel(t *testing.T) {
	channel := Channel{Name: "telemetry", Description: "device telemetry"}
	id := uuid.NewString()

	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/channels", r.URL.Path)

		var got Channel
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "telemetry", got.Name)

		got.ID = id
		writeJSON(t, w, http.StatusCreated, got)
	}))

	created, err := s.CreateChannel(context.Background(), channel, "token")
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
}

func TestChannelsByThing(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/things/t1/channels", r.URL.Path)

		writeJSON(t, w, http.StatusOK, channelsPageRes{
			pageRes:  pageRes{Total: 1},
			Channels: []Channel{{ID: "c1", Name: "telemetry"}},
		})
	}))

	page, err := s.ChannelsByThing(context.Background(), "t1", PageMetadata{}, "token")
	require.NoError(t, err)
	require.Len(t, page.Channels, 1)
	assert.Equal(t, "c1", page.Channels[0].ID)
}

func TestUpdateChannel(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/channels/c1", r.URL.Path)

		var got Channel
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusOK, got)
	}))

	updated, err := s.UpdateChannel(context.Background(), Channel{ID: "c1", Name: "renamed"}, "token")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}

func TestChannelStatusAndDelete(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/channels/c1/disable":
			writeJSON(t, w, http.StatusOK, Channel{ID: "c1", Status: "disabled"})
		case "/channels/c1":
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	disabled, err := s.DisableChannel(context.Background(), "c1", "token")
	require.NoError(t, err)
	assert.Equal(t, "disabled", disabled.Status)

	require.NoError(t, s.DeleteChannel(context.Background(), "c1", "token"))
}
