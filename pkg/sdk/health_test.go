package sdk

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusOK, Health{Status: "pass", Version: "0.14.0"})
	}))

	health, err := s.Health(context.Background(), "things")
	require.NoError(t, err)
	assert.Equal(t, "pass", health.Status)

	_, err = s.Health(context.Background(), "nonexistent")
	assert.Error(t, err)
}
