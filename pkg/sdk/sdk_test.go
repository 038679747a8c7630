package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSDK starts an httptest server and returns an SDK with every
// service URL pointed at it.
func newTestSDK(t *testing.T, handler http.Handler) (*SDK, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewSDK(&Config{
		UsersURL:       srv.URL,
		ThingsURL:      srv.URL,
		ChannelsURL:    srv.URL,
		GroupsURL:      srv.URL,
		BootstrapURL:   srv.URL,
		CertsURL:       srv.URL,
		HTTPAdapterURL: srv.URL,
		ReaderURL:      srv.URL,
		JournalURL:     srv.URL,
	})
	require.NoError(t, err)

	return s, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", CTJSON)
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantError bool
	}{
		{
			name:   "valid config",
			config: &Config{UsersURL: "https://meshline.example.com"},
		},
		{
			name:   "empty config falls back to defaults",
			config: nil,
		},
		{
			name:      "malformed URL",
			config:    &Config{ThingsURL: "not a url"},
			wantError: true,
		},
		{
			name:      "negative timeout",
			config:    &Config{UsersURL: "https://meshline.example.com", Timeout: -time.Second},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSDK(tt.config)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSDKDefaults(t *testing.T) {
	s, err := NewSDK(&Config{UsersURL: "https://meshline.example.com"})
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, s.config.Timeout)
	require.NotNil(t, s.config.TLSVerify)
	assert.True(t, *s.config.TLSVerify)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "message field wins",
			status:  http.StatusConflict,
			body:    `{"error": "conflict", "message": "entity already exists"}`,
			wantMsg: "entity already exists",
		},
		{
			name:    "error field fallback",
			status:  http.StatusUnauthorized,
			body:    `{"error": "missing or invalid credentials"}`,
			wantMsg: "missing or invalid credentials",
		},
		{
			name:    "non-JSON body kept verbatim",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			wantMsg: "upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := s.Thing(context.Background(), "id", "token")
			require.Error(t, err)

			var sdkErr *Error
			require.ErrorAs(t, err, &sdkErr)
			assert.Equal(t, tt.status, sdkErr.StatusCode)
			assert.Equal(t, tt.wantMsg, sdkErr.Msg)
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "entity already exists"}`))
	}))

	_, err := s.Thing(context.Background(), "id", "token")
	require.Error(t, err)

	var sdkErr *Error
	require.ErrorAs(t, err, &sdkErr)
	_, ok := err.(interface{ Unwrap() error })
	assert.True(t, ok, "service errors must support errors.Unwrap")
	assert.Nil(t, sdkErr.Unwrap())

	cause := errors.New("connection reset")
	withCause := &Error{StatusCode: http.StatusBadGateway, Msg: "upstream down", Err: cause}
	assert.ErrorIs(t, withCause, cause)
	assert.Contains(t, withCause.Error(), "upstream down")
	assert.Contains(t, withCause.Error(), "connection reset")
}

func TestTransportErrorIsNotServiceError(t *testing.T) {
	s, srv := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := s.Thing(context.Background(), "id", "token")
	require.Error(t, err)

	var sdkErr *Error
	assert.False(t, errors.As(err, &sdkErr))
}

func TestPageMetadataQuery(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	pm := PageMetadata{
		Offset:    20,
		Limit:     10,
		Name:      "temp",
		Status:    "enabled",
		Operation: "thing.update",
		From:      from,
		To:        to,
		Direction: "desc",
	}

	q := pm.query()
	assert.Equal(t, "20", q.Get("offset"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "temp", q.Get("name"))
	assert.Equal(t, "enabled", q.Get("status"))
	assert.Equal(t, "thing.update", q.Get("operation"))
	assert.Equal(t, "1709251200", q.Get("from"))
	assert.Equal(t, "1709337600", q.Get("to"))
	assert.Equal(t, "desc", q.Get("dir"))

	assert.Empty(t, PageMetadata{}.query())
}
