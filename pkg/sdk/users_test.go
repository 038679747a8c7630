package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	user := User{
		Name: "jane",
		Credentials: Credentials{
			Identity: "jane@example.com",
			Secret:   "12345678",
		},
	}
	created := user
	created.ID = uuid.NewString()
	created.Status = "enabled"

	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		assert.Equal(t, CTJSON, r.Header.Get("Content-Type"))

		var got User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, user.Credentials.Identity, got.Credentials.Identity)

		writeJSON(t, w, http.StatusCreated, created)
	}))

	got, err := s.CreateUser(context.Background(), user, "admin-token")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "enabled", got.Status)
}

func TestCreateToken(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/tokens/issue", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var login Login
		require.NoError(t, json.NewDecoder(r.Body).Decode(&login))
		assert.Equal(t, "jane@example.com", login.Identity)

		writeJSON(t, w, http.StatusCreated, tokenRes{
			AccessToken:  "access",
			RefreshToken: "refresh",
			AccessType:   "Bearer",
		})
	}))

	token, err := s.CreateToken(context.Background(), Login{Identity: "jane@example.com", Secret: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "refresh", token.RefreshToken)
}

func TestRefreshToken(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/tokens/refresh", r.URL.Path)
		assert.Equal(t, "Bearer old-refresh", r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusCreated, tokenRes{AccessToken: "new-access", RefreshToken: "new-refresh"})
	}))

	token, err := s.RefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", token.AccessToken)
}

func TestUsersList(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "jane", r.URL.Query().Get("name"))

		writeJSON(t, w, http.StatusOK, usersPageRes{
			pageRes: pageRes{Total: 1, Limit: 10},
			Users:   []User{{ID: uuid.NewString(), Name: "jane"}},
		})
	}))

	page, err := s.Users(context.Background(), PageMetadata{Limit: 10, Name: "jane"}, "token")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), page.Total)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "jane", page.Users[0].Name)
}

func TestUpdatePassword(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/secret", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "old", payload["old_secret"])
		assert.Equal(t, "new", payload["new_secret"])

		writeJSON(t, w, http.StatusOK, User{ID: "u1"})
	}))

	_, err := s.UpdatePassword(context.Background(), "old", "new", "token")
	require.NoError(t, err)
}

func TestUserStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		call     func(s *SDK) (User, error)
		wantPath string
	}{
		{
			name:     "enable",
			call:     func(s *SDK) (User, error) { return s.EnableUser(context.Background(), "u1", "token") },
			wantPath: "/users/u1/enable",
		},
		{
			name:     "disable",
			call:     func(s *SDK) (User, error) { return s.DisableUser(context.Background(), "u1", "token") },
			wantPath: "/users/u1/disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				writeJSON(t, w, http.StatusOK, User{ID: "u1"})
			}))

			user, err := tt.call(s)
			require.NoError(t, err)
			assert.Equal(t, "u1", user.ID)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	s, _ := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/u1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, s.DeleteUser(context.Background(), "u1", "token"))
}

func TestSessionFromToken(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "meshline.users",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)

	session, err := SessionFromToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", session.Subject)
	assert.Equal(t, "meshline.users", session.Issuer)
	assert.Equal(t, now.Add(time.Hour).Unix(), session.ExpiresAt.Unix())

	_, err = SessionFromToken("not-a-jwt")
	assert.Error(t, err)
}
