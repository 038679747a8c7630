package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User mirrors the platform's user schema.
type User struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	Credentials Credentials `json:"credentials,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Metadata    Metadata    `json:"metadata,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at,omitempty"`
	Status      string      `json:"status,omitempty"`
	Role        string      `json:"role,omitempty"`
}

// Credentials hold a user's identity (email) and secret. The secret is
// never returned by the platform.
type Credentials struct {
	Identity string `json:"identity,omitempty"`
	Secret   string `json:"secret,omitempty"`
}

// Login is the payload for CreateToken.
type Login struct {
	Identity string `json:"identity"`
	Secret   string `json:"secret"`
}

// Token is an issued access/refresh token pair.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	AccessType   string `json:"access_type,omitempty"`
}

// Session describes the locally inspectable part of an access token.
type Session struct {
	Subject   string    `json:"subject,omitempty"`
	Issuer    string    `json:"issuer,omitempty"`
	IssuedAt  time.Time `json:"issued_at,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// CreateUser registers a new user. The token may be empty on deployments
// that allow self-registration.
func (s *SDK) CreateUser(ctx context.Context, user User, token string) (User, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return User{}, fmt.Errorf("failed to marshal user: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s", s.config.UsersURL, usersEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusCreated)
	if err != nil {
		return User{}, err
	}

	var created User
	if err := json.Unmarshal(body, &created); err != nil {
		return User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return created, nil
}

// CreateToken logs a user in and returns an access/refresh token pair.
func (s *SDK) CreateToken(ctx context.Context, login Login) (Token, error) {
	data, err := json.Marshal(login)
	if err != nil {
		return Token{}, fmt.Errorf("failed to marshal login: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/tokens/issue", s.config.UsersURL, usersEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, "", data, http.StatusCreated)
	if err != nil {
		return Token{}, err
	}

	var res tokenRes
	if err := json.Unmarshal(body, &res); err != nil {
		return Token{}, fmt.Errorf("failed to decode token: %w", err)
	}
	return Token(res), nil
}

// RefreshToken exchanges a refresh token for a fresh pair.
func (s *SDK) RefreshToken(ctx context.Context, refreshToken string) (Token, error) {
	reqURL := fmt.Sprintf("%s/%s/tokens/refresh", s.config.UsersURL, usersEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, refreshToken, nil, http.StatusCreated)
	if err != nil {
		return Token{}, err
	}

	var res tokenRes
	if err := json.Unmarshal(body, &res); err != nil {
		return Token{}, fmt.Errorf("failed to decode token: %w", err)
	}
	return Token(res), nil
}

// User retrieves a user by ID.
func (s *SDK) User(ctx context.Context, id, token string) (User, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.UsersURL, usersEndpoint, url.PathEscape(id))

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}

// UserProfile retrieves the user the token belongs to.
func (s *SDK) UserProfile(ctx context.Context, token string) (User, error) {
	reqURL := fmt.Sprintf("%s/%s/profile", s.config.UsersURL, usersEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}

// Users lists users matching pm.
func (s *SDK) Users(ctx context.Context, pm PageMetadata, token string) (UsersPage, error) {
	reqURL := s.withQueryParams(s.config.UsersURL, usersEndpoint, pm)

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return UsersPage{}, err
	}

	var res usersPageRes
	if err := json.Unmarshal(body, &res); err != nil {
		return UsersPage{}, fmt.Errorf("failed to decode users page: %w", err)
	}
	return UsersPage{
		PageMetadata: PageMetadata{Total: res.Total, Offset: res.Offset, Limit: res.Limit},
		Users:        res.Users,
	}, nil
}

// UpdateUser updates a user's name and metadata.
func (s *SDK) UpdateUser(ctx context.Context, user User, token string) (User, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return User{}, fmt.Errorf("failed to marshal user: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s", s.config.UsersURL, usersEndpoint, url.PathEscape(user.ID))

	_, body, err := s.processRequest(ctx, http.MethodPatch, reqURL, token, data, http.StatusOK)
	if err != nil {
		return User{}, err
	}

	var updated User
	if err := json.Unmarshal(body, &updated); err != nil {
		return User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return updated, nil
}

// UpdateUserTags replaces a user's tags.
func (s *SDK) UpdateUserTags(ctx context.Context, user User, token string) (User, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return User{}, fmt.Errorf("failed to marshal user: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s/tags", s.config.UsersURL, usersEndpoint, url.PathEscape(user.ID))

	_, body, err := s.processRequest(ctx, http.MethodPatch, reqURL, token, data, http.StatusOK)
	if err != nil {
		return User{}, err
	}

	var updated User
	if err := json.Unmarshal(body, &updated); err != nil {
		return User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return updated, nil
}

// UpdateUserIdentity changes a user's identity (email).
func (s *SDK) UpdateUserIdentity(ctx context.Context, id, identity, token string) (User, error) {
	payload := map[string]string{"identity": identity}
	data, err := json.Marshal(payload)
	if err != nil {
		return User{}, fmt.Errorf("failed to marshal identity: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s/identity", s.config.UsersURL, usersEndpoint, url.PathEscape(id))

	_, body, err := s.processRequest(ctx, http.MethodPatch, reqURL, token, data, http.StatusOK)
	if err != nil {
		return User{}, err
	}

	var updated User
	if err := json.Unmarshal(body, &updated); err != nil {
		return User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return updated, nil
}

// UpdatePassword changes the token owner's secret.
func (s *SDK) UpdatePassword(ctx context.Context, oldSecret, newSecret, token string) (User, error) {
	payload := map[string]string{
		"old_secret": oldSecret,
		"new_secret": newSecret,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return User{}, fmt.Errorf("failed to marshal secrets: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/secret", s.config.UsersURL, usersEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPatch, reqURL, token, data, http.StatusOK)
	if err != nil {
		return User{}, err
	}

	var updated User
	if err := json.Unmarshal(body, &updated); err != nil {
		return User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return updated, nil
}

// ResetPasswordRequest asks the platform to mail a reset link. The host
// is echoed back in the link the user receives.
func (s *SDK) ResetPasswordRequest(ctx context.Context, email, host string) error {
	payload := map[string]string{"email": email, "host": host}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reset request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/password/reset-request", s.config.UsersURL)

	_, _, err = s.processRequest(ctx, http.MethodPost, reqURL, "", data, http.StatusCreated)
	return err
}

// ResetPassword completes a password reset using the emailed token.
func (s *SDK) ResetPassword(ctx context.Context, password, confirm, token string) error {
	payload := map[string]string{
		"password":         password,
		"confirm_password": confirm,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reset: %w", err)
	}

	reqURL := fmt.Sprintf("%s/password/reset", s.config.UsersURL)

	_, _, err = s.processRequest(ctx, http.MethodPut, reqURL, token, data, http.StatusCreated)
	return err
}

// EnableUser moves a user to the enabled state.
func (s *SDK) EnableUser(ctx context.Context, id, token string) (User, error) {
	return s.changeUserStatus(ctx, id, "enable", token)
}

// DisableUser moves a user to the disabled state.
func (s *SDK) DisableUser(ctx context.Context, id, token string) (User, error) {
	return s.changeUserStatus(ctx, id, "disable", token)
}

func (s *SDK) changeUserStatus(ctx context.Context, id, action, token string) (User, error) {
	reqURL := fmt.Sprintf("%s/%s/%s/%s", s.config.UsersURL, usersEndpoint, url.PathEscape(id), action)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}

// DeleteUser permanently removes a user.
func (s *SDK) DeleteUser(ctx context.Context, id, token string) error {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.UsersURL, usersEndpoint, url.PathEscape(id))

	_, _, err := s.processRequest(ctx, http.MethodDelete, reqURL, token, nil, http.StatusNoContent)
	return err
}

// SessionFromToken decodes the registered claims of an access token
// without verifying its signature. Verification is the platform's job;
// this exists so callers can display token ownership and expiry.
func SessionFromToken(token string) (Session, error) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Session{}, fmt.Errorf("failed to parse token: %w", err)
	}

	session := Session{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// UsersPage is one page of users.
type UsersPage struct {
	PageMetadata
	Users []User `json:"users"`
}
