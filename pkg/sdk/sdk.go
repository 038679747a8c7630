// Package sdk is a Go client for the Meshline platform HTTP API.
//
// Every exported method is a thin, one-to-one wrapper around a single
// Meshline REST endpoint: it builds the URL, attaches the credential and
// JSON body, issues one request, and maps the response (or the service's
// error envelope) into a typed value. All validation, uniqueness and
// lifecycle rules live in the platform; the SDK holds no state beyond its
// immutable configuration.
//
// Basic usage:
//
//	s, err := sdk.NewSDK(&sdk.Config{
//	    UsersURL:  "https://meshline.example.com",
//	    ThingsURL: "https://meshline.example.com",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := s.CreateToken(ctx, sdk.Login{Identity: "admin@example.com", Secret: "secret"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	things, err := s.Things(ctx, sdk.PageMetadata{Offset: 0, Limit: 10}, token.AccessToken)
package sdk

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
)

const (
	// CTJSON is the content type attached to every request body.
	CTJSON = "application/json"

	// BearerPrefix prefixes user access tokens in the Authorization header.
	BearerPrefix = "Bearer "

	// ThingPrefix prefixes thing secrets when publishing messages.
	ThingPrefix = "Thing "

	usersEndpoint     = "users"
	thingsEndpoint    = "things"
	channelsEndpoint  = "channels"
	groupsEndpoint    = "groups"
	certsEndpoint     = "certs"
	bootstrapEndpoint = "things/configs"
	journalEndpoint   = "journal"
	healthEndpoint    = "health"
)

// Config contains the per-service base URLs and transport settings for an
// SDK instance. Meshline deployments usually front every service behind a
// single host, in which case all URLs are the same.
type Config struct {
	// Base URLs of the individual platform services.
	UsersURL    string `hcl:"users_url,optional" json:"usersUrl,omitempty"`
	ThingsURL   string `hcl:"things_url,optional" json:"thingsUrl,omitempty"`
	ChannelsURL string `hcl:"channels_url,optional" json:"channelsUrl,omitempty"`
	GroupsURL   string `hcl:"groups_url,optional" json:"groupsUrl,omitempty"`

	BootstrapURL string `hcl:"bootstrap_url,optional" json:"bootstrapUrl,omitempty"`
	CertsURL     string `hcl:"certs_url,optional" json:"certsUrl,omitempty"`

	// HTTPAdapterURL is the message ingestion endpoint, ReaderURL the
	// message query endpoint and JournalURL the audit log endpoint.
	HTTPAdapterURL string `hcl:"http_adapter_url,optional" json:"httpAdapterUrl,omitempty"`
	ReaderURL      string `hcl:"reader_url,optional" json:"readerUrl,omitempty"`
	JournalURL     string `hcl:"journal_url,optional" json:"journalUrl,omitempty"`

	// TLSVerify controls TLS certificate verification. Disable only for
	// development against self-signed deployments.
	TLSVerify *bool `hcl:"tls_verify,optional" json:"tlsVerify,omitempty"`

	// Timeout applies to every request. Default: 30 seconds.
	Timeout time.Duration `hcl:"-" json:"timeout,omitempty"`

	// Logger receives request/response debug lines. Optional.
	Logger hclog.Logger `hcl:"-" json:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		TLSVerify: &tlsVerify,
		Timeout:   30 * time.Second,
	}
}

// Validate checks that every configured URL is well formed. URLs left
// empty are allowed; calling a method of a service whose URL is not set
// fails at request time instead.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.UsersURL, is.RequestURL),
		validation.Field(&c.ThingsURL, is.RequestURL),
		validation.Field(&c.ChannelsURL, is.RequestURL),
		validation.Field(&c.GroupsURL, is.RequestURL),
		validation.Field(&c.BootstrapURL, is.RequestURL),
		validation.Field(&c.CertsURL, is.RequestURL),
		validation.Field(&c.HTTPAdapterURL, is.RequestURL),
		validation.Field(&c.ReaderURL, is.RequestURL),
		validation.Field(&c.JournalURL, is.RequestURL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

func (c *Config) newHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}

// SDK is a client for the Meshline platform. It is safe for concurrent
// use; every call is an independent, stateless request.
type SDK struct {
	config *Config
	client *http.Client
	log    hclog.Logger
}

// NewSDK creates an SDK instance from the given configuration.
func NewSDK(cfg *Config) (*SDK, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.TLSVerify == nil {
		cfg.TLSVerify = DefaultConfig().TLSVerify
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SDK config: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}

	return &SDK{
		config: cfg,
		client: cfg.newHTTPClient(),
		log:    log,
	}, nil
}

// doRequest issues exactly one HTTP request and returns the response
// headers and body. A status other than expected is mapped into *Error
// carrying the service's message; transport and read failures propagate
// wrapped and unchanged in kind.
func (s *SDK) doRequest(ctx context.Context, method, reqURL, auth string, data []byte, expected int) (http.Header, []byte, error) {
	var bodyReader io.Reader
	if data != nil {
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", CTJSON)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if data != nil {
		req.Header.Set("Content-Type", CTJSON)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	s.log.Debug("request completed",
		"method", method, "url", reqURL, "status", resp.StatusCode)

	if resp.StatusCode != expected {
		return nil, nil, decodeError(resp.StatusCode, respBody)
	}

	return resp.Header, respBody, nil
}

// processRequest is doRequest with bearer-token authentication, used by
// every user-facing operation.
func (s *SDK) processRequest(ctx context.Context, method, reqURL, token string, data []byte, expected int) (http.Header, []byte, error) {
	auth := ""
	if token != "" {
		auth = BearerPrefix + token
	}
	return s.doRequest(ctx, method, reqURL, auth, data, expected)
}

// withQueryParams builds a list URL from a service base URL, an endpoint
// path and the set fields of pm.
func (s *SDK) withQueryParams(baseURL, endpoint string, pm PageMetadata) string {
	u, _ := url.Parse(fmt.Sprintf("%s/%s", baseURL, endpoint))
	q := pm.query()
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// PageMetadata carries the paging and filtering parameters shared by the
// platform's list endpoints. Zero-valued fields are omitted from the
// query string.
type PageMetadata struct {
	Total     uint64    `json:"total,omitempty"`
	Offset    uint64    `json:"offset,omitempty"`
	Limit     uint64    `json:"limit,omitempty"`
	Level     uint64    `json:"level,omitempty"`
	Name      string    `json:"name,omitempty"`
	Identity  string    `json:"identity,omitempty"`
	Tag       string    `json:"tag,omitempty"`
	Status    string    `json:"status,omitempty"`
	State     string    `json:"state,omitempty"`
	Topic     string    `json:"topic,omitempty"`
	Subtopic  string    `json:"subtopic,omitempty"`
	Publisher string    `json:"publisher,omitempty"`
	Operation string    `json:"operation,omitempty"`
	From      time.Time `json:"from,omitempty"`
	To        time.Time `json:"to,omitempty"`
	Direction string    `json:"direction,omitempty"`
}

func (pm PageMetadata) query() url.Values {
	q := url.Values{}
	if pm.Offset != 0 {
		q.Set("offset", strconv.FormatUint(pm.Offset, 10))
	}
	if pm.Limit != 0 {
		q.Set("limit", strconv.FormatUint(pm.Limit, 10))
	}
	if pm.Level != 0 {
		q.Set("level", strconv.FormatUint(pm.Level, 10))
	}
	if pm.Name != "" {
		q.Set("name", pm.Name)
	}
	if pm.Identity != "" {
		q.Set("identity", pm.Identity)
	}
	if pm.Tag != "" {
		q.Set("tag", pm.Tag)
	}
	if pm.Status != "" {
		q.Set("status", pm.Status)
	}
	if pm.State != "" {
		q.Set("state", pm.State)
	}
	if pm.Topic != "" {
		q.Set("topic", pm.Topic)
	}
	if pm.Subtopic != "" {
		q.Set("subtopic", pm.Subtopic)
	}
	if pm.Publisher != "" {
		q.Set("publisher", pm.Publisher)
	}
	if pm.Operation != "" {
		q.Set("operation", pm.Operation)
	}
	if !pm.From.IsZero() {
		q.Set("from", strconv.FormatInt(pm.From.Unix(), 10))
	}
	if !pm.To.IsZero() {
		q.Set("to", strconv.FormatInt(pm.To.Unix(), 10))
	}
	if pm.Direction != "" {
		q.Set("dir", pm.Direction)
	}
	return q
}
