// Package config loads the meshline CLI configuration. Settings come
// from an HCL file and can be overridden per-setting with MESHLINE_*
// environment variables.
package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/meshline/meshline-go/pkg/sdk"
)

// Config is the CLI configuration.
//
// Example (~/.meshline.hcl):
//
//	host_url = "https://meshline.example.com"
//	token    = "..."
//	output   = "yaml"
type Config struct {
	// HostURL is used for every service whose URL is not set explicitly.
	HostURL string `hcl:"host_url,optional"`

	UsersURL       string `hcl:"users_url,optional"`
	ThingsURL      string `hcl:"things_url,optional"`
	ChannelsURL    string `hcl:"channels_url,optional"`
	GroupsURL      string `hcl:"groups_url,optional"`
	BootstrapURL   string `hcl:"bootstrap_url,optional"`
	CertsURL       string `hcl:"certs_url,optional"`
	HTTPAdapterURL string `hcl:"http_adapter_url,optional"`
	ReaderURL      string `hcl:"reader_url,optional"`
	JournalURL     string `hcl:"journal_url,optional"`

	// Token is the access token attached to every request.
	Token string `hcl:"token,optional"`

	// Output selects the rendering of command results: "json" or "yaml".
	Output string `hcl:"output,optional"`

	// LogLevel steers the CLI logger ("trace" through "off").
	LogLevel string `hcl:"log_level,optional"`

	TLSVerify *bool `hcl:"tls_verify,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		HostURL: "http://localhost",
		Output:  "json",
	}
}

// Load reads the configuration file at path (skipped when path is empty
// or the file does not exist), overlays environment variables, fills
// service URLs from HostURL and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	overlayEnv(cfg)
	cfg.applyHostURL()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func overlayEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.HostURL, "MESHLINE_HOST_URL")
	set(&cfg.UsersURL, "MESHLINE_USERS_URL")
	set(&cfg.ThingsURL, "MESHLINE_THINGS_URL")
	set(&cfg.ChannelsURL, "MESHLINE_CHANNELS_URL")
	set(&cfg.GroupsURL, "MESHLINE_GROUPS_URL")
	set(&cfg.BootstrapURL, "MESHLINE_BOOTSTRAP_URL")
	set(&cfg.CertsURL, "MESHLINE_CERTS_URL")
	set(&cfg.HTTPAdapterURL, "MESHLINE_HTTP_ADAPTER_URL")
	set(&cfg.ReaderURL, "MESHLINE_READER_URL")
	set(&cfg.JournalURL, "MESHLINE_JOURNAL_URL")
	set(&cfg.Token, "MESHLINE_TOKEN")
	set(&cfg.Output, "MESHLINE_OUTPUT")
	set(&cfg.LogLevel, "MESHLINE_LOG_LEVEL")
}

func (c *Config) applyHostURL() {
	fill := func(dst *string) {
		if *dst == "" {
			*dst = c.HostURL
		}
	}

	fill(&c.UsersURL)
	fill(&c.ThingsURL)
	fill(&c.ChannelsURL)
	fill(&c.GroupsURL)
	fill(&c.BootstrapURL)
	fill(&c.CertsURL)
	fill(&c.HTTPAdapterURL)
	fill(&c.ReaderURL)
	fill(&c.JournalURL)
}

// Validate checks the CLI-level settings. Service URLs are validated by
// the SDK on construction.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HostURL, validation.Required),
		validation.Field(&c.Output, validation.In("json", "yaml")),
	)
}

// SDKConfig translates the CLI configuration into an SDK configuration.
func (c *Config) SDKConfig() *sdk.Config {
	return &sdk.Config{
		UsersURL:       c.UsersURL,
		ThingsURL:      c.ThingsURL,
		ChannelsURL:    c.ChannelsURL,
		GroupsURL:      c.GroupsURL,
		BootstrapURL:   c.BootstrapURL,
		CertsURL:       c.CertsURL,
		HTTPAdapterURL: c.HTTPAdapterURL,
		ReaderURL:      c.ReaderURL,
		JournalURL:     c.JournalURL,
		TLSVerify:      c.TLSVerify,
	}
}
