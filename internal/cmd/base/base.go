// Package base carries the plumbing shared by every meshline CLI
// command: flag handling, configuration loading, SDK construction and
// result rendering.
package base

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/meshline/meshline-go/internal/config"
	"github.com/meshline/meshline-go/pkg/sdk"
)

// Command is embedded by every subcommand.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger

	// FS is the filesystem commands read and write through. Tests swap
	// in an afero.MemMapFs.
	FS afero.Fs

	flagConfig string
	flagToken  string
	flagOutput string
}

// FlagSet returns a flag set pre-populated with the global flags. Every
// command extends it with its own flags before parsing.
func (c *Command) FlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(os.Stderr)

	fs.StringVar(&c.flagConfig, "config", defaultConfigPath(), "Path to the configuration file")
	fs.StringVar(&c.flagToken, "token", "", "Access token, overrides the configured one")
	fs.StringVar(&c.flagOutput, "format", "", "Output format: json or yaml")

	return fs
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".meshline.hcl"
	}
	return filepath.Join(home, ".meshline.hcl")
}

// Config loads the CLI configuration honoring the global flags.
func (c *Command) Config() (*config.Config, error) {
	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		return nil, err
	}
	if c.flagToken != "" {
		cfg.Token = c.flagToken
	}
	if c.flagOutput != "" {
		cfg.Output = c.flagOutput
	}
	if lvl := hclog.LevelFromString(cfg.LogLevel); lvl != hclog.NoLevel {
		c.Log.SetLevel(lvl)
	}
	return cfg, nil
}

// SDK loads the configuration and builds an SDK from it.
func (c *Command) SDK() (*sdk.SDK, *config.Config, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, nil, err
	}

	sdkCfg := cfg.SDKConfig()
	sdkCfg.Logger = c.Log

	s, err := sdk.NewSDK(sdkCfg)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// Output renders v in the configured format and prints it. It returns
// the command exit code.
func (c *Command) Output(cfg *config.Config, v interface{}) int {
	var (
		out []byte
		err error
	)
	switch cfg.Output {
	case "yaml":
		out, err = yaml.Marshal(v)
	default:
		out, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return c.Error(fmt.Errorf("failed to render output: %w", err))
	}

	c.UI.Output(string(out))
	return 0
}

// Error logs err and reports it to the user.
func (c *Command) Error(err error) int {
	c.Log.Error("command failed", "error", err)
	c.UI.Error(err.Error())
	return 1
}

// ParseTime turns a human time expression ("2024-03-01", "3/1/2024
// 10:00", RFC3339, unix seconds...) into a time.Time.
func ParseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	ts, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", value, err)
	}
	return ts, nil
}
