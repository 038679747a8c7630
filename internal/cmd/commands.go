package cmd

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/meshline/meshline-go/internal/cmd/base"
	"github.com/meshline/meshline-go/internal/cmd/commands/bootstrap"
	"github.com/meshline/meshline-go/internal/cmd/commands/certs"
	"github.com/meshline/meshline-go/internal/cmd/commands/channels"
	"github.com/meshline/meshline-go/internal/cmd/commands/groups"
	"github.com/meshline/meshline-go/internal/cmd/commands/health"
	"github.com/meshline/meshline-go/internal/cmd/commands/journal"
	"github.com/meshline/meshline-go/internal/cmd/commands/messages"
	"github.com/meshline/meshline-go/internal/cmd/commands/things"
	"github.com/meshline/meshline-go/internal/cmd/commands/users"
	versioncmd "github.com/meshline/meshline-go/internal/cmd/commands/version"
	"github.com/meshline/meshline-go/internal/cmd/commands/whoami"
)

// Commands is the mapping of all available CLI commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	newBase := func() *base.Command {
		return &base.Command{
			UI:  ui,
			Log: log,
			FS:  afero.NewOsFs(),
		}
	}

	// LogLevel from the environment applies before the config file is
	// even read, so command plumbing can be traced too. The configured
	// log_level is applied later, when a command loads its config.
	if lvl := hclog.LevelFromString(os.Getenv("MESHLINE_LOG_LEVEL")); lvl != hclog.NoLevel {
		log.SetLevel(lvl)
	}

	Commands = map[string]cli.CommandFactory{
		"users": func() (cli.Command, error) {
			return &users.Command{Command: newBase()}, nil
		},
		"users create": func() (cli.Command, error) {
			return &users.CreateCommand{Command: newBase()}, nil
		},
		"users token": func() (cli.Command, error) {
			return &users.TokenCommand{Command: newBase()}, nil
		},
		"users get": func() (cli.Command, error) {
			return &users.GetCommand{Command: newBase()}, nil
		},
		"users list": func() (cli.Command, error) {
			return &users.ListCommand{Command: newBase()}, nil
		},
		"users enable": func() (cli.Command, error) {
			return &users.EnableCommand{Command: newBase()}, nil
		},
		"users disable": func() (cli.Command, error) {
			return &users.DisableCommand{Command: newBase()}, nil
		},
		"things": func() (cli.Command, error) {
			return &things.Command{Command: newBase()}, nil
		},
		"things create": func() (cli.Command, error) {
			return &things.CreateCommand{Command: newBase()}, nil
		},
		"things get": func() (cli.Command, error) {
			return &things.GetCommand{Command: newBase()}, nil
		},
		"things list": func() (cli.Command, error) {
			return &things.ListCommand{Command: newBase()}, nil
		},
		"things connect": func() (cli.Command, error) {
			return &things.ConnectCommand{Command: newBase()}, nil
		},
		"things disconnect": func() (cli.Command, error) {
			return &things.DisconnectCommand{Command: newBase()}, nil
		},
		"channels": func() (cli.Command, error) {
			return &channels.Command{Command: newBase()}, nil
		},
		"channels create": func() (cli.Command, error) {
			return &channels.CreateCommand{Command: newBase()}, nil
		},
		"channels get": func() (cli.Command, error) {
			return &channels.GetCommand{Command: newBase()}, nil
		},
		"channels list": func() (cli.Command, error) {
			return &channels.ListCommand{Command: newBase()}, nil
		},
		"groups": func() (cli.Command, error) {
			return &groups.Command{Command: newBase()}, nil
		},
		"groups create": func() (cli.Command, error) {
			return &groups.CreateCommand{Command: newBase()}, nil
		},
		"groups get": func() (cli.Command, error) {
			return &groups.GetCommand{Command: newBase()}, nil
		},
		"groups list": func() (cli.Command, error) {
			return &groups.ListCommand{Command: newBase()}, nil
		},
		"groups children": func() (cli.Command, error) {
			return &groups.ChildrenCommand{Command: newBase()}, nil
		},
		"certs": func() (cli.Command, error) {
			return &certs.Command{Command: newBase()}, nil
		},
		"certs issue": func() (cli.Command, error) {
			return &certs.IssueCommand{Command: newBase()}, nil
		},
		"certs revoke": func() (cli.Command, error) {
			return &certs.RevokeCommand{Command: newBase()}, nil
		},
		"bootstrap": func() (cli.Command, error) {
			return &bootstrap.Command{Command: newBase()}, nil
		},
		"bootstrap add": func() (cli.Command, error) {
			return &bootstrap.AddCommand{Command: newBase()}, nil
		},
		"bootstrap view": func() (cli.Command, error) {
			return &bootstrap.ViewCommand{Command: newBase()}, nil
		},
		"bootstrap whitelist": func() (cli.Command, error) {
			return &bootstrap.WhitelistCommand{Command: newBase()}, nil
		},
		"messages": func() (cli.Command, error) {
			return &messages.Command{Command: newBase()}, nil
		},
		"messages send": func() (cli.Command, error) {
			return &messages.SendCommand{Command: newBase()}, nil
		},
		"messages read": func() (cli.Command, error) {
			return &messages.ReadCommand{Command: newBase()}, nil
		},
		"journal": func() (cli.Command, error) {
			return &journal.Command{Command: newBase()}, nil
		},
		"health": func() (cli.Command, error) {
			return &health.Command{Command: newBase()}, nil
		},
		"whoami": func() (cli.Command, error) {
			return &whoami.Command{Command: newBase()}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: newBase()}, nil
		},
	}
}
