package bootstrap

import (
	"context"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/meshline/meshline-go/internal/cmd/base"
	"github.com/meshline/meshline-go/pkg/sdk"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage bootstrap configs"
}

func (c *Command) Help() string {
	return `Usage: meshline bootstrap <subcommand> [options]

  Subcommands: add, view, whitelist.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// AddCommand registers a bootstrap config.
type AddCommand struct {
	*base.Command
}

func (c *AddCommand) Synopsis() string {
	return "Add a bootstrap config"
}

func (c *AddCommand) Help() string {
	return `Usage: meshline bootstrap add [options]

Options:

  -thing=<id>          Thing the config belongs to.
  -external-id=<id>    Device external ID (e.g. MAC). Required.
  -external-key=<key>  Device external key. Required.
  -name=<name>         Config name.
  -content=<json>      Opaque config content handed to the device.`
}

func (c *AddCommand) Run(args []string) int {
	var thing, externalID, externalKey, name, content string

	fs := c.FlagSet("bootstrap add")
	fs.StringVar(&thing, "thing", "", "")
	fs.StringVar(&externalID, "external-id", "", "")
	fs.StringVar(&externalKey, "external-key", "", "")
	fs.StringVar(&name, "name", "", "")
	fs.StringVar(&content, "content", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if externalID == "" || externalKey == "" {
		c.UI.Error("both -external-id and -external-key are required")
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	bsCfg := sdk.BootstrapConfig{
		ThingID:     thing,
		ExternalID:  externalID,
		ExternalKey: externalKey,
		Name:        name,
		Content:     content,
	}
	id, err := s.AddBootstrap(context.Background(), bsCfg, cfg.Token)
	if err != nil {
		return c.Error(err)
	}

	c.UI.Output(id)
	return 0
}

// ViewCommand shows the bootstrap config of a thing.
type ViewCommand struct {
	*base.Command
}

func (c *ViewCommand) Synopsis() string {
	return "Show a thing's bootstrap config"
}

func (c *ViewCommand) Help() string {
	return `Usage: meshline bootstrap view <thing-id>`
}

func (c *ViewCommand) Run(args []string) int {
	fs := c.FlagSet("bootstrap view")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("exactly one thing ID is required")
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	bsCfg, err := s.ViewBootstrap(context.Background(), fs.Args()[0], cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, bsCfg)
}

// WhitelistCommand changes a bootstrap config's state.
type WhitelistCommand struct {
	*base.Command
}

func (c *WhitelistCommand) Synopsis() string {
	return "Change a bootstrap config's state"
}

func (c *WhitelistCommand) Help() string {
	return `Usage: meshline bootstrap whitelist <thing-id> -state=<0|1>

  State 1 activates the config, 0 deactivates it.`
}

func (c *WhitelistCommand) Run(args []string) int {
	var state int

	fs := c.FlagSet("bootstrap whitelist")
	fs.IntVar(&state, "state", 1, "")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("exactly one thing ID is required")
		return 1
	}
	if state != 0 && state != 1 {
		c.UI.Error("state must be 0 or 1")
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	if err := s.Whitelist(context.Background(), fs.Args()[0], state, cfg.Token); err != nil {
		return c.Error(err)
	}

	c.UI.Output(fmt.Sprintf("state set to %d", state))
	return 0
}
