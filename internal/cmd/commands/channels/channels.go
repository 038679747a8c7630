package channels

import (
	"context"

	"github.com/mitchellh/cli"

	"github.com/meshline/meshline-go/internal/cmd/base"
	"github.com/meshline/meshline-go/pkg/sdk"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage channels"
}

func (c *Command) Help() string {
	return `Usage: meshline channels <subcommand> [options]

  Subcommands: create, get, list.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// CreateCommand provisions a channel.
type CreateCommand struct {
	*base.Command
}

func (c *CreateCommand) Synopsis() string {
	return "Create a channel"
}

func (c *CreateCommand) Help() string {
	return `Usage: meshline channels create -name=<name> [-description=<text>]`
}

func (c *CreateCommand) Run(args []string) int {
	var name, description string

	fs := c.FlagSet("channels create")
	fs.StringVar(&name, "name", "", "")
	fs.StringVar(&description, "description", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	created, err := s.CreateChannel(context.Background(), sdk.Channel{Name: name, Description: description}, cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, created)
}

// GetCommand retrieves a channel by ID.
type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a channel"
}

func (c *GetCommand) Help() string {
	return `Usage: meshline channels get <channel-id>`
}

func (c *GetCommand) Run(args []string) int {
	fs := c.FlagSet("channels get")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("exactly one channel ID is required")
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	channel, err := s.Channel(context.Background(), fs.Args()[0], cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, channel)
}

// ListCommand lists channels, optionally scoped to a thing.
type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List channels"
}

func (c *ListCommand) Help() string {
	return `Usage: meshline channels list [options]

Options:

  -offset=<n>   Page offset.
  -limit=<n>    Page size.
  -thing=<id>   Only channels the thing is connected to.`
}

func (c *ListCommand) Run(args []string) int {
	var offset, limit uint64
	var thing string

	fs := c.FlagSet("channels list")
	fs.Uint64Var(&offset, "offset", 0, "")
	fs.Uint64Var(&limit, "limit", 10, "")
	fs.StringVar(&thing, "thing", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	pm := sdk.PageMetadata{Offset: offset, Limit: limit}

	var page sdk.ChannelsPage
	if thing != "" {
		page, err = s.ChannelsByThing(context.Background(), thing, pm, cfg.Token)
	} else {
		page, err = s.Channels(context.Background(), pm, cfg.Token)
	}
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, page)
}
