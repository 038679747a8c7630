package things

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/meshline/meshline-go/internal/cmd/base"
	"github.com/meshline/meshline-go/internal/config"
	"github.com/meshline/meshline-go/pkg/sdk"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage things (devices)"
}

func (c *Command) Help() string {
	return `Usage: meshline things <subcommand> [options]

  Subcommands: create, get, list, connect, disconnect.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// CreateCommand provisions one thing, or a batch from a JSON file.
type CreateCommand struct {
	*base.Command
}

func (c *CreateCommand) Synopsis() string {
	return "Provision things"
}

func (c *CreateCommand) Help() string {
	return `Usage: meshline things create [options]

  Provisions a single thing, or every thing in a JSON file when -file is
  given. The file holds an array of thing objects; each entry is created
  individually and failures are reported together at the end.

Options:

  -name=<name>   Thing name.
  -tags=<a,b>    Comma-separated tags.
  -file=<path>   JSON file with an array of things.`
}

func (c *CreateCommand) Run(args []string) int {
	var name, tags, file string

	fs := c.FlagSet("things create")
	fs.StringVar(&name, "name", "", "")
	fs.StringVar(&tags, "tags", "", "")
	fs.StringVar(&file, "file", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	if file != "" {
		return c.createFromFile(s, cfg, file)
	}

	thing := sdk.Thing{Name: name}
	if tags != "" {
		thing.Tags = strings.Split(tags, ",")
	}

	created, err := s.CreateThing(context.Background(), thing, cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, created)
}

func (c *CreateCommand) createFromFile(s *sdk.SDK, cfg *config.Config, file string) int {
	data, err := afero.ReadFile(c.FS, file)
	if err != nil {
		return c.Error(fmt.Errorf("failed to read %s: %w", file, err))
	}

	var things []sdk.Thing
	if err := json.Unmarshal(data, &things); err != nil {
		return c.Error(fmt.Errorf("failed to parse %s: %w", file, err))
	}

	var created []sdk.Thing
	var errs *multierror.Error
	for i, thing := range things {
		got, err := s.CreateThing(context.Background(), thing, cfg.Token)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("entry %d (%s): %w", i, thing.Name, err))
			continue
		}
		created = append(created, got)
	}

	code := c.Output(cfg, created)
	if err := errs.ErrorOrNil(); err != nil {
		return c.Error(err)
	}
	return code
}

// GetCommand retrieves a thing by ID.
type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a thing"
}

func (c *GetCommand) Help() string {
	return `Usage: meshline things get <thing-id>`
}

func (c *GetCommand) Run(args []string) int {
	fs := c.FlagSet("things get")
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

	thing, err := s.Thing(context.Background(), fs.Args()[0], cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, thing)
}

// ListCommand lists things, optionally scoped to a channel.
type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List things"
}

func (c *ListCommand) Help() string {
	return `Usage: meshline things list [options]

Options:

  -offset=<n>       Page offset.
  -limit=<n>        Page size.
  -name=<s>         Filter by name.
  -channel=<id>     Only things connected to this channel.`
}

func (c *ListCommand) Run(args []string) int {
	var offset, limit uint64
	var name, channel string

	fs := c.FlagSet("things list")
	fs.Uint64Var(&offset, "offset", 0, "")
	fs.Uint64Var(&limit, "limit", 10, "")
	fs.StringVar(&name, "name", "", "")
	fs.StringVar(&channel, "channel", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	pm := sdk.PageMetadata{Offset: offset, Limit: limit, Name: name}

	var page sdk.ThingsPage
	if channel != "" {
		page, err = s.ThingsByChannel(context.Background(), channel, pm, cfg.Token)
	} else {
		page, err = s.Things(context.Background(), pm, cfg.Token)
	}
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, page)
}

// ConnectCommand links things to channels.
type ConnectCommand struct {
	*base.Command
}

func (c *ConnectCommand) Synopsis() string {
	return "Connect things to channels"
}

func (c *ConnectCommand) Help() string {
	return `Usage: meshline things connect -things=<id,...> -channels=<id,...>`
}

func (c *ConnectCommand) Run(args []string) int {
	return runConnection(c.Command, "things connect", args, (*sdk.SDK).Connect)
}

// DisconnectCommand unlinks things from channels.
type DisconnectCommand struct {
	*base.Command
}

func (c *DisconnectCommand) Synopsis() string {
	return "Disconnect things from channels"
}

func (c *DisconnectCommand) Help() string {
	return `Usage: meshline things disconnect -things=<id,...> -channels=<id,...>`
}

func (c *DisconnectCommand) Run(args []string) int {
	return runConnection(c.Command, "things disconnect", args, (*sdk.SDK).Disconnect)
}

func runConnection(c *base.Command, name string, args []string, call func(*sdk.SDK, context.Context, sdk.Connection, string) error) int {
	var things, channels string

	fs := c.FlagSet(name)
	fs.StringVar(&things, "things", "", "")
	fs.StringVar(&channels, "channels", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if things == "" || channels == "" {
		c.UI.Error("both -things and -channels are required")
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	conn := sdk.Connection{
		ThingIDs:   strings.Split(things, ","),
		ChannelIDs: strings.Split(channels, ","),
	}
	if err := call(s, context.Background(), conn, cfg.Token); err != nil {
		return c.Error(err)
	}

	c.UI.Output("OK")
	return 0
}
