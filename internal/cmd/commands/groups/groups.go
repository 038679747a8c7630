package groups

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
	return "Manage groups"
}

func (c *Command) Help() string {
	return `Usage: meshline groups <subcommand> [options]

  Subcommands: create, get, list, children.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// CreateCommand provisions a group.
type CreateCommand struct {
	*base.Command
}

func (c *CreateCommand) Synopsis() string {
	return "Create a group"
}

func (c *CreateCommand) Help() string {
	return `Usage: meshline groups create -name=<name> [-parent=<group-id>] [-description=<text>]`
}

func (c *CreateCommand) Run(args []string) int {
	var name, parent, description string

	fs := c.FlagSet("groups create")
	fs.StringVar(&name, "name", "", "")
	fs.StringVar(&parent, "parent", "", "")
	fs.StringVar(&description, "description", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	group := sdk.Group{Name: name, ParentID: parent, Description: description}
	created, err := s.CreateGroup(context.Background(), group, cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, created)
}

// GetCommand retrieves a group by ID.
type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a group"
}

func (c *GetCommand) Help() string {
	return `Usage: meshline groups get <group-id>`
}

func (c *GetCommand) Run(args []string) int {
	fs := c.FlagSet("groups get")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("exactly one group ID is required")
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	group, err := s.Group(context.Background(), fs.Args()[0], cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, group)
}

// ListCommand lists groups.
type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List groups"
}

func (c *ListCommand) Help() string {
	return `Usage: meshline groups list [-offset=<n>] [-limit=<n>]`
}

func (c *ListCommand) Run(args []string) int {
	var offset, limit uint64

	fs := c.FlagSet("groups list")
	fs.Uint64Var(&offset, "offset", 0, "")
	fs.Uint64Var(&limit, "limit", 10, "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	page, err := s.Groups(context.Background(), sdk.PageMetadata{Offset: offset, Limit: limit}, cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, page)
}

// ChildrenCommand lists the subtree under a group.
type ChildrenCommand struct {
	*base.Command
}

func (c *ChildrenCommand) Synopsis() string {
	return "List a group's children"
}

func (c *ChildrenCommand) Help() string {
	return `Usage: meshline groups children <group-id> [-level=<n>]`
}

func (c *ChildrenCommand) Run(args []string) int {
	var level uint64

	fs := c.FlagSet("groups children")
	fs.Uint64Var(&level, "level", 1, "")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("exactly one group ID is required")
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	page, err := s.Children(context.Background(), fs.Args()[0], sdk.PageMetadata{Level: level}, cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, page)
}
