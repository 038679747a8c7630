package journal

import (
	"context"

	"github.com/meshline/meshline-go/internal/cmd/base"
	"github.com/meshline/meshline-go/pkg/sdk"
)

// Command lists the audit journal of an entity.
type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Show an entity's audit journal"
}

func (c *Command) Help() string {
	return `Usage: meshline journal <entity-type> <entity-id> [options]

  Entity type is one of: user, thing, channel, group.

Options:

  -offset=<n>        Page offset.
  -limit=<n>         Page size.
  -operation=<op>    Filter by operation, e.g. "thing.update".
  -from=<time>       Window start, any common format.
  -to=<time>         Window end.
  -dir=<asc|desc>    Sort direction.`
}

func (c *Command) Run(args []string) int {
	var offset, limit uint64
	var operation, from, to, dir string

	fs := c.FlagSet("journal")
	fs.Uint64Var(&offset, "offset", 0, "")
	fs.Uint64Var(&limit, "limit", 10, "")
	fs.StringVar(&operation, "operation", "", "")
	fs.StringVar(&from, "from", "", "")
	fs.StringVar(&to, "to", "", "")
	fs.StringVar(&dir, "dir", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 2 {
		c.UI.Error("an entity type and an entity ID are required")
		return 1
	}

	pm := sdk.PageMetadata{
		Offset:    offset,
		Limit:     limit,
		Operation: operation,
		Direction: dir,
	}

	var err error
	if pm.From, err = base.ParseTime(from); err != nil {
		return c.Error(err)
	}
	if pm.To, err = base.ParseTime(to); err != nil {
		return c.Error(err)
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	page, err := s.Journal(context.Background(), fs.Args()[0], fs.Args()[1], pm, cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, page)
}
