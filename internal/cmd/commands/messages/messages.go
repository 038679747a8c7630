package messages

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
	return "Publish and read channel messages"
}

func (c *Command) Help() string {
	return `Usage: meshline messages <subcommand> [options]

  Subcommands: send, read.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// SendCommand publishes a SenML payload to a channel.
type SendCommand struct {
	*base.Command
}

func (c *SendCommand) Synopsis() string {
	return "Publish a message"
}

func (c *SendCommand) Help() string {
	return `Usage: meshline messages send <channel-id> <senml> -secret=<thing-secret>

  Publishes a SenML payload on behalf of a thing. The thing's secret,
  not the user token, authenticates the request.`
}

func (c *SendCommand) Run(args []string) int {
	var secret string

	fs := c.FlagSet("messages send")
	fs.StringVar(&secret, "secret", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 2 {
		c.UI.Error("a channel ID and a SenML payload are required")
		return 1
	}
	if secret == "" {
		c.UI.Error("-secret is required")
		return 1
	}

	s, _, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	if err := s.SendMessage(context.Background(), fs.Args()[0], fs.Args()[1], secret); err != nil {
		return c.Error(err)
	}

	c.UI.Output("OK")
	return 0
}

// ReadCommand queries the reader service.
type ReadCommand struct {
	*base.Command
}

func (c *ReadCommand) Synopsis() string {
	return "Read channel messages"
}

func (c *ReadCommand) Help() string {
	return `Usage: meshline messages read <channel-id> [options]

Options:

  -offset=<n>       Page offset.
  -limit=<n>        Page size.
  -publisher=<id>   Filter by publishing thing.
  -from=<time>      Window start, any common format ("2024-03-01",
                    RFC3339, unix seconds).
  -to=<time>        Window end.`
}

func (c *ReadCommand) Run(args []string) int {
	var offset, limit uint64
	var publisher, from, to string

	fs := c.FlagSet("messages read")
	fs.Uint64Var(&offset, "offset", 0, "")
	fs.Uint64Var(&limit, "limit", 10, "")
	fs.StringVar(&publisher, "publisher", "", "")
	fs.StringVar(&from, "from", "", "")
	fs.StringVar(&to, "to", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("exactly one channel ID is required")
		return 1
	}

	pm := sdk.PageMetadata{Offset: offset, Limit: limit, Publisher: publisher}

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

	page, err := s.ReadMessages(context.Background(), fs.Args()[0], pm, cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, page)
}
