package health

import (
	"context"

	"github.com/meshline/meshline-go/internal/cmd/base"
)

// Command checks the health of a platform service.
type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Check a service's health"
}

func (c *Command) Help() string {
	return `Usage: meshline health [<service>]

  Checks the named service (default "things"). Services: users, things,
  bootstrap, certs, reader, http-adapter, journal.`
}

func (c *Command) Run(args []string) int {
	fs := c.FlagSet("health")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	service := "things"
	if rest := fs.Args(); len(rest) > 0 {
		service = rest[0]
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	health, err := s.Health(context.Background(), service)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, health)
}
