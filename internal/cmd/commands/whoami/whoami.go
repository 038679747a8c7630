package whoami

import (
	"errors"

	"github.com/meshline/meshline-go/internal/cmd/base"
	"github.com/meshline/meshline-go/pkg/sdk"
)

// Command shows who the configured token belongs to and when it
// expires. The token is decoded locally, without a request.
type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Show the configured token's session"
}

func (c *Command) Help() string {
	return `Usage: meshline whoami

  Decodes the configured access token and prints its subject, issuer
  and expiry. No request is made and the signature is not verified.`
}

func (c *Command) Run(args []string) int {
	fs := c.FlagSet("whoami")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := c.Config()
	if err != nil {
		return c.Error(err)
	}
	if cfg.Token == "" {
		return c.Error(errors.New("no token configured"))
	}

	session, err := sdk.SessionFromToken(cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, session)
}
