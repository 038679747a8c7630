package users

import (
	"context"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/meshline/meshline-go/internal/cmd/base"
	"github.com/meshline/meshline-go/pkg/sdk"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage platform users"
}

func (c *Command) Help() string {
	return `Usage: meshline users <subcommand> [options]

  Subcommands: create, token, get, list, enable, disable.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// CreateCommand registers a user.
type CreateCommand struct {
	*base.Command
}

func (c *CreateCommand) Synopsis() string {
	return "Register a user"
}

func (c *CreateCommand) Help() string {
	return `Usage: meshline users create [options]

  Registers a user on the platform.

Options:

  -name=<name>          Display name.
  -identity=<email>     Identity (email). Required.
  -secret=<secret>      Initial secret. Required.
  -tags=<a,b>           Comma-separated tags.`
}

func (c *CreateCommand) Run(args []string) int {
	var name, identity, secret, tags string

	fs := c.FlagSet("users create")
	fs.StringVar(&name, "name", "", "")
	fs.StringVar(&identity, "identity", "", "")
	fs.StringVar(&secret, "secret", "", "")
	fs.StringVar(&tags, "tags", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	user := sdk.User{
		Name: name,
		Credentials: sdk.Credentials{
			Identity: identity,
			Secret:   secret,
		},
	}
	if tags != "" {
		user.Tags = strings.Split(tags, ",")
	}

	created, err := s.CreateUser(context.Background(), user, cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, created)
}

// TokenCommand logs a user in.
type TokenCommand struct {
	*base.Command
}

func (c *TokenCommand) Synopsis() string {
	return "Issue an access token"
}

func (c *TokenCommand) Help() string {
	return `Usage: meshline users token -identity=<email> -secret=<secret>

  Logs in and prints the issued token pair.`
}

func (c *TokenCommand) Run(args []string) int {
	var identity, secret string

	fs := c.FlagSet("users token")
	fs.StringVar(&identity, "identity", "", "")
	fs.StringVar(&secret, "secret", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	token, err := s.CreateToken(context.Background(), sdk.Login{Identity: identity, Secret: secret})
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, token)
}

// GetCommand retrieves a user, or the token owner's profile when no ID
// is given.
type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a user"
}

func (c *GetCommand) Help() string {
	return `Usage: meshline users get [<user-id>]

  Shows a user by ID, or the profile of the token owner when no ID is
  given.`
}

func (c *GetCommand) Run(args []string) int {
	fs := c.FlagSet("users get")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	var user sdk.User
	if rest := fs.Args(); len(rest) > 0 {
		user, err = s.User(context.Background(), rest[0], cfg.Token)
	} else {
		user, err = s.UserProfile(context.Background(), cfg.Token)
	}
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, user)
}

// ListCommand lists users.
type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List users"
}

func (c *ListCommand) Help() string {
	return `Usage: meshline users list [options]

Options:

  -offset=<n>  Page offset.
  -limit=<n>   Page size.
  -name=<s>    Filter by name.`
}

func (c *ListCommand) Run(args []string) int {
	var offset, limit uint64
	var name string

	fs := c.FlagSet("users list")
	fs.Uint64Var(&offset, "offset", 0, "")
	fs.Uint64Var(&limit, "limit", 10, "")
	fs.StringVar(&name, "name", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	page, err := s.Users(context.Background(), sdk.PageMetadata{Offset: offset, Limit: limit, Name: name}, cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, page)
}

// EnableCommand re-enables a user.
type EnableCommand struct {
	*base.Command
}

func (c *EnableCommand) Synopsis() string {
	return "Enable a user"
}

func (c *EnableCommand) Help() string {
	return `Usage: meshline users enable <user-id>`
}

func (c *EnableCommand) Run(args []string) int {
	return changeStatus(c.Command, "users enable", args, (*sdk.SDK).EnableUser)
}

// DisableCommand disables a user.
type DisableCommand struct {
	*base.Command
}

func (c *DisableCommand) Synopsis() string {
	return "Disable a user"
}

func (c *DisableCommand) Help() string {
	return `Usage: meshline users disable <user-id>`
}

func (c *DisableCommand) Run(args []string) int {
	return changeStatus(c.Command, "users disable", args, (*sdk.SDK).DisableUser)
}

func changeStatus(c *base.Command, name string, args []string, call func(*sdk.SDK, context.Context, string, string) (sdk.User, error)) int {
	fs := c.FlagSet(name)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("exactly one user ID is required")
		return 1
	}

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	user, err := call(s, context.Background(), fs.Args()[0], cfg.Token)
	if err != nil {
		return c.Error(err)
	}
	return c.Output(cfg, user)
}
