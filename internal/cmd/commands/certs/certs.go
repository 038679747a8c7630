package certs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/meshline/meshline-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage thing certificates"
}

func (c *Command) Help() string {
	return `Usage: meshline certs <subcommand> [options]

  Subcommands: issue, revoke.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// IssueCommand requests a client certificate for a thing.
type IssueCommand struct {
	*base.Command
}

func (c *IssueCommand) Synopsis() string {
	return "Issue a client certificate"
}

func (c *IssueCommand) Help() string {
	return `Usage: meshline certs issue <thing-id> [options]

  Issues a client certificate for a thing. With -out the certificate and
  key are written to <dir>/<thing-id>.crt and <dir>/<thing-id>.key
  instead of being printed.

Options:

  -ttl=<duration>   Certificate lifetime (default "8760h").
  -out=<dir>        Directory to write the cert and key files to.`
}

func (c *IssueCommand) Run(args []string) int {
	var ttl, out string

	fs := c.FlagSet("certs issue")
	fs.StringVar(&ttl, "ttl", "8760h", "")
	fs.StringVar(&out, "out", "", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("exactly one thing ID is required")
		return 1
	}
	thingID := fs.Args()[0]

	s, cfg, err := c.SDK()
	if err != nil {
		return c.Error(err)
	}

	cert, err := s.IssueCert(context.Background(), thingID, ttl, cfg.Token)
	if err != nil {
		return c.Error(err)
	}

	if out == "" {
		return c.Output(cfg, cert)
	}

	certPath := filepath.Join(out, thingID+".crt")
	keyPath := filepath.Join(out, thingID+".key")

	if err := afero.WriteFile(c.FS, certPath, []byte(cert.ClientCert), 0o644); err != nil {
		return c.Error(fmt.Errorf("failed to write %s: %w", certPath, err))
	}
	if err := afero.WriteFile(c.FS, keyPath, []byte(cert.ClientKey), 0o600); err != nil {
		return c.Error(fmt.Errorf("failed to write %s: %w", keyPath, err))
	}

	c.UI.Output(fmt.Sprintf("wrote %s and %s (serial %s)", certPath, keyPath, cert.SerialNumber))
	return 0
}

// RevokeCommand revokes a thing's certificates.
type RevokeCommand struct {
	*base.Command
}

func (c *RevokeCommand) Synopsis() string {
	return "Revoke a thing's certificates"
}

func (c *RevokeCommand) Help() string {
	return `Usage: meshline certs revoke <thing-id>`
}

func (c *RevokeCommand) Run(args []string) int {
	fs := c.FlagSet("certs revoke")
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

	revokedAt, err := s.RevokeCert(context.Background(), fs.Args()[0], cfg.Token)
	if err != nil {
		return c.Error(err)
	}

	c.UI.Output(fmt.Sprintf("revoked at %s", revokedAt.Format("2006-01-02T15:04:05Z07:00")))
	return 0
}
