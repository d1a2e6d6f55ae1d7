// Package cli provides the ovpn-profile command line interface.
// Every command takes the OpenVPN 2 options after a "--" separator so
// they never clash with the command's own flags.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yllada/ovpn-profile/common"
	"github.com/yllada/ovpn-profile/config"
	"github.com/yllada/ovpn-profile/keyring"
	"github.com/yllada/ovpn-profile/parser"
	"github.com/yllada/ovpn-profile/vpn"
)

// CLI holds the state shared by all commands of one invocation.
type CLI struct {
	version   string
	verbose   bool
	appConfig string
	cfg       *config.Config

	// workDir is where the parser resolves relative paths. Empty means
	// the process working directory.
	workDir string
	prompt  parser.SecretPrompt

	connect     func() (vpn.ConfigService, func() error, error)
	credentials func() common.CredentialStore
	historyPath func() (string, error)
}

// New creates a CLI wired to the system bus, the system keyring and the
// default history database.
func New(version string) *CLI {
	return &CLI{
		version: version,
		prompt:  parser.TerminalPrompt(),
		connect: func() (vpn.ConfigService, func() error, error) {
			m, closeFn, err := vpn.ConnectConfigManager()
			if err != nil {
				return nil, nil, err
			}
			return m, closeFn, nil
		},
		credentials: func() common.CredentialStore { return keyring.Default() },
		historyPath: vpn.DefaultHistoryPath,
	}
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   common.AppName,
		Short: "Turn OpenVPN 2 options into OpenVPN 3 profiles",
		Long: `ovpn-profile reads OpenVPN 2 style command line options and configuration
files, embeds every referenced certificate and key file and produces a
self-contained profile for the OpenVPN 3 configuration manager.`,
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.setup()
		},
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.appConfig, "app-config", "",
		"settings file (default ~/.config/ovpn-profile/config.yaml)")

	root.AddCommand(
		c.generateCommand(),
		c.importCommand(),
		c.optionsCommand(),
		c.completionDataCommand(),
		c.historyCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, version string, args []string) int {
	root := New(version).RootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "%s %v\n", errorStyle.Render("Error:"), err)
		return 1
	}
	return 0
}

// setup loads the settings and applies them to the logger.
func (c *CLI) setup() error {
	var err error
	if c.appConfig != "" {
		c.cfg, err = config.LoadFrom(c.appConfig)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	logger := common.GetLogger()
	level := c.cfg.Level()
	if c.verbose {
		level = common.LevelDebug
	}
	logger.SetLevel(level)

	if c.cfg.LogToFile {
		if err := logger.EnableFileLogging(); err != nil {
			common.LogWarn("Could not enable file logging: %v", err)
		}
	}
	return nil
}

// parse runs the profile parser over the OpenVPN options in args.
func (c *CLI) parse(args []string) (*parser.Result, error) {
	if len(args) == 0 {
		return nil, errors.New("no OpenVPN options given, pass them after --")
	}

	opts := []parser.Option{
		parser.WithMaxIncludeDepth(c.cfg.MaxIncludeDepth),
		parser.WithPrompt(c.secretPrompt()),
	}
	if c.workDir != "" {
		opts = append(opts, parser.WithWorkDir(c.workDir))
	}
	return parser.New(opts...).Parse(args)
}

func (c *CLI) secretPrompt() parser.SecretPrompt {
	if !c.cfg.RememberPassphrase {
		return c.prompt
	}
	return keyring.NewCachedPrompt(c.credentials(), c.prompt)
}
