// Package cli implements the floorplan command-line interface.
//
// Commands work on project files (*.floorplan.json) and on the data kept
// under ~/.floorplan: the TOML config, the stock inventory and the user
// templates. serve exposes the layout engine over HTTP.
//
// All commands support --verbose (-v) for debug-level logging and
// --config to point at a different config file.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/floorplan/internal/model"
	"github.com/piwi3910/floorplan/internal/project"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	Config     model.AppConfig
	ConfigPath string
}

// New creates a CLI that logs to w at level until the config says otherwise.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: model.DefaultAppConfig(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "floorplan",
		Short:        "Floorplan lays out flooring, tiles and bulk materials for a room",
		Long:         `Floorplan computes plank, tile and sheet layouts for rectangular and polygon rooms, reuses stock and offcuts, and reports cuts, waste and what is left to buy.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(c.ConfigPath)
			if err != nil {
				return err
			}
			project.ApplyEnv(&cfg)
			c.Config = cfg

			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				c.Logger.Warn("unknown log level in config", "level", cfg.LogLevel)
				level = log.InfoLevel
			}
			if verbose {
				level = log.DebugLevel
			}
			c.Logger.SetLevel(level)
			c.Logger.Debug("config loaded", "path", c.ConfigPath)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("floorplan %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", project.DefaultConfigPath(), "config file")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.migrateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.estimateCommand())
	root.AddCommand(c.leftoverCommand())
	root.AddCommand(c.importRoomCommand())
	root.AddCommand(c.importStockCommand())
	root.AddCommand(c.materialsCommand())
	root.AddCommand(c.inventoryCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.backupCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// Execute runs the floorplan CLI.
func Execute() error {
	c := New(os.Stderr, log.InfoLevel)
	return c.RootCommand().ExecuteContext(context.Background())
}
