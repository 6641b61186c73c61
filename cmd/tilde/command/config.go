package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/owenthereal/tilde/utils"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	configPath := utils.ConfigFilePath()
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tilde configuration",
		Long: fmt.Sprintf(`Manage tilde configuration file.

Config file: %s

This follows the XDG Base Directory Specification.

Configuration priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (TILDE_ prefix)
  3. Config file
  4. Default values`, configPath),
	}

	cmd.AddCommand(configPathCmd())
	cmd.AddCommand(configViewCmd())

	return cmd
}

func configPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show the path to the config file",
		Long: `Show the path to the config file.

The config file is optional and created manually by users.`,
		Example: `  # Show config file path:
  tilde config path

  # Create config file directory:
  mkdir -p "$(dirname "$(tilde config path)")"`,
		RunE: configPathRunE,
	}

	return cmd
}

func configViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the config file contents",
		Long: `View the config file contents.

If the config file exists, this command displays its contents. If it doesn't
exist, this command shows an example config file that you can use as a template.`,
		Example: `  # View current config:
  tilde config view

  # View and save as new config:
  tilde config view > "$(tilde config path)"`,
		RunE: configViewRunE,
	}

	return cmd
}

func configPathRunE(c *cobra.Command, args []string) error {
	configPath, err := c.Flags().GetString("config")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.OutOrStdout(), configPath)
	return err
}

func configViewRunE(c *cobra.Command, args []string) error {
	configPath, err := c.Flags().GetString("config")
	if err != nil {
		return err
	}

	out := c.OutOrStdout()

	content, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(out, "# Config file does not exist. Example config:")
		fmt.Fprintln(out)
		_, err := fmt.Fprint(out, exampleConfig())
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	_, err = out.Write(content)
	return err
}

// exampleConfig returns an example config file with comments.
func exampleConfig() string {
	return `# Tilde Configuration File
#
# This file follows the XDG Base Directory Specification.
# Settings here are overridden by environment variables (TILDE_*) and command-line flags.
#
# Configuration priority (highest to lowest):
#   1. Command-line flags
#   2. Environment variables (TILDE_* prefix)
#   3. This config file
#   4. Default values

# Debug logging (default: false)
# When enabled, writes debug-level logs to the log file.
# debug: true

# Log file (default: $XDG_STATE_HOME/tilde/tilde.log)
# Logs never go to the terminal while it is in raw mode. Empty disables logging.
# log-file: /tmp/tilde.log

# Sentry DSN for error reports (default: none)
# sentry-dsn: https://key@sentry.example.com/1

# Prometheus metrics address (default: none)
# metric-addr: 127.0.0.1:9090

# Copy of the raw console output stream (default: none)
# record: /tmp/tilde.out
`
}
