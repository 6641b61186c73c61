package command

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/owenthereal/tilde/internal/logging"
	"github.com/owenthereal/tilde/tilde"
	"github.com/owenthereal/tilde/utils"
	"github.com/rs/xid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// options are the settings shared by every command that puts the terminal
// in raw mode.
type options struct {
	Debug      bool   `mapstructure:"debug"`
	LogFile    string `mapstructure:"log-file"`
	SentryDSN  string `mapstructure:"sentry-dsn"`
	MetricAddr string `mapstructure:"metric-addr"`
	Record     string `mapstructure:"record"`
}

func (o *options) validate() error {
	var result error

	if o.MetricAddr != "" {
		if _, _, err := net.SplitHostPort(o.MetricAddr); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid metric-addr %q: %w", o.MetricAddr, err))
		}
	}

	if o.Record != "" && o.Record == o.LogFile {
		result = multierror.Append(result, fmt.Errorf("record and log-file point to the same file %s", o.Record))
	}

	return result
}

func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tilde",
		Short: "Minimal raw-mode console",
		Long: `Tilde switches the terminal into raw mode, draws a column of tildes down the
left edge of the screen and waits for keys until Ctrl-Q is pressed. The
terminal is restored on every exit path.

Logs are written to a file, never to the terminal: the screen belongs to the
console while raw mode is active.`,
		Example: `  # Run the console:
  tilde

  # Print the code of every key pressed, Ctrl-Q to stop:
  tilde keys

  # Record the raw output stream and log at debug level:
  tilde --record /tmp/tilde.out --debug

  # Export Prometheus metrics while the console runs:
  tilde --metric-addr 127.0.0.1:9090`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          consoleRunE,
	}

	cmd.PersistentFlags().String("config", utils.ConfigFilePath(), "config file")
	cmd.PersistentFlags().Bool("debug", os.Getenv("DEBUG") != "", "log at debug level")
	cmd.PersistentFlags().String("log-file", utils.DefaultLogFilePath(), "log file, empty to disable logging")
	cmd.PersistentFlags().String("sentry-dsn", "", "report errors to Sentry")
	cmd.PersistentFlags().String("metric-addr", "", "serve Prometheus metrics on this address")
	cmd.PersistentFlags().String("record", "", "copy the console output stream to this file")

	cmd.AddCommand(keysCmd())
	cmd.AddCommand(configCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// prepare loads the options and builds a logger tagged with a fresh run id.
// The caller closes the logger.
func prepare(c *cobra.Command) (*options, *logging.Logger, error) {
	var opts options
	if err := unmarshalFlags(c, &opts); err != nil {
		return nil, nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}

	logOpts := []logging.Option{logging.Sentry(opts.SentryDSN)}
	if opts.Debug {
		logOpts = append(logOpts, logging.Debug())
	}
	if opts.LogFile != "" {
		logOpts = append(logOpts, logging.File(opts.LogFile))
	}

	logger, err := logging.New(logOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating logger: %w", err)
	}

	return &opts, logger.With("run_id", xid.New().String(), "cmd", c.Name()), nil
}

func unmarshalFlags(cmd *cobra.Command, opts interface{}) error {
	v := viper.New()

	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flagName := flag.Name
		if flagName != "config" && flagName != "help" {
			if err := v.BindPFlag(flagName, flag); err != nil {
				panic(fmt.Errorf("error binding flag '%s': %w", flagName, err).Error())
			}
		}
	})

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(tilde.EnvPrefix)

	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgFile); err == nil {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error loading config file %s: %w", cfgFile, err)
		}
	}

	return v.Unmarshal(opts)
}
