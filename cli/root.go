package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"loan-fee/config"
	"loan-fee/domain"
	"loan-fee/logger"
	"loan-fee/repository"
)

type rootOptions struct {
	feesPath string
	debug    bool
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "loan-fee",
		Short:        "Loan origination fee calculator",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.feesPath, "fees", "", "Fee table file or directory (defaults to the embedded table)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(serveCmd(opts))
	cmd.AddCommand(feeCmd(opts))
	cmd.AddCommand(quoteCmd(opts))
	cmd.AddCommand(termsCmd(opts))
	cmd.AddCommand(tableCmd(opts))
	cmd.AddCommand(versionCmd())
	return cmd
}

// loadTable prefers the --fees flag over the given fallback path.
func (o *rootOptions) loadTable(fallback string) (*domain.FeeTable, error) {
	path := o.feesPath
	if path == "" {
		path = fallback
	}
	return repository.LoadFeeTable(path)
}

// loadConfig reads the environment and applies the persistent flags on top.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// offline loads the table and logger for commands that run without the
// server. FEE_TABLE_PATH applies unless --fees is given.
func (o *rootOptions) offline() (*domain.FeeTable, *slog.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	table, err := o.loadTable(cfg.FeeTablePath)
	if err != nil {
		return nil, nil, err
	}
	return table, cliLogger(cfg.Debug), nil
}

// cliLogger writes text logs to stderr so stdout stays parseable.
func cliLogger(debug bool) *slog.Logger {
	return logger.New(os.Stderr, logger.Config{Format: logger.FormatText, Debug: debug})
}
