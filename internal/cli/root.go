// Package cli defines the calcpdf commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lvillar/calcpdf/internal/config"
	"github.com/lvillar/calcpdf/internal/logging"
	"github.com/lvillar/calcpdf/model"
)

// app holds the state shared by the commands, set up before each run.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *logrus.Logger
}

// NewRootCommand creates the calcpdf command with all its subcommands.
func NewRootCommand(version string) *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "calcpdf",
		Short: "Generate the PDF reports of the calculation application",
		Long: `calcpdf renders calculations, states, products, tasks, global margins and log
entries from a JSON or YAML dataset to PDF, renders document templates, merges
PDF files, and serves the reports over HTTP or MCP.

Settings are read from the file given with --config and from CALCPDF_*
environment variables, for example CALCPDF_COMPANY_NAME.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	a.addFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewRenderCommand(a))
	cmd.AddCommand(NewTemplateCommand(a))
	cmd.AddCommand(NewMergeCommand(a))
	cmd.AddCommand(NewServeCommand(a))
	cmd.AddCommand(NewMCPCommand(a))
	cmd.AddCommand(NewKindsCommand())
	return cmd
}

func (a *app) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&a.configPath, "config", "c", "", "configuration file (YAML, JSON or TOML)")
	fs.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides log.level)")
	fs.StringVar(&a.logFormat, "log-format", "", "log format: text, json or json-pretty (overrides log.format)")
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// loadDataset loads the dataset at path, or returns nil when path is empty
// and optional is true.
func loadDataset(path string, optional bool) (*model.Dataset, error) {
	if path == "" {
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("missing --data")
	}
	return model.LoadFile(path)
}

// NewKindsCommand creates the kinds subcommand.
func NewKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the report kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(reportKinds(), "\n"))
			return err
		},
	}
}
