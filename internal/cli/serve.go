package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvillar/calcpdf/mcp"
	"github.com/lvillar/calcpdf/server"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve subcommand.
func NewServeCommand(a *app) *cobra.Command {
	var (
		dataFlag string
		addrFlag string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reports over HTTP",
		Long: `Serve the reports of a dataset over HTTP:

  GET /reports                 report kinds
  GET /reports/{kind}?id=12    report as application/pdf (download=1 for an attachment)
  GET /metrics                 Prometheus metrics
  GET /healthz                 liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(dataFlag, false)
			if err != nil {
				return err
			}
			addr := a.cfg.Server.Addr
			if addrFlag != "" {
				addr = addrFlag
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(a.cfg, ds, a.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return serve(cmd.Context(), srv, a)
		},
	}

	cmd.Flags().StringVarP(&dataFlag, "data", "d", "", "dataset file (JSON or YAML)")
	cmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

// serve runs srv until ctx is done, then shuts it down.
func serve(ctx context.Context, srv *http.Server, a *app) error {
	errc := make(chan error, 1)
	go func() {
		a.logger.WithField("addr", srv.Addr).Info("Server started.")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.logger.Info("Server stopped.")
	return nil
}

// NewMCPCommand creates the mcp subcommand.
func NewMCPCommand(a *app) *cobra.Command {
	var dataFlag string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long: `Run a Model Context Protocol server on stdin and stdout, exposing the tools
list_reports, render_report, render_template, merge_pdfs and stamp_pdf.
The dataset given with --data is used when a call names none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(dataFlag, true)
			if err != nil {
				return err
			}
			s := mcp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)
			mcp.Register(s, &mcp.Toolset{Config: a.cfg, Dataset: ds, Logger: a.logger})
			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&dataFlag, "data", "d", "", "default dataset file (JSON or YAML)")

	return cmd
}
