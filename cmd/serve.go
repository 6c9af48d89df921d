package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/dailyword/core/daily"
	"github.com/gaurav-prasanna/dailyword/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the widget over HTTP for embedding",
	Long: `Serve exposes the widget at /widget (HTML), /widget.json, /widget.md,
/widget.txt and /widget.pdf, each accepting ?variant=gospel|verse. Widgets are
cached per day and refreshed on the server.refresh_cron schedule.

Examples:
  dailyword serve
  dailyword serve --addr :9000
  DAILYWORD_SERVER_REFRESH_CRON="0 6 * * *" dailyword serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}

	srv, err := server.New(cfg, daily.New(cfg, nil), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
