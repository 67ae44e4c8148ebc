package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clearuse/clearuse/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve starts an HTTP server exposing the checker:

  POST /api/check     multipart upload, returns the full report as JSON
  GET  /api/sources   the open-content source catalog
  GET  /healthz       liveness probe

Example:
  clearuse serve
  clearuse serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	cfg.Output.Verbose = verbose

	// LLM stays config-driven for the server; pick up the key if one is set.
	if cfg.LLM.Provider != "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)

	srv := server.NewFromConfig(cfg)
	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
