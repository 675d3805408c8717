package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/server"
	"github.com/ziadkadry99/casegallery/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gallery live from the case document",
	Long: `Starts an HTTP server that renders gallery pages on request. With
--watch, edits to a local case document are picked up and open pages
reload themselves.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("watch", false, "reload when the case document changes")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("watch") {
		cfg.Server.Watch, _ = cmd.Flags().GetBool("watch")
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	log.Info("Starting casegallery server",
		zap.String("version", Version),
		zap.String("data", cfg.Data),
		zap.Int("cases", len(srv.Gallery().Cases())),
		zap.Bool("watch", cfg.Server.Watch))

	if open, _ := cmd.Flags().GetBool("open"); open {
		go site.OpenBrowser(fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
	}
	return srv.Start(ctx)
}
