package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/progress"
	"github.com/ziadkadry99/casegallery/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the gallery as a static website",
	Long: `Renders every case in the configured document into a self-contained
static site: an index with all cases embedded, one page per case and one
page per video.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	buildCmd.Flags().Int("port", 0, "port for the local server (defaults to server.port)")
	buildCmd.Flags().Bool("open", false, "open browser automatically when serving")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := site.NewSiteGenerator(cfg, log)
	generator.Reporter = progress.NewReporter()
	res, err := generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d cases, %d videos, %d pages) in %s\n",
		cfg.OutputDir, res.Cases, res.Videos, res.Pages, time.Since(start).Round(time.Millisecond))
	log.Info("Static assets",
		zap.Int("files", res.Static.Files),
		zap.Int("copied", res.Static.Copied),
		zap.Int("images", res.Static.Images),
		zap.Int("videos", res.Static.Videos))
	if res.Invalid > 0 {
		log.Warn("Cases rendered as errors", zap.Int("count", res.Invalid))
	}
	if res.Thumbs > 0 {
		log.Info("Thumbnails written", zap.Int("count", res.Thumbs))
	}

	if serve, _ := cmd.Flags().GetBool("serve"); !serve {
		return nil
	}
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}
	open, _ := cmd.Flags().GetBool("open")
	if err := site.Serve(ctx, cfg.OutputDir, port, open, log); err != nil {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}
