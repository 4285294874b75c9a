// README: Entry point; loads config, wires the planner, serves HTTP until SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tripgen/internal/app"
	"tripgen/internal/config"
	httptransport "tripgen/internal/http"
	"tripgen/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tripgen-api",
	Short: "Serve the trip itinerary API",
	Long: `tripgen-api answers POST /generate with a day-by-day itinerary. Attractions come
from Google Places and the plan from Gemini or an OpenAI-compatible model when keys
are configured; otherwise an offline itinerary is returned.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("close resources", zap.Error(err))
		}
	}()

	gin.SetMode(cfg.HTTP.GinMode)
	router, err := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:     a.Planner,
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		MaxDays:     cfg.Trip.MaxDays,
	})
	if err != nil {
		return err
	}

	return httptransport.NewServer(cfg.HTTP.Addr, router, log).Run(ctx)
}
