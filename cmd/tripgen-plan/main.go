// README: One-shot planner; builds an itinerary with the configured providers and prints it as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tripgen/internal/app"
	"tripgen/internal/config"
	"tripgen/internal/itinerary"
	"tripgen/internal/logging"
	"tripgen/internal/report"
)

var (
	cfgFile   string
	origin    string
	dest      string
	days      int
	budget    int
	interests []string
	pdfOut    string
)

var rootCmd = &cobra.Command{
	Use:          "tripgen-plan",
	Short:        "Generate one itinerary and print it",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return plan(cmd.Context())
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	f.StringVar(&origin, "origin", itinerary.DefaultOrigin, "starting city")
	f.StringVar(&dest, "destination", itinerary.DefaultDestination, "destination city")
	f.IntVar(&days, "days", itinerary.DefaultDays, "number of days")
	f.IntVar(&budget, "budget", itinerary.DefaultBudget, "total budget")
	f.StringSliceVar(&interests, "interests", nil, "comma separated interests, e.g. beach,forts")
	f.StringVar(&pdfOut, "pdf", "", "also write the itinerary as PDF to this path")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func plan(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	// Logs go to stderr so stdout stays valid JSON.
	log, err := logging.New(cfg.Log.Level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	req := itinerary.TripRequest{
		Origin:      strings.TrimSpace(origin),
		Destination: strings.TrimSpace(dest),
		Days:        days,
		Budget:      budget,
		Interests:   interests,
	}
	if req.Days < 1 {
		req.Days = itinerary.DefaultDays
	}
	if req.Days > cfg.Trip.MaxDays {
		req.Days = cfg.Trip.MaxDays
	}

	res := a.Planner.PlanTrip(ctx, req)
	log.Info("itinerary ready", zap.String("source", string(res.Source)))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Body()); err != nil {
		return err
	}

	if pdfOut == "" {
		return nil
	}
	doc, err := report.Render(res.Itinerary, report.Meta{
		Origin:      req.Origin,
		Destination: req.Destination,
		Budget:      req.Budget,
		Offline:     res.Offline,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(pdfOut, doc, 0o644)
}
