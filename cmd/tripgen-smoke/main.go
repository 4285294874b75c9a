// README: Smoke and load runner; checks a running tripgen-api for the /health and /generate contracts.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config struct {
	BaseURL     string
	RedisAddr   string
	Strict      bool
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

var rootCmd = &cobra.Command{
	Use:   "tripgen-smoke",
	Short: "Run smoke and load checks against a tripgen-api instance",
	Long: `tripgen-smoke exercises /health, /generate and /generate/pdf and verifies the
itinerary invariants. Flags may also be set as TRIPGEN_SMOKE_<FLAG> environment variables.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), loadConfig())
	},
}

func init() {
	f := rootCmd.Flags()
	f.String("base-url", "http://localhost:8080", "API base URL")
	f.String("redis", "", "Redis address of the attraction cache (optional)")
	f.Bool("strict", false, "fail on skipped checks")
	f.Duration("timeout", 60*time.Second, "total timeout")
	f.Int("concurrency", 8, "concurrent clients for the load check")
	f.Duration("duration", 5*time.Second, "duration of the load check, 0 disables it")

	viper.SetEnvPrefix("TRIPGEN_SMOKE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(f)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() Config {
	return Config{
		BaseURL:     strings.TrimRight(viper.GetString("base-url"), "/"),
		RedisAddr:   viper.GetString("redis"),
		Strict:      viper.GetBool("strict"),
		Timeout:     viper.GetDuration("timeout"),
		Concurrency: viper.GetInt("concurrency"),
		Duration:    viper.GetDuration("duration"),
	}
}

func run(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	results := NewRunner(cfg).RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			pass++
		case StatusFail:
			fail++
		case StatusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 || (cfg.Strict && skipped > 0) {
		return fmt.Errorf("%d checks failed, %d skipped", fail, skipped)
	}
	return nil
}
