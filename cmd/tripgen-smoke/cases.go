// README: Smoke cases; HTTP contract checks, itinerary invariants, optional Redis and load checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"tripgen/internal/itinerary"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	redis *redis.Client
	out   io.Writer
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 45 * time.Second},
		out:   os.Stdout,
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)

		fmt.Fprintf(r.out, "%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Fprintf(r.out, " (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Fprintf(r.out, " - %s", res.Note)
		}
		fmt.Fprintln(r.out)
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Health: status ok",
			Run: func(ctx context.Context, r *Runner) Result {
				status, body, latency, err := r.do(ctx, http.MethodGet, base+"/health", "")
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if status != http.StatusOK || !jsonEqual(body, `{"status":"ok"}`) {
					return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d body=%s", status, body)}
				}
				return Result{Status: StatusPass, Latency: latency}
			},
		},
		generateCase("Generate: two days to Goa", base, `{"destination":"Goa","days":2}`, 2),
		generateCase("Generate: empty body uses defaults", base, ``, itinerary.DefaultDays),
		generateCase("Generate: non-integer days", base, `{"days":"lots","budget":"cheap"}`, itinerary.DefaultDays),
		generateCase("Generate: malformed json", base, `{"days":`, itinerary.DefaultDays),
		{
			Name: "Generate: pdf",
			Run: func(ctx context.Context, r *Runner) Result {
				status, body, latency, err := r.do(ctx, http.MethodPost, base+"/generate/pdf", `{"days":1}`)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if status != http.StatusOK || !bytes.HasPrefix(body, []byte("%PDF-")) {
					return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("bytes=%d", len(body))}
			},
		},
		{
			Name: "Cache: redis reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				keys, err := r.redis.Keys(ctx, "tripgen:*").Result()
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass, Note: fmt.Sprintf("cached_keys=%d", len(keys))}
			},
		},
		{
			Name: "Load: /generate",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.cfg.Duration <= 0 || r.cfg.Concurrency <= 0 {
					return Result{Status: StatusSkip, Note: "load check disabled"}
				}
				return perfLoad(ctx, r, base+"/generate", `{"destination":"Goa","days":1}`)
			},
		},
	}
}

func generateCase(name, base, body string, wantDays int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			status, resp, latency, err := r.do(ctx, http.MethodPost, base+"/generate", body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			if status != http.StatusOK {
				return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			if err := checkItinerary(resp, wantDays); err != nil {
				return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
			}
			return Result{Status: StatusPass, Latency: latency}
		},
	}
}

// checkItinerary verifies day numbering and, for offline itineraries, the fixed
// transport list and the total cost.
func checkItinerary(body []byte, wantDays int) error {
	var it itinerary.Itinerary
	if err := json.Unmarshal(body, &it); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(it.DailyPlan) != wantDays {
		return fmt.Errorf("daily_plan has %d entries, want %d", len(it.DailyPlan), wantDays)
	}
	for i, d := range it.DailyPlan {
		if d.Day != i+1 {
			return fmt.Errorf("entry %d has day %d", i, d.Day)
		}
	}
	if it.TotalCost != itinerary.TotalCost(it.DailyPlan, it.Transport) {
		return fmt.Errorf("total_cost %d does not match plan", it.TotalCost)
	}
	if it.Notes != itinerary.FallbackNotes {
		return nil
	}

	if len(it.Transport) != 3 {
		return fmt.Errorf("offline transport has %d entries", len(it.Transport))
	}
	for _, d := range it.DailyPlan {
		if d.Cost < itinerary.MinDailyCost || d.Cost > itinerary.MaxDailyCost {
			return fmt.Errorf("day %d cost %d out of range", d.Day, d.Cost)
		}
	}
	if cheapest, _ := itinerary.CheapestTransport(it.Transport); cheapest != 300 {
		return errors.New("offline cheapest transport is not the bus")
	}
	return nil
}

func (r *Runner) do(ctx context.Context, method, url, body string) (int, []byte, time.Duration, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	return resp.StatusCode, b, time.Since(start), err
}

func perfLoad(ctx context.Context, r *Runner, url, payload string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount, non200 atomic.Int64
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, _, _, err := r.do(ctx, http.MethodPost, url, payload)
				if err != nil {
					errCount.Add(1)
					continue
				}
				if status != http.StatusOK {
					non200.Add(1)
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	note := fmt.Sprintf("rps=%.1f errors=%d non200=%d", rps, errCount.Load(), non200.Load())
	if non200.Load() > 0 {
		return Result{Status: StatusFail, Note: note}
	}
	return Result{Status: StatusPass, Note: note}
}

func jsonEqual(got []byte, want string) bool {
	var a, b any
	if json.Unmarshal(got, &a) != nil || json.Unmarshal([]byte(want), &b) != nil {
		return false
	}
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	return bytes.Equal(ab, bb)
}
