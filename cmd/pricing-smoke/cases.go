// README: Smoke checks against the pricing API, its Postgres config tables and Redis.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
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
		httpc: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "dsn not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: StatusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: StatusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: StatusPass, Note: fmt.Sprintf("%d tables", len(tables))}
			},
		},
		{
			Name: "Config: default transfer pricing row",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				var n int
				if err := r.db.QueryRow(ctx,
					"SELECT count(*) FROM transfer_pricing_config WHERE key = 'default'",
				).Scan(&n); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if n != 1 {
					return Result{Status: StatusFail, Note: "no default transfer config"}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *Runner) Result {
				return r.expect(ctx, http.MethodGet, base+"/health", nil, http.StatusOK, nil)
			},
		},
		{
			Name: "Transfer: in-city coordinates -> fixed price",
			Run: func(ctx context.Context, r *Runner) Result {
				body := map[string]any{
					"pickup":   map[string]any{"lat": 46.77, "lng": 23.60},
					"dropoff":  map[string]any{"lat": 46.78, "lng": 23.61},
					"category": "standard",
				}
				return r.expect(ctx, http.MethodPost, base+"/api/transfer-price", body, http.StatusOK, func(b map[string]any) string {
					calc, _ := b["calculated"].(map[string]any)
					if calc["pricingSource"] != "fixed" || calc["totalPrice"] == nil {
						return fmt.Sprintf("unexpected quote: %v", calc)
					}
					return ""
				})
			},
		},
		{
			Name: "Transfer: missing category -> 400",
			Run: func(ctx context.Context, r *Runner) Result {
				body := map[string]any{
					"pickup":  map[string]any{"lat": 46.77, "lng": 23.60},
					"dropoff": map[string]any{"lat": 46.78, "lng": 23.61},
				}
				return r.expect(ctx, http.MethodPost, base+"/api/transfer-price", body, http.StatusBadRequest, nil)
			},
		},
		{
			Name: "Vehicle: unknown id -> 404",
			Run: func(ctx context.Context, r *Runner) Result {
				return r.expect(ctx, http.MethodGet, base+"/api/vehicles/smoke-missing-vehicle/quote", nil, http.StatusNotFound, nil)
			},
		},
		{
			Name: "Vehicle: 3-day quote",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.cfg.VehicleID == "" {
					return Result{Status: StatusSkip, Note: "vehicle id not configured"}
				}
				url := fmt.Sprintf("%s/api/vehicles/%s/quote?pickupDate=2030-03-01&returnDate=2030-03-04", base, r.cfg.VehicleID)
				return r.expect(ctx, http.MethodGet, url, nil, http.StatusOK, func(b map[string]any) string {
					if b["totalPrice"] == nil || b["days"] != float64(3) {
						return fmt.Sprintf("unexpected quote: %v", b)
					}
					return ""
				})
			},
		},
	}
}

// expect sends one request and checks the status; check, when set, inspects
// the decoded JSON body and returns a failure note or "".
func (r *Runner) expect(ctx context.Context, method, url string, payload any, want int, check func(map[string]any) string) Result {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return Result{Status: StatusFail, Note: err.Error()}
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	if resp.StatusCode != want {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", resp.StatusCode, want)}
	}
	if check != nil {
		var decoded map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return Result{Status: StatusFail, Latency: latency, Note: "decode: " + err.Error()}
		}
		if note := check(decoded); note != "" {
			return Result{Status: StatusFail, Latency: latency, Note: note}
		}
	}
	return Result{Status: StatusPass, Latency: latency}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
