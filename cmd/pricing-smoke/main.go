// README: Smoke runner for a deployed pricing API; executes HTTP/DB/Redis checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	runner := NewRunner(cfg)
	results := runner.RunAll(ctx)

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
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	MigrationPath  string
	ApplyMigration bool
	VehicleID      string
	Strict         bool
	Timeout        time.Duration
}

// loadConfig reads flags; their defaults come from CARHIRE_SMOKE_* and the
// shared CARHIRE_DB_DSN / CARHIRE_REDIS_ADDR variables.
func loadConfig() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("CARHIRE_SMOKE_BASE_URL", "http://localhost:8080")
	v.SetDefault("CARHIRE_DB_DSN", "")
	v.SetDefault("CARHIRE_REDIS_ADDR", "")
	v.SetDefault("CARHIRE_SMOKE_MIGRATION", "migrations/0001_init.sql")
	v.SetDefault("CARHIRE_SMOKE_APPLY_MIGRATION", false)
	v.SetDefault("CARHIRE_SMOKE_VEHICLE_ID", "")
	v.SetDefault("CARHIRE_SMOKE_STRICT", false)
	v.SetDefault("CARHIRE_SMOKE_TIMEOUT", 60*time.Second)

	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", v.GetString("CARHIRE_SMOKE_BASE_URL"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", v.GetString("CARHIRE_DB_DSN"), "Postgres DSN")
	flag.StringVar(&cfg.RedisAddr, "redis", v.GetString("CARHIRE_REDIS_ADDR"), "Redis address")
	flag.StringVar(&cfg.MigrationPath, "migration", v.GetString("CARHIRE_SMOKE_MIGRATION"), "Migration SQL path")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", v.GetBool("CARHIRE_SMOKE_APPLY_MIGRATION"), "Apply migration SQL before checks")
	flag.StringVar(&cfg.VehicleID, "vehicle", v.GetString("CARHIRE_SMOKE_VEHICLE_ID"), "Vehicle ID for the quote check")
	flag.BoolVar(&cfg.Strict, "strict", v.GetBool("CARHIRE_SMOKE_STRICT"), "Fail on skipped checks")
	flag.DurationVar(&cfg.Timeout, "timeout", v.GetDuration("CARHIRE_SMOKE_TIMEOUT"), "Total timeout")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}
