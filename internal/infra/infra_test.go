package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "info")
	log.Debug("hidden")
	log.Info("shown", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "carhire-pricing", line["service"])
	assert.Equal(t, "v", line["k"])
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedis(context.Background(), addr)
	assert.Error(t, err)
}

// TestNewDB runs only against a real database.
func TestNewDB(t *testing.T) {
	dsn := os.Getenv("CARHIRE_TEST_DSN")
	if dsn == "" {
		t.Skip("CARHIRE_TEST_DSN not set; skipping integration test")
	}
	pool, err := NewDB(context.Background(), dsn)
	require.NoError(t, err)
	defer pool.Close()

	var q Querier = pool
	var one int
	require.NoError(t, q.QueryRow(context.Background(), "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}
