package config

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FOOD_PLATFORM_TEST_KEY", "value")

	assert.Equal(t, "value", GetEnv("FOOD_PLATFORM_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("FOOD_PLATFORM_MISSING_KEY", "fallback"))
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{name: "go duration", raw: "250ms", want: 250 * time.Millisecond},
		{name: "plain seconds", raw: "7", want: 7 * time.Second},
		{name: "garbage falls back", raw: "soon", want: 3 * time.Second},
		{name: "empty falls back", raw: "", want: 3 * time.Second},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv("FOOD_PLATFORM_TIMEOUT", testCase.raw)
			assert.Equal(t, testCase.want, GetDuration("FOOD_PLATFORM_TIMEOUT", 3*time.Second))
		})
	}
}

func TestLoadEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	err := os.WriteFile(path, []byte("FOOD_PLATFORM_FROM_FILE=file\nFOOD_PLATFORM_PRESET=file\n"), 0o600)
	assert.NoError(t, err)

	t.Setenv("FOOD_PLATFORM_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("FOOD_PLATFORM_FROM_FILE") })

	LoadEnv(path)

	assert.Equal(t, "file", os.Getenv("FOOD_PLATFORM_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("FOOD_PLATFORM_PRESET"))
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "food")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "orders")

	assert.Equal(t, "host=db port=5432 user=food password=secret dbname=orders sslmode=disable", PostgresDSN())
}

func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_FORMAT", "console")
	assert.NotNil(t, NewLogger("order-svc"))
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunServer(ctx, "127.0.0.1:0", http.NotFoundHandler(), zap.NewNop())

	assert.NoError(t, err)
}
