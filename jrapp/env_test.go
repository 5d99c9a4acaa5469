package jrapp_test

import (
	"os"
	"testing"
	"time"

	"github.com/advdv/jsonroutes/jrapp"
	"github.com/advdv/jsonroutes/jrapp/jrapptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type minimalEnv struct {
	jrapp.BaseEnvironment
}

func TestParseEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{
			"JR_PORT", "JR_ENV", "JR_LOG_LEVEL", "JR_OTEL_EXPORTER", "JR_READINESS_CHECK_PATH",
			"JR_INDEX_PATH", "JR_MAX_BODY_BYTES", "JR_REQUEST_TIMEOUT",
		} {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}
		t.Setenv("JR_SERVICE_NAME", "svc")

		env, err := jrapp.ParseEnv[minimalEnv]()()
		require.NoError(t, err)

		assert.Equal(t, 8080, env.Port)
		assert.Equal(t, "svc", env.ServiceName)
		assert.Equal(t, "production", env.Env)
		assert.Equal(t, zapcore.InfoLevel, env.LogLevel)
		assert.Equal(t, "stdout", env.OtelExporter)
		assert.Equal(t, "/health", env.ReadinessCheckPath)
		assert.Empty(t, env.IndexPath)
		assert.Equal(t, int64(jrapp.DefaultMaxBodyBytes), env.MaxBodyBytes)
		assert.Equal(t, 30*time.Second, env.RequestTimeout)
	})

	t.Run("overrides", func(t *testing.T) {
		jrapptest.SetBaseEnv(t, 9090).Development().IndexPath("/").MaxBodyBytes(10)

		env, err := jrapp.ParseEnv[minimalEnv]()()
		require.NoError(t, err)

		assert.Equal(t, 9090, env.Port)
		assert.Equal(t, "development", env.Env)
		assert.Equal(t, zapcore.WarnLevel, env.LogLevel)
		assert.Equal(t, "/", env.IndexPath)
		assert.Equal(t, int64(10), env.MaxBodyBytes)
		assert.Equal(t, 5*time.Second, env.RequestTimeout)
	})

	t.Run("missing service name", func(t *testing.T) {
		jrapptest.SetBaseEnv(t, 9090)
		os.Unsetenv("JR_SERVICE_NAME")

		_, err := jrapp.ParseEnv[minimalEnv]()()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JR_SERVICE_NAME")
	})

	t.Run("invalid log level", func(t *testing.T) {
		jrapptest.SetBaseEnv(t, 9090)
		t.Setenv("JR_LOG_LEVEL", "loud")

		_, err := jrapp.ParseEnv[minimalEnv]()()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse environment")
	})

	t.Run("body limit must be positive", func(t *testing.T) {
		jrapptest.SetBaseEnv(t, 9090).MaxBodyBytes(0)

		_, err := jrapp.ParseEnv[minimalEnv]()()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JR_MAX_BODY_BYTES must be positive")
	})

	t.Run("readiness path needs a slash", func(t *testing.T) {
		jrapptest.SetBaseEnv(t, 9090).ReadinessCheckPath("health")

		_, err := jrapp.ParseEnv[minimalEnv]()()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JR_READINESS_CHECK_PATH must start with a slash")
	})
}
