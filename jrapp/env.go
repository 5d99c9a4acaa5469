package jrapp

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	development() bool
	logLevel() zapcore.Level
	otelExporter() string
	readinessCheckPath() string
	indexPath() string
	maxBodyBytes() int64
	requestTimeout() time.Duration
}

// BaseEnvironment contains the environment variables every app reads.
// Embed this in your custom environment struct.
type BaseEnvironment struct {
	Port        int    `env:"JR_PORT" envDefault:"8080"`
	ServiceName string `env:"JR_SERVICE_NAME,required"`
	// Env is the deployment environment. "development" pretty prints JSON results and switches to
	// human readable logs.
	Env                string        `env:"JR_ENV" envDefault:"production"`
	LogLevel           zapcore.Level `env:"JR_LOG_LEVEL" envDefault:"info"`
	OtelExporter       string        `env:"JR_OTEL_EXPORTER" envDefault:"stdout"`
	ReadinessCheckPath string        `env:"JR_READINESS_CHECK_PATH" envDefault:"/health"`
	// IndexPath serves the list of registered endpoints when set.
	IndexPath      string        `env:"JR_INDEX_PATH"`
	MaxBodyBytes   int64         `env:"JR_MAX_BODY_BYTES" envDefault:"52428800"`
	RequestTimeout time.Duration `env:"JR_REQUEST_TIMEOUT" envDefault:"30s"`
}

func (e BaseEnvironment) port() int {
	return e.Port
}

func (e BaseEnvironment) serviceName() string {
	return e.ServiceName
}

func (e BaseEnvironment) development() bool {
	return strings.EqualFold(e.Env, "development")
}

func (e BaseEnvironment) logLevel() zapcore.Level {
	return e.LogLevel
}

func (e BaseEnvironment) otelExporter() string {
	return e.OtelExporter
}

func (e BaseEnvironment) readinessCheckPath() string {
	return e.ReadinessCheckPath
}

func (e BaseEnvironment) indexPath() string {
	return e.IndexPath
}

func (e BaseEnvironment) maxBodyBytes() int64 {
	return e.MaxBodyBytes
}

func (e BaseEnvironment) requestTimeout() time.Duration {
	return e.RequestTimeout
}

func (e BaseEnvironment) validate() error {
	switch {
	case e.Port < 0 || e.Port > 65535:
		return errors.Newf("JR_PORT must be between 0 and 65535, got: %d", e.Port)
	case e.MaxBodyBytes <= 0:
		return errors.Newf("JR_MAX_BODY_BYTES must be positive, got: %d", e.MaxBodyBytes)
	case e.RequestTimeout < 0:
		return errors.Newf("JR_REQUEST_TIMEOUT must not be negative, got: %s", e.RequestTimeout)
	case !strings.HasPrefix(e.ReadinessCheckPath, "/"):
		return errors.Newf("JR_READINESS_CHECK_PATH must start with a slash, got: %q", e.ReadinessCheckPath)
	}

	return nil
}

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}

		if v, ok := any(e).(interface{ validate() error }); ok {
			if err := v.validate(); err != nil {
				return e, errors.Wrap(err, "invalid environment")
			}
		}

		return e, nil
	}
}
