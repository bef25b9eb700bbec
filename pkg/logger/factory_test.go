package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadis/inquiry/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to JSON at info", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Zero(t, buf.Len())

		log.Info("hello")
		entry := decodeLine(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText)).Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test"))).Info("msg")
		assert.Equal(t, "test", decodeLine(t, buf)["svc"])
	})

	t.Run("context value", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("trace", key{}))
		log.InfoContext(context.WithValue(context.Background(), key{}, "t-1"), "msg")
		assert.Equal(t, "t-1", decodeLine(t, buf)["trace"])
	})

	t.Run("extractors survive With", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				v, ok := ctx.Value(key{}).(string)
				return slog.String("id", v), ok
			}),
		).With(logger.Component("contact"))

		log.InfoContext(context.WithValue(context.Background(), key{}, "42"), "msg")
		entry := decodeLine(t, buf)
		assert.Equal(t, "42", entry["id"])
		assert.Equal(t, "contact", entry["component"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       string
		wantEnv   string
		debugLogs bool
		json      bool
	}{
		{env: "production", wantEnv: "production", json: true},
		{env: "prod", wantEnv: "production", json: true},
		{env: "staging", wantEnv: "staging", json: true},
		{env: "development", wantEnv: "development", debugLogs: true},
		{env: "", wantEnv: "development", debugLogs: true},
	}

	for _, tt := range tests {
		t.Run(tt.wantEnv+"/"+tt.env, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(tt.env, "inquiry"))

			log.Debug("debug")
			assert.Equal(t, tt.debugLogs, buf.Len() > 0)
			buf.Reset()

			log.Info("info")
			if tt.json {
				entry := decodeLine(t, buf)
				assert.Equal(t, "inquiry", entry["service"])
				assert.Equal(t, tt.wantEnv, entry["env"])
			} else {
				assert.Contains(t, buf.String(), "service=inquiry")
				assert.Contains(t, buf.String(), "env="+tt.wantEnv)
			}
		})
	}
}

func TestWithFormatPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()

		opts, err := logger.Config{Env: "production", Service: "inquiry", Level: "debug", Format: "text"}.Options()
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		logger.New(append(opts, logger.WithOutput(buf))...).Debug("visible")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "env=production")
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()

		_, err := logger.Config{Level: "loud"}.Options()
		assert.ErrorContains(t, err, "LOG_LEVEL")
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		_, err := logger.Config{Format: "xml"}.Options()
		assert.ErrorContains(t, err, "LOG_FORMAT")
	})
}
