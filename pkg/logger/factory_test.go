package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		require.NotNil(t, log)
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("json formatter wins when last", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithJSONFormatter())
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("level filtering", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("warn"))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("unknown level name is ignored", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelError), logger.WithLevelName("loud"))
		log.Warn("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("includes static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("msg")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "test", entry["svc"])
	})

	t.Run("extracts from context", func(t *testing.T) {
		type key struct{}
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("request_id", key{}))

		log.InfoContext(context.WithValue(context.Background(), key{}, "req-1"), "msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "req-1", entry["request_id"])

		buf.Reset()
		log.InfoContext(context.Background(), "msg")
		entry = map[string]any{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.NotContains(t, entry, "request_id")
	})

	t.Run("extractors survive With", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				return slog.String("tenant", "t1"), true
			}),
		).With(slog.String("component", "x")).WithGroup("g")
		log.Info("msg", slog.Int("n", 1))
		assert.Contains(t, buf.String(), `"tenant":"t1"`)
		assert.Contains(t, buf.String(), `"component":"x"`)
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment("", "svc"))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "service=svc")
		assert.Contains(t, buf.String(), "env=development")
	})

	for _, env := range []string{"production", "prod", "staging", "stage"} {
		t.Run(env, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(env, "svc"))
			log.Debug("dropped")
			assert.Empty(t, buf.String())

			log.Info("msg")
			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "svc", entry["service"])
			assert.Contains(t, []string{"production", "staging"}, entry["env"])
		})
	}
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, logger.OrDiscard(nil))
	assert.False(t, logger.OrDiscard(nil).Enabled(context.Background(), slog.LevelError))

	l := slog.Default()
	assert.Same(t, l, logger.OrDiscard(l))
}

func TestUserIDExtractor(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithTextFormatter(),
		logger.WithContextExtractors(logger.UserIDExtractor()),
	)

	log.InfoContext(logger.ContextWithUserID(context.Background(), "u-42"), "policy evaluated")
	assert.Contains(t, buf.String(), "user_id=u-42")

	buf.Reset()
	log.InfoContext(logger.ContextWithUserID(context.Background(), ""), "policy evaluated")
	assert.NotContains(t, buf.String(), "user_id")

	buf.Reset()
	log.With(logger.Group("trial")).InfoContext(logger.ContextWithUserID(context.Background(), "u-7"), "nested")
	assert.Contains(t, buf.String(), "group=trial")
	assert.Contains(t, buf.String(), "user_id=u-7")
}
