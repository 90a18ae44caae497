package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var l Logger = &zapLogger{logger: zap.New(core)}

	l.With(String("city", "Lyon")).Warn("page failed", Error(errors.New("boom")), Int("attempt", 1))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "page failed", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "Lyon", fields["city"])
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, int64(1), fields["attempt"])
}

func TestNew(t *testing.T) {
	l, err := New("info")
	require.NoError(t, err)
	l.Debug("hidden")
	NewNop().Info("discarded")
}
