package log

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesTypedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core), LevelDebug)

	l.With(String("body", "a")).Info("spawned",
		Int("vertices", 5),
		Float64("area", 12.5),
		Duration("dt", time.Second),
		Uint64("fingerprint", 42),
		Bool("static", false),
		Error(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "spawned", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "a", fields["body"])
	assert.Equal(t, int64(5), fields["vertices"])
	assert.Equal(t, 12.5, fields["area"])
	assert.Equal(t, uint64(42), fields["fingerprint"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLoggerLevelGate(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core), LevelWarn)

	l.Log(LevelInfo, "dropped")
	l.Log(LevelError, "kept")
	assert.Equal(t, 1, logs.Len())

	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.GetLevel())
	l.Log(LevelDebug, "now kept")
	assert.Equal(t, 2, logs.Len())
}

func TestFromZapLevelGatesEveryMethod(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core), LevelWarn)

	l.Debug("dropped")
	l.Info("dropped")
	l.With(String("k", "v")).Info("dropped")
	l.Warn("kept")
	l.Error("kept")
	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 0, logs.FilterMessage("dropped").Len())

	l.SetLevel(LevelInfo)
	l.Info("now kept")
	assert.Equal(t, 1, logs.FilterMessage("now kept").Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))

	_, ok := LookupLevel("nonsense")
	assert.False(t, ok)
	level, ok := LookupLevel("error")
	assert.True(t, ok)
	assert.Equal(t, LevelError, level)
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Info("ignored", String("k", "v"))
	assert.NoError(t, l.Sync())
}
