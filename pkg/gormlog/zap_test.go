package gormlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestShortCaller(t *testing.T) {
	require.Equal(t, "internal/platform/db/postgres.go:38", shortCaller("/src/dkstory/internal/platform/db/postgres.go:38"))
	require.Equal(t, "pkg/x/y.go:12", shortCaller("/home/u/dkstory/pkg/x/y.go:12"))
	require.Equal(t, "a/b/c.go:1", shortCaller("/very/long/a/b/c.go:1"))
	require.Equal(t, "", shortCaller(""))
}

func TestTrace_SkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := New(zap.New(core).Sugar(), false)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gormlogger.ErrRecordNotFound)
	require.Equal(t, 0, logs.Len())

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "gorm_trace", logs.All()[0].Message)
}

func TestTrace_InfoOnlyWhenVerbose(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	quiet := New(zap.New(core).Sugar(), false)
	quiet.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	require.Equal(t, 0, logs.Len())

	verbose := New(zap.New(core).Sugar(), true)
	verbose.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "gorm", logs.All()[0].Message)
}
