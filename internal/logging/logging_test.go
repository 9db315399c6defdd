package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		rec := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}

	return out
}

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Writer: &buf})

	log.With(String("component", "solver")).Info(context.Background(), "solved",
		Int("rows", 4), Float("objective", 6500), Bool("optimal", true), Err(errors.New("boom")))

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 1)
	require.Equal(t, "solved", recs[0]["msg"])
	require.Equal(t, "INFO", recs[0]["level"])
	require.Equal(t, "solver", recs[0]["component"])
	require.EqualValues(t, 4, recs[0]["rows"])
	require.EqualValues(t, 6500, recs[0]["objective"])
	require.Equal(t, true, recs[0]["optimal"])
	require.Equal(t, "boom", recs[0]["error"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "json", Writer: &buf})
	ctx := context.Background()

	log.Debug(ctx, "d")
	log.Info(ctx, "i")
	log.Warn(ctx, "w")
	log.Error(ctx, "e")

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 2)
	require.Equal(t, "w", recs[0]["msg"])
	require.Equal(t, "e", recs[1]["msg"])
}

func TestTextFormatIsDefault(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Format: "yaml", Writer: &buf}).Info(context.Background(), "hello", String("k", "v"))
	require.Contains(t, buf.String(), "msg=hello")
	require.Contains(t, buf.String(), "k=v")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseLevel(in), in)
	}
}

func TestRunIDIsMintedOnceAndLogged(t *testing.T) {
	ctx, id := EnsureRunID(context.Background())
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	again, same := EnsureRunID(ctx)
	require.Equal(t, id, same)
	require.Equal(t, id, RunIDFromContext(again))

	var buf bytes.Buffer
	New(Config{Format: "json", Writer: &buf}).Info(ctx, "start")
	recs := decodeLines(t, &buf)
	require.Equal(t, id, recs[0][RunIDKey])
}

func TestContextHelpers(t *testing.T) {
	require.Equal(t, "", RunIDFromContext(context.Background()))
	require.Equal(t, Noop(), FromContext(context.Background()))

	var buf bytes.Buffer
	l := New(Config{Writer: &buf})
	ctx := ContextWithLogger(context.Background(), l)
	require.Same(t, l, FromContext(ctx))
	require.Equal(t, Noop(), FromContext(ContextWithLogger(context.Background(), nil)))
}

func TestNoopDiscards(t *testing.T) {
	l := Noop().With(String("a", "b"))
	l.Error(context.Background(), "ignored")
	require.Equal(t, Noop(), l)
}
