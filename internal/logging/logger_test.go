package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSetupDefaultsToWarn(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := Setup(&buf, "", "text")
	log.Info("hidden")
	log.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestRunIDTagsJSONEntries(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup(&buf, "debug", "json")

	id := NewRunID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ctx := WithRunID(context.Background(), id)
	require.Equal(t, id, RunID(ctx))
	WithFields(ctx, "stage", "load").Debug("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, id, entry["run_id"])
	require.Equal(t, "load", entry["stage"])
	require.Equal(t, "loaded", entry["msg"])
}

func TestValidLevelAndFormat(t *testing.T) {
	require.True(t, ValidLevel("DEBUG"))
	require.False(t, ValidLevel("trace"))
	require.True(t, ValidFormat("json"))
	require.False(t, ValidFormat("xml"))
}
