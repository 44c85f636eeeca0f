package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund_pipeline/internal/pipeline"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATA_DIR", "RUN_DATE", "SYNC_WORKERS", "SYNC_COMPLETENESS_THRESHOLD",
		"SYNC_GATE_MODE", "SOURCE_PRIORITY", "SYNC_TIMEOUT", "RESUME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.InDelta(t, 0.8, cfg.GateThreshold, 1e-9)
	assert.Equal(t, pipeline.GateStrict, cfg.GatePolicy)
	assert.Equal(t, []string{"Financial Times", "Yahoo Finance", "Stock Analysis"}, cfg.SourcePriority)
	assert.False(t, cfg.Resume)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, cfg.RunDate)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_DIR", "/var/fund/data")
	t.Setenv("RUN_DATE", "2024-01-02")
	t.Setenv("SYNC_WORKERS", "8")
	t.Setenv("SYNC_COMPLETENESS_THRESHOLD", "0.95")
	t.Setenv("SYNC_GATE_MODE", "permissive")
	t.Setenv("SOURCE_PRIORITY", "Yahoo Finance, Financial Times")
	t.Setenv("SYNC_TIMEOUT", "10m")
	t.Setenv("RESUME", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/fund/data", cfg.DataDir)
	assert.Equal(t, "2024-01-02", cfg.RunDate)
	assert.Equal(t, 8, cfg.Workers)
	assert.InDelta(t, 0.95, cfg.GateThreshold, 1e-9)
	assert.Equal(t, pipeline.GatePermissive, cfg.GatePolicy)
	assert.Equal(t, []string{"Yahoo Finance", "Financial Times"}, cfg.SourcePriority)
	assert.Equal(t, "10m0s", cfg.Timeout.String())
	assert.True(t, cfg.Resume)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"閾値が1を超える", "SYNC_COMPLETENESS_THRESHOLD", "1.5"},
		{"閾値が数値でない", "SYNC_COMPLETENESS_THRESHOLD", "high"},
		{"未知のゲートモード", "SYNC_GATE_MODE", "lenient"},
		{"ワーカー数がゼロ", "SYNC_WORKERS", "0"},
		{"基準日の形式が不正", "RUN_DATE", "02-01-2024"},
		{"制限時間が不正", "SYNC_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
