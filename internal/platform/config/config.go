// Package config は環境変数からパイプラインの実行構成を読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fund_pipeline/internal/pipeline"
	"fund_pipeline/internal/shared/sources"
)

// Config は1回のパイプライン実行の構成です。
type Config struct {
	// DataDir は生抽出物と中間ファイルのルートディレクトリです。
	DataDir string
	// RunDate は実行基準日（YYYY-MM-DD）です。未指定なら当日になります。
	RunDate string
	// Workers はローダーの並行ワーカー数です。
	Workers int
	// Resume が真なら既存のステージ出力から再開します。
	Resume bool
	// GateThreshold は完全性ゲートの閾値（0〜1）です。
	GateThreshold float64
	// GatePolicy はゲート不通過時の方針です。
	GatePolicy pipeline.GatePolicy
	// SourcePriority はマージ時のソース優先順位です。
	SourcePriority []string
	// Timeout は実行全体の制限時間です。
	Timeout time.Duration
}

// Load は .env と環境変数から構成を組み立てます。
// 不正な値は黙って既定値に落とさず、エラーとして返します。
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug("no .env file, using process environment")
	}

	cfg := Config{
		DataDir:        envOr("DATA_DIR", "data"),
		RunDate:        envOr("RUN_DATE", time.Now().UTC().Format("2006-01-02")),
		Workers:        4,
		GateThreshold:  0.8,
		GatePolicy:     pipeline.GateStrict,
		SourcePriority: sources.DefaultPriority(),
		Timeout:        30 * time.Minute,
	}

	if _, err := time.Parse("2006-01-02", cfg.RunDate); err != nil {
		return Config{}, fmt.Errorf("invalid RUN_DATE %q: %w", cfg.RunDate, err)
	}

	if v := os.Getenv("SYNC_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid SYNC_WORKERS %q", v)
		}
		cfg.Workers = n
	}

	if v := os.Getenv("SYNC_COMPLETENESS_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return Config{}, fmt.Errorf("invalid SYNC_COMPLETENESS_THRESHOLD %q", v)
		}
		cfg.GateThreshold = f
	}

	if v := os.Getenv("SYNC_GATE_MODE"); v != "" {
		switch pipeline.GatePolicy(v) {
		case pipeline.GateStrict, pipeline.GatePermissive:
			cfg.GatePolicy = pipeline.GatePolicy(v)
		default:
			return Config{}, fmt.Errorf("invalid SYNC_GATE_MODE %q (want strict or permissive)", v)
		}
	}

	if v := os.Getenv("SOURCE_PRIORITY"); v != "" {
		var priority []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				priority = append(priority, s)
			}
		}
		if len(priority) == 0 {
			return Config{}, fmt.Errorf("invalid SOURCE_PRIORITY %q", v)
		}
		cfg.SourcePriority = priority
	}

	if v := os.Getenv("SYNC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid SYNC_TIMEOUT %q", v)
		}
		cfg.Timeout = d
	}

	cfg.Resume = os.Getenv("RESUME") == "true"
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
