package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	detailadapters "fund_pipeline/internal/feature/detail/adapters"
	detailusecase "fund_pipeline/internal/feature/detail/usecase"
	holdingsadapters "fund_pipeline/internal/feature/holdings/adapters"
	holdingsusecase "fund_pipeline/internal/feature/holdings/usecase"
	masteradapters "fund_pipeline/internal/feature/master/adapters"
	masterusecase "fund_pipeline/internal/feature/master/usecase"
	perfadapters "fund_pipeline/internal/feature/performance/adapters"
	perfusecase "fund_pipeline/internal/feature/performance/usecase"
	"fund_pipeline/internal/pipeline"
	"fund_pipeline/internal/platform/config"
	"fund_pipeline/internal/platform/db"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gdb := db.OpenDB()
	rawDir := filepath.Join(cfg.DataDir, "raw")

	// マスターリポジトリはローダーであると同時に、ゲートの母数と廃止処理を提供する
	securityRepo := masteradapters.NewSecurityRepository(gdb, cfg.Workers, cfg.RunDate)

	orch := pipeline.New(pipeline.Options{
		DataDir: cfg.DataDir,
		RunDate: cfg.RunDate,
		Resume:  cfg.Resume,
		Gate: pipeline.Gate{
			Threshold: cfg.GateThreshold,
			Policy:    cfg.GatePolicy,
			Expected:  securityRepo,
		},
		Master: masterusecase.Domain(rawDir, cfg.SourcePriority, securityRepo),
		Performance: perfusecase.Domain(rawDir, cfg.SourcePriority, perfusecase.Loaders{
			Nav:          perfadapters.NewNavLoader(gdb, cfg.Workers),
			PriceHistory: perfadapters.NewPriceHistoryLoader(gdb, cfg.Workers),
			Dividends:    perfadapters.NewDividendLoader(gdb, cfg.Workers),
		}),
		Independent: []pipeline.Domain{
			detailusecase.Domain(rawDir, cfg.SourcePriority, detailusecase.Loaders{
				Info:   detailadapters.NewFundInfoLoader(gdb, cfg.Workers),
				Fees:   detailadapters.NewFundFeesLoader(gdb, cfg.Workers),
				Risk:   detailadapters.NewFundRiskLoader(gdb, cfg.Workers),
				Policy: detailadapters.NewFundPolicyLoader(gdb, cfg.Workers),
			}),
			holdingsusecase.Domain(rawDir, cfg.SourcePriority, holdingsusecase.Loaders{
				Holdings:    holdingsadapters.NewHoldingsLoader(gdb, cfg.Workers),
				Allocations: holdingsadapters.NewAllocationsLoader(gdb, cfg.Workers),
				Metrics:     holdingsadapters.NewMetricsLoader(gdb, cfg.Workers),
			}),
		},
		Maintenance: securityRepo,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	summary := orch.Run(ctx)
	if summary.State == pipeline.StateAborted {
		os.Exit(1)
	}
}
