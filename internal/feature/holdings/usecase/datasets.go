// Package usecase は保有銘柄ドメインのステージ定義を提供します。
package usecase

import (
	"path/filepath"

	"fund_pipeline/internal/pipeline"
	"fund_pipeline/internal/pipeline/clean"
	"fund_pipeline/internal/pipeline/merge"
	"fund_pipeline/internal/pipeline/validate"
	"fund_pipeline/internal/shared/sources"
)

// データセット識別子。
const (
	HoldingsDataset    = "fund_holdings"
	AllocationsDataset = "allocations"
	MetricsDataset     = "fund_metrics"
)

// Loaders は保有銘柄ドメインが必要とするローダー群です。
type Loaders struct {
	Holdings    pipeline.Loader
	Allocations pipeline.Loader
	Metrics     pipeline.Loader
}

// Domain は保有銘柄ドメインの定義を組み立てます。
// 保有・配分データは開示頻度がまちまちでゲート対象外です。
func Domain(rawDir string, priority []string, l Loaders) pipeline.Domain {
	return pipeline.Domain{
		Name: "holdings",
		Datasets: []pipeline.Dataset{
			holdingsDataset(rawDir, priority, l.Holdings),
			allocationsDataset(rawDir, priority, l.Allocations),
			metricsDataset(rawDir, priority, l.Metrics),
		},
	}
}

func holdingsDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	return pipeline.Dataset{
		Name: HoldingsDataset,
		RawSources: globAll(rawDir, "holdings*.csv",
			sources.YahooFinance, sources.StockAnalysis),
		Schema: clean.Schema{
			Columns: []clean.Column{
				{Name: "ticker", Kind: clean.UpperText, Required: true},
				{Name: "asset_type", Kind: clean.UpperText, Required: true},
				{Name: "source", Kind: clean.Text, Required: true},
				{Name: "holding_name", Kind: clean.Text, Required: true},
				{Name: "as_of_date", Kind: clean.Date, Required: true},
				{Name: "holding_ticker", Kind: clean.UpperText},
				{Name: "holding_percentage", Kind: clean.Number},
				{Name: "shares_held", Kind: clean.Int},
				{Name: "market_value", Kind: clean.Number},
				{Name: "sector", Kind: clean.Text},
				{Name: "country", Kind: clean.Text},
			},
			Renames: map[string]string{
				"symbol":   "ticker",
				"holding":  "holding_name",
				"name":     "holding_name",
				"weight":   "holding_percentage",
				"% assets": "holding_percentage",
				"shares":   "shares_held",
			},
			Aliases: sourceAliases(),
		},
		Merge: merge.Spec{
			KeyColumns:  []string{"ticker", "asset_type", "holding_name", "as_of_date"},
			CrossSource: true,
			Priority:    priority,
		},
		Rules: validate.Rules{
			Required:    []string{"ticker", "asset_type", "holding_name", "as_of_date"},
			NonNegative: []string{"holding_percentage", "shares_held", "market_value"},
			NotFuture:   []string{"as_of_date"},
			KeyColumns:  []string{"ticker", "asset_type", "holding_name", "as_of_date"},
		},
		ContentColumns: []string{
			"holding_ticker", "holding_percentage", "shares_held",
			"market_value", "sector", "country",
		},
		Loader:         loader,
	}
}

func allocationsDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	return pipeline.Dataset{
		Name: AllocationsDataset,
		RawSources: globAll(rawDir, "allocations*.csv",
			sources.YahooFinance, sources.StockAnalysis),
		Schema: clean.Schema{
			Columns: []clean.Column{
				{Name: "ticker", Kind: clean.UpperText, Required: true},
				{Name: "asset_type", Kind: clean.UpperText, Required: true},
				{Name: "source", Kind: clean.Text, Required: true},
				{Name: "allocation_type", Kind: clean.Text, Required: true},
				{Name: "item_name", Kind: clean.Text, Required: true},
				{Name: "as_of_date", Kind: clean.Date, Required: true},
				// ロング・ショートを持つファンドではネット値が負になり得る
				{Name: "value_net", Kind: clean.Number},
				{Name: "value_category_avg", Kind: clean.Number},
				{Name: "value_long", Kind: clean.Number},
				{Name: "value_short", Kind: clean.Number},
			},
			Renames: map[string]string{
				"symbol":       "ticker",
				"item":         "item_name",
				"percent":      "value_net",
				"weight":       "value_net",
				"net":          "value_net",
				"category_avg": "value_category_avg",
				"long":         "value_long",
				"short":        "value_short",
				"category":     "allocation_type",
			},
			Aliases: sourceAliases(),
		},
		Merge: merge.Spec{
			KeyColumns:  []string{"ticker", "asset_type", "allocation_type", "item_name", "as_of_date"},
			CrossSource: true,
			Priority:    priority,
		},
		Rules: validate.Rules{
			Required:    []string{"ticker", "asset_type", "allocation_type", "item_name", "as_of_date"},
			NonNegative: []string{"value_long", "value_short"},
			NotFuture:   []string{"as_of_date"},
			KeyColumns:  []string{"ticker", "asset_type", "allocation_type", "item_name", "as_of_date"},
		},
		ContentColumns: []string{"value_net", "value_category_avg", "value_long", "value_short"},
		Loader:         loader,
	}
}

func metricsDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	keyCols := []string{"ticker", "asset_type", "metric_type", "metric_name", "column_name", "as_of_date"}
	return pipeline.Dataset{
		Name: MetricsDataset,
		RawSources: globAll(rawDir, "metrics*.csv",
			sources.StockAnalysis),
		Schema: clean.Schema{
			Columns: []clean.Column{
				{Name: "ticker", Kind: clean.UpperText, Required: true},
				{Name: "asset_type", Kind: clean.UpperText, Required: true},
				{Name: "source", Kind: clean.Text, Required: true},
				{Name: "metric_type", Kind: clean.Text, Required: true},
				{Name: "metric_name", Kind: clean.Text, Required: true},
				{Name: "column_name", Kind: clean.Text, Required: true},
				{Name: "as_of_date", Kind: clean.Date, Required: true},
				// 指標値は数値とは限らない（"AAA" 等の格付けを含む）ため
				// 原文をそのまま残し、数値化できたものを value_num に併置する
				{Name: "value_raw", Kind: clean.Text},
				{Name: "value_num", Kind: clean.Number},
			},
			Renames: map[string]string{
				"symbol": "ticker",
				"value":  "value_raw",
			},
			Aliases: sourceAliases(),
		},
		Merge: merge.Spec{
			KeyColumns:  keyCols,
			CrossSource: true,
			Priority:    priority,
		},
		Rules: validate.Rules{
			Required:   keyCols,
			NotFuture:  []string{"as_of_date"},
			KeyColumns: keyCols,
		},
		ContentColumns: []string{"value_raw", "value_num"},
		Loader:         loader,
	}
}

func sourceAliases() map[string]map[string]string {
	return map[string]map[string]string{"source": sources.Aliases()}
}

func globAll(rawDir, pattern string, srcs ...string) []pipeline.RawSource {
	out := make([]pipeline.RawSource, 0, len(srcs))
	for _, src := range srcs {
		out = append(out, pipeline.RawSource{
			Source: src,
			Glob:   filepath.Join(rawDir, sources.Slug(src), pattern),
		})
	}
	return out
}
