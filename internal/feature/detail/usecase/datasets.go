// Package usecase はファンド詳細ドメインのステージ定義を提供します。
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
	FundInfoDataset   = "fund_info"
	FundFeesDataset   = "fund_fees"
	FundRiskDataset   = "fund_risk"
	FundPolicyDataset = "fund_policy"
)

// riskHorizons と riskMetrics の組み合わせがリスク指標のカラム集合になります。
var (
	riskMetrics  = []string{"sharpe", "beta", "alpha", "std_dev", "r_squared"}
	riskHorizons = []string{"1y", "3y", "5y"}
)

func riskColumns() []string {
	var cols []string
	for _, m := range riskMetrics {
		for _, h := range riskHorizons {
			cols = append(cols, m+"_"+h)
		}
	}
	return append(cols, "morningstar_rating")
}

// Loaders はファンド詳細ドメインが必要とするローダー群です。
type Loaders struct {
	Info   pipeline.Loader
	Fees   pipeline.Loader
	Risk   pipeline.Loader
	Policy pipeline.Loader
}

// Domain はファンド詳細ドメインの定義を組み立てます。
// 詳細データは日次で揃う性質のものではないため、ゲート対象外です。
func Domain(rawDir string, priority []string, l Loaders) pipeline.Domain {
	return pipeline.Domain{
		Name: "detail",
		Datasets: []pipeline.Dataset{
			infoDataset(rawDir, priority, l.Info),
			feesDataset(rawDir, priority, l.Fees),
			riskDataset(rawDir, priority, l.Risk),
			policyDataset(rawDir, priority, l.Policy),
		},
	}
}

func keyColumns() []clean.Column {
	return []clean.Column{
		{Name: "ticker", Kind: clean.UpperText, Required: true},
		{Name: "asset_type", Kind: clean.UpperText, Required: true},
		{Name: "source", Kind: clean.Text, Required: true},
	}
}

func detailRules() validate.Rules {
	return validate.Rules{
		Required:   []string{"ticker", "asset_type"},
		KeyColumns: []string{"ticker", "asset_type"},
	}
}

func detailMerge(priority []string) merge.Spec {
	return merge.Spec{
		KeyColumns:  []string{"ticker", "asset_type"},
		CrossSource: true,
		Priority:    priority,
	}
}

func infoDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	rules := detailRules()
	rules.NotFuture = []string{"inception_date"}
	rules.NonNegative = []string{"shares_out"}
	return pipeline.Dataset{
		Name: FundInfoDataset,
		RawSources: globAll(rawDir, "fund_info*.csv",
			sources.FinancialTimes, sources.YahooFinance, sources.StockAnalysis),
		Schema: clean.Schema{
			Columns: append(keyColumns(),
				clean.Column{Name: "name", Kind: clean.Text},
				clean.Column{Name: "isin_number", Kind: clean.UpperText},
				clean.Column{Name: "issuer", Kind: clean.Text},
				clean.Column{Name: "category", Kind: clean.Text},
				clean.Column{Name: "index_benchmark", Kind: clean.Text},
				clean.Column{Name: "inception_date", Kind: clean.Date},
				clean.Column{Name: "exchange", Kind: clean.Text},
				clean.Column{Name: "country", Kind: clean.Text},
				clean.Column{Name: "shares_out", Kind: clean.Int},
				clean.Column{Name: "investment_style", Kind: clean.Text},
			),
			Renames: map[string]string{
				"symbol":             "ticker",
				"isin":               "isin_number",
				"fund_family":        "issuer",
				"family":             "issuer",
				"benchmark":          "index_benchmark",
				"launch_date":        "inception_date",
				"shares_outstanding": "shares_out",
				"style":              "investment_style",
			},
			Aliases: sourceAliases(),
		},
		Merge: detailMerge(priority),
		Rules: rules,
		ContentColumns: []string{
			"name", "isin_number", "issuer", "category", "index_benchmark",
			"inception_date", "exchange", "country", "shares_out", "investment_style",
		},
		Loader: loader,
	}
}

func feesDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	cols := []string{
		"expense_ratio", "initial_charge", "exit_charge", "assets_aum",
		"top_10_hold_pct", "holdings_count", "holdings_turnover",
	}
	rules := detailRules()
	rules.NonNegative = cols
	schemaCols := append(keyColumns(), numberColumns(cols)...)
	for i := range schemaCols {
		if schemaCols[i].Name == "holdings_count" {
			schemaCols[i].Kind = clean.Int
		}
	}
	return pipeline.Dataset{
		Name: FundFeesDataset,
		RawSources: globAll(rawDir, "fund_fees*.csv",
			sources.FinancialTimes, sources.YahooFinance),
		Schema: clean.Schema{
			Columns: schemaCols,
			Renames: map[string]string{
				"symbol":        "ticker",
				"ter":           "expense_ratio",
				"front_load":    "initial_charge",
				"deferred_load": "exit_charge",
				"aum":           "assets_aum",
				"total_assets":  "assets_aum",
				"turnover":      "holdings_turnover",
			},
			Aliases: sourceAliases(),
		},
		Merge:          detailMerge(priority),
		Rules:          rules,
		ContentColumns: cols,
		Loader:         loader,
	}
}

func riskDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	cols := riskColumns()
	rules := detailRules()
	// シャープレシオ等は負値を取り得るため、範囲検査は非負が自明な指標に限る
	rules.NonNegative = []string{
		"std_dev_1y", "std_dev_3y", "std_dev_5y",
		"r_squared_1y", "r_squared_3y", "r_squared_5y",
		"morningstar_rating",
	}
	return pipeline.Dataset{
		Name: FundRiskDataset,
		RawSources: globAll(rawDir, "fund_risk*.csv",
			sources.FinancialTimes, sources.YahooFinance),
		Schema: clean.Schema{
			Columns: append(keyColumns(), numberColumns(cols)...),
			Renames: map[string]string{
				"symbol": "ticker",
				"rating": "morningstar_rating",
			},
			Aliases: sourceAliases(),
		},
		Merge:          detailMerge(priority),
		Rules:          rules,
		ContentColumns: cols,
		Loader:         loader,
	}
}

func policyDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	cols := []string{
		"dividend_yield", "dividend_growth_1y", "dividend_growth_3y", "dividend_growth_5y",
		"payout_ratio", "total_return_ytd", "total_return_1y", "pe_ratio",
	}
	rules := detailRules()
	// 成長率・リターン・PER は負値を取り得る
	rules.NonNegative = []string{"dividend_yield", "payout_ratio"}
	return pipeline.Dataset{
		Name: FundPolicyDataset,
		RawSources: globAll(rawDir, "fund_policy*.csv",
			sources.FinancialTimes, sources.StockAnalysis),
		Schema: clean.Schema{
			Columns: append(keyColumns(), numberColumns(cols)...),
			Renames: map[string]string{
				"symbol": "ticker",
				"yield":  "dividend_yield",
			},
			Aliases: sourceAliases(),
		},
		Merge:          detailMerge(priority),
		Rules:          rules,
		ContentColumns: cols,
		Loader:         loader,
	}
}

func sourceAliases() map[string]map[string]string {
	return map[string]map[string]string{"source": sources.Aliases()}
}

func numberColumns(names []string) []clean.Column {
	cols := make([]clean.Column, len(names))
	for i, n := range names {
		cols[i] = clean.Column{Name: n, Kind: clean.Number}
	}
	return cols
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
