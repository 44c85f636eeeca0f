// Package usecase はパフォーマンスドメインのステージ定義を提供します。
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
	DailyNavDataset     = "daily_nav"
	PriceHistoryDataset = "price_history"
	DividendDataset     = "dividend_history"
)

// Loaders はパフォーマンスドメインが必要とするローダー群です。
type Loaders struct {
	Nav          pipeline.Loader
	PriceHistory pipeline.Loader
	Dividends    pipeline.Loader
}

// Domain はパフォーマンスドメインの定義を組み立てます。
// 基準価額と日足価格は「今日の全銘柄分」が届く前提のためゲート対象、
// 配当は権利落ち日がある銘柄にしか存在しないためゲート対象外です。
func Domain(rawDir string, priority []string, l Loaders) pipeline.Domain {
	return pipeline.Domain{
		Name: "performance",
		Datasets: []pipeline.Dataset{
			navDataset(rawDir, priority, l.Nav),
			priceDataset(rawDir, priority, l.PriceHistory),
			dividendDataset(rawDir, priority, l.Dividends),
		},
	}
}

func navDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	return pipeline.Dataset{
		Name: DailyNavDataset,
		RawSources: globAll(rawDir, "nav*.csv",
			sources.FinancialTimes, sources.YahooFinance, sources.StockAnalysis),
		Schema: clean.Schema{
			Columns: []clean.Column{
				{Name: "ticker", Kind: clean.UpperText, Required: true},
				{Name: "asset_type", Kind: clean.UpperText, Required: true},
				{Name: "as_of_date", Kind: clean.Date, Required: true},
				{Name: "source", Kind: clean.Text, Required: true},
				{Name: "nav_price", Kind: clean.Number, Required: true},
				{Name: "currency", Kind: clean.UpperText},
				{Name: "scrape_date", Kind: clean.Date},
			},
			Renames: map[string]string{
				"symbol": "ticker",
				"date":   "as_of_date",
				"nav":    "nav_price",
				"price":  "nav_price",
			},
			Aliases: sourceAliases(),
		},
		Merge: merge.Spec{
			KeyColumns:  []string{"ticker", "asset_type", "as_of_date"},
			CrossSource: true,
			Priority:    priority,
		},
		Rules: validate.Rules{
			Required:   []string{"ticker", "asset_type", "as_of_date", "nav_price"},
			Positive:   []string{"nav_price"},
			NotFuture:  []string{"as_of_date"},
			KeyColumns: []string{"ticker", "asset_type", "as_of_date"},
		},
		// scrape_date は観測日であって内容ではないため、ハッシュには含めない
		ContentColumns: []string{"nav_price", "currency"},
		Loader:         loader,
		Gated:          true,
	}
}

func priceDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	return pipeline.Dataset{
		Name: PriceHistoryDataset,
		RawSources: globAll(rawDir, "prices*.csv",
			sources.YahooFinance, sources.StockAnalysis),
		Schema: clean.Schema{
			Columns: []clean.Column{
				{Name: "ticker", Kind: clean.UpperText, Required: true},
				{Name: "asset_type", Kind: clean.UpperText, Required: true},
				{Name: "date", Kind: clean.Date, Required: true},
				{Name: "source", Kind: clean.Text, Required: true},
				{Name: "open", Kind: clean.Number},
				{Name: "high", Kind: clean.Number},
				{Name: "low", Kind: clean.Number},
				{Name: "close", Kind: clean.Number, Required: true},
				{Name: "adj_close", Kind: clean.Number},
				{Name: "volume", Kind: clean.Int},
			},
			Renames: map[string]string{
				"symbol":         "ticker",
				"adjusted_close": "adj_close",
				"adj close":      "adj_close",
				"closing_price":  "close",
				"trading_volume": "volume",
			},
			Aliases: sourceAliases(),
		},
		Merge: merge.Spec{
			KeyColumns:  []string{"ticker", "asset_type", "date"},
			CrossSource: true,
			Priority:    priority,
		},
		Rules: validate.Rules{
			Required:    []string{"ticker", "asset_type", "date", "close"},
			Positive:    []string{"open", "high", "low", "close", "adj_close"},
			NonNegative: []string{"volume"},
			NotFuture:   []string{"date"},
			KeyColumns:  []string{"ticker", "asset_type", "date"},
		},
		ContentColumns: []string{"open", "high", "low", "close", "adj_close", "volume"},
		Loader:         loader,
		Gated:          true,
	}
}

func dividendDataset(rawDir string, priority []string, loader pipeline.Loader) pipeline.Dataset {
	return pipeline.Dataset{
		Name: DividendDataset,
		RawSources: globAll(rawDir, "dividends*.csv",
			sources.YahooFinance, sources.StockAnalysis),
		Schema: clean.Schema{
			Columns: []clean.Column{
				{Name: "ticker", Kind: clean.UpperText, Required: true},
				{Name: "asset_type", Kind: clean.UpperText, Required: true},
				{Name: "ex_date", Kind: clean.Date, Required: true},
				{Name: "source", Kind: clean.Text, Required: true},
				{Name: "payment_date", Kind: clean.Date},
				{Name: "amount", Kind: clean.Number, Required: true},
				{Name: "type", Kind: clean.UpperText},
				{Name: "currency", Kind: clean.UpperText},
			},
			Renames: map[string]string{
				"symbol":        "ticker",
				"ex_div_date":   "ex_date",
				"pay_date":      "payment_date",
				"dividend":      "amount",
				"dividend_type": "type",
			},
			Aliases: sourceAliases(),
		},
		Merge: merge.Spec{
			// 支払日はソースにより欠けることがあるためキーに含めず、優先ソースの値を採る
			KeyColumns:  []string{"ticker", "asset_type", "ex_date", "amount", "type"},
			CrossSource: true,
			Priority:    priority,
		},
		Rules: validate.Rules{
			Required: []string{"ticker", "asset_type", "ex_date", "amount"},
			Positive: []string{"amount"},
			// payment_date は予告された将来の支払いがあるため未来日を許す
			NotFuture:  []string{"ex_date"},
			KeyColumns: []string{"ticker", "asset_type", "ex_date", "payment_date", "amount", "type"},
		},
		ContentColumns: []string{"currency"},
		Loader:         loader,
		Gated:          false,
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
