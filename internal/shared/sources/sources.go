// Package sources はデータソースの識別子を定義します。
// スクレイパーが出力する生CSVのsourceカラム、マージの優先順位、
// 生抽出物のディレクトリ名はすべてここの定義に揃えます。
package sources

// ソース識別子。生データおよびターゲットテーブルのsourceカラムに入る値です。
const (
	FinancialTimes = "Financial Times"
	YahooFinance   = "Yahoo Finance"
	StockAnalysis  = "Stock Analysis"
)

// slugs は生抽出物のディレクトリ名です。
var slugs = map[string]string{
	FinancialTimes: "ft",
	YahooFinance:   "yahoo",
	StockAnalysis:  "stockanalysis",
}

// Slug はソースの生抽出物ディレクトリ名を返します。未知のソースはそのまま返します。
func Slug(name string) string {
	if s, ok := slugs[name]; ok {
		return s
	}
	return name
}

// Aliases はsourceカラムの表記ゆれから正規名への読み替えを返します。
// スクレイパーの世代によって空白なしやスラッグでの出力が混在するためです。
func Aliases() map[string]string {
	return map[string]string{
		"FinancialTimes": FinancialTimes,
		"FT":             FinancialTimes,
		"ft":             FinancialTimes,
		"YahooFinance":   YahooFinance,
		"Yahoo":          YahooFinance,
		"yahoo":          YahooFinance,
		"StockAnalysis":  StockAnalysis,
		"stockanalysis":  StockAnalysis,
	}
}

// DefaultPriority はマージ時の既定のソース優先順位を返します。
func DefaultPriority() []string {
	return []string{FinancialTimes, YahooFinance, StockAnalysis}
}
