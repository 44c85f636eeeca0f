// Package adapters はファンド詳細フィーチャーのローダー実装を提供します。
package adapters

import (
	"gorm.io/gorm"

	"fund_pipeline/internal/feature/detail/domain/entity"
	"fund_pipeline/internal/pipeline/load"
	"fund_pipeline/internal/pipeline/record"
	"fund_pipeline/internal/pipeline/rowhash"
)

// NewFundInfoLoader はファンド基本情報テーブルのローダーを生成します。
func NewFundInfoLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: infoModel}
}

// NewFundFeesLoader は手数料テーブルのローダーを生成します。
func NewFundFeesLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: feesModel}
}

// NewFundRiskLoader はリスク指標テーブルのローダーを生成します。
func NewFundRiskLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: riskModel}
}

// NewFundPolicyLoader は配当方針テーブルのローダーを生成します。
func NewFundPolicyLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: policyModel}
}

func infoModel(r record.Row) load.Model {
	return &entity.FundInfo{
		Ticker:          r.Get("ticker"),
		AssetType:       r.Get("asset_type"),
		Source:          r.Get("source"),
		Name:            r.Ptr("name"),
		ISINNumber:      r.Ptr("isin_number"),
		Issuer:          r.Ptr("issuer"),
		Category:        r.Ptr("category"),
		IndexBenchmark:  r.Ptr("index_benchmark"),
		InceptionDate:   r.Ptr("inception_date"),
		Exchange:        r.Ptr("exchange"),
		Country:         r.Ptr("country"),
		SharesOut:       r.Ptr("shares_out"),
		InvestmentStyle: r.Ptr("investment_style"),
		RowHash:         r.Ptr(rowhash.Column),
	}
}

func feesModel(r record.Row) load.Model {
	return &entity.FundFees{
		Ticker:           r.Get("ticker"),
		AssetType:        r.Get("asset_type"),
		Source:           r.Get("source"),
		ExpenseRatio:     r.Ptr("expense_ratio"),
		InitialCharge:    r.Ptr("initial_charge"),
		ExitCharge:       r.Ptr("exit_charge"),
		AssetsAum:        r.Ptr("assets_aum"),
		Top10HoldPct:     r.Ptr("top_10_hold_pct"),
		HoldingsCount:    r.Ptr("holdings_count"),
		HoldingsTurnover: r.Ptr("holdings_turnover"),
		RowHash:          r.Ptr(rowhash.Column),
	}
}

func riskModel(r record.Row) load.Model {
	return &entity.FundRisk{
		Ticker:    r.Get("ticker"),
		AssetType: r.Get("asset_type"),
		Source:    r.Get("source"),

		Sharpe1Y: r.Ptr("sharpe_1y"), Sharpe3Y: r.Ptr("sharpe_3y"), Sharpe5Y: r.Ptr("sharpe_5y"),
		Beta1Y: r.Ptr("beta_1y"), Beta3Y: r.Ptr("beta_3y"), Beta5Y: r.Ptr("beta_5y"),
		Alpha1Y: r.Ptr("alpha_1y"), Alpha3Y: r.Ptr("alpha_3y"), Alpha5Y: r.Ptr("alpha_5y"),
		StdDev1Y: r.Ptr("std_dev_1y"), StdDev3Y: r.Ptr("std_dev_3y"), StdDev5Y: r.Ptr("std_dev_5y"),
		RSquared1Y: r.Ptr("r_squared_1y"), RSquared3Y: r.Ptr("r_squared_3y"), RSquared5Y: r.Ptr("r_squared_5y"),

		MorningstarRating: r.Ptr("morningstar_rating"),
		RowHash:           r.Ptr(rowhash.Column),
	}
}

func policyModel(r record.Row) load.Model {
	return &entity.FundPolicy{
		Ticker:           r.Get("ticker"),
		AssetType:        r.Get("asset_type"),
		Source:           r.Get("source"),
		DividendYield:    r.Ptr("dividend_yield"),
		DividendGrowth1Y: r.Ptr("dividend_growth_1y"),
		DividendGrowth3Y: r.Ptr("dividend_growth_3y"),
		DividendGrowth5Y: r.Ptr("dividend_growth_5y"),
		PayoutRatio:      r.Ptr("payout_ratio"),
		TotalReturnYtd:   r.Ptr("total_return_ytd"),
		TotalReturn1Y:    r.Ptr("total_return_1y"),
		PeRatio:          r.Ptr("pe_ratio"),
		RowHash:          r.Ptr(rowhash.Column),
	}
}
