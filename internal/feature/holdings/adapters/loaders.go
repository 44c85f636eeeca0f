// Package adapters は保有銘柄フィーチャーのローダー実装を提供します。
package adapters

import (
	"gorm.io/gorm"

	"fund_pipeline/internal/feature/holdings/domain/entity"
	"fund_pipeline/internal/pipeline/load"
	"fund_pipeline/internal/pipeline/record"
	"fund_pipeline/internal/pipeline/rowhash"
)

// NewHoldingsLoader は保有銘柄テーブルのローダーを生成します。
func NewHoldingsLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: holdingModel}
}

// NewAllocationsLoader は配分テーブルのローダーを生成します。
func NewAllocationsLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: allocationModel}
}

// NewMetricsLoader は指標テーブルのローダーを生成します。
func NewMetricsLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: metricModel}
}

func holdingModel(r record.Row) load.Model {
	return &entity.Holding{
		Ticker:            r.Get("ticker"),
		AssetType:         r.Get("asset_type"),
		Source:            r.Get("source"),
		HoldingName:       r.Get("holding_name"),
		AsOfDate:          r.Get("as_of_date"),
		HoldingTicker:     r.Ptr("holding_ticker"),
		HoldingPercentage: r.Ptr("holding_percentage"),
		SharesHeld:        r.Ptr("shares_held"),
		MarketValue:       r.Ptr("market_value"),
		Sector:            r.Ptr("sector"),
		Country:           r.Ptr("country"),
		RowHash:           r.Ptr(rowhash.Column),
	}
}

func allocationModel(r record.Row) load.Model {
	return &entity.Allocation{
		Ticker:           r.Get("ticker"),
		AssetType:        r.Get("asset_type"),
		Source:           r.Get("source"),
		AllocationType:   r.Get("allocation_type"),
		ItemName:         r.Get("item_name"),
		AsOfDate:         r.Get("as_of_date"),
		ValueNet:         r.Ptr("value_net"),
		ValueCategoryAvg: r.Ptr("value_category_avg"),
		ValueLong:        r.Ptr("value_long"),
		ValueShort:       r.Ptr("value_short"),
		RowHash:          r.Ptr(rowhash.Column),
	}
}

func metricModel(r record.Row) load.Model {
	return &entity.FundMetric{
		Ticker:     r.Get("ticker"),
		AssetType:  r.Get("asset_type"),
		Source:     r.Get("source"),
		MetricType: r.Get("metric_type"),
		MetricName: r.Get("metric_name"),
		ColumnName: r.Get("column_name"),
		AsOfDate:   r.Get("as_of_date"),
		ValueRaw:   r.Ptr("value_raw"),
		ValueNum:   r.Ptr("value_num"),
		RowHash:    r.Ptr(rowhash.Column),
	}
}
