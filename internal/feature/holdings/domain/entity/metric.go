package entity

import "time"

// FundMetric はソース固有の雑多な指標の1項目を表します。
// 固定スキーマに収まらない指標を (metric_type, metric_name, column_name) の
// 縦持ちで保持します。原文の値と数値化できた値を併置します。
type FundMetric struct {
	ID         uint    `gorm:"primaryKey"`
	Ticker     string  `gorm:"size:50;not null;uniqueIndex:uq_fund_metrics,priority:1"`
	AssetType  string  `gorm:"size:20;not null;uniqueIndex:uq_fund_metrics,priority:2"`
	Source     string  `gorm:"size:50;not null;uniqueIndex:uq_fund_metrics,priority:3"`
	MetricType string  `gorm:"size:50;not null;uniqueIndex:uq_fund_metrics,priority:4"`
	MetricName string  `gorm:"size:100;not null;uniqueIndex:uq_fund_metrics,priority:5"`
	ColumnName string  `gorm:"size:100;not null;uniqueIndex:uq_fund_metrics,priority:6"`
	AsOfDate   string  `gorm:"size:10;not null;uniqueIndex:uq_fund_metrics,priority:7"`
	ValueRaw   *string `gorm:"type:text"`
	ValueNum   *string `gorm:"type:decimal(24,6)"`
	RowHash    *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FundMetric) TableName() string { return "stg_fund_metrics" }

func (m *FundMetric) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":      m.Ticker,
		"asset_type":  m.AssetType,
		"source":      m.Source,
		"metric_type": m.MetricType,
		"metric_name": m.MetricName,
		"column_name": m.ColumnName,
		"as_of_date":  m.AsOfDate,
	}
}

func (m *FundMetric) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *FundMetric) ContentAssignments() map[string]any {
	return map[string]any{
		"value_raw": m.ValueRaw,
		"value_num": m.ValueNum,
	}
}
