// Package entity はファンド詳細フィーチャーのドメインモデルを定義します。
// 詳細テーブルは銘柄につき最新の1スナップショットだけを保持するため、
// 自然キーは (ticker, asset_type, source) のみです。
package entity

import "time"

// FundInfo はファンドの基本属性を表します。
type FundInfo struct {
	ID              uint    `gorm:"primaryKey"`
	Ticker          string  `gorm:"size:50;not null;uniqueIndex:uq_fund_info,priority:1"`
	AssetType       string  `gorm:"size:20;not null;uniqueIndex:uq_fund_info,priority:2"`
	Source          string  `gorm:"size:50;not null;uniqueIndex:uq_fund_info,priority:3"`
	Name            *string `gorm:"size:255"`
	ISINNumber      *string `gorm:"column:isin_number;size:20"`
	Issuer          *string `gorm:"size:255"`
	Category        *string `gorm:"size:100"`
	IndexBenchmark  *string `gorm:"size:255"`
	InceptionDate   *string `gorm:"size:10"`
	Exchange        *string `gorm:"size:100"`
	Country         *string `gorm:"size:100"`
	SharesOut       *string `gorm:"column:shares_out;type:decimal(24,0)"`
	InvestmentStyle *string `gorm:"size:100"`
	RowHash         *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FundInfo) TableName() string { return "stg_fund_info" }

func (m *FundInfo) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":     m.Ticker,
		"asset_type": m.AssetType,
		"source":     m.Source,
	}
}

func (m *FundInfo) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *FundInfo) ContentAssignments() map[string]any {
	return map[string]any{
		"name":             m.Name,
		"isin_number":      m.ISINNumber,
		"issuer":           m.Issuer,
		"category":         m.Category,
		"index_benchmark":  m.IndexBenchmark,
		"inception_date":   m.InceptionDate,
		"exchange":         m.Exchange,
		"country":          m.Country,
		"shares_out":       m.SharesOut,
		"investment_style": m.InvestmentStyle,
	}
}
