// Package entity は保有銘柄フィーチャーのドメインモデルを定義します。
// 保有・配分は基準日ごとのスナップショットで、1銘柄が複数行を持ちます。
package entity

import "time"

// Holding はファンドの保有銘柄1件を表します。
type Holding struct {
	ID                uint    `gorm:"primaryKey"`
	Ticker            string  `gorm:"size:50;not null;uniqueIndex:uq_fund_holdings,priority:1"`
	AssetType         string  `gorm:"size:20;not null;uniqueIndex:uq_fund_holdings,priority:2"`
	Source            string  `gorm:"size:50;not null;uniqueIndex:uq_fund_holdings,priority:3"`
	HoldingName       string  `gorm:"size:255;not null;uniqueIndex:uq_fund_holdings,priority:4"`
	AsOfDate          string  `gorm:"size:10;not null;uniqueIndex:uq_fund_holdings,priority:5"`
	HoldingTicker     *string `gorm:"size:50"`
	HoldingPercentage *string `gorm:"type:decimal(10,6)"`
	SharesHeld        *string `gorm:"type:decimal(24,0)"`
	MarketValue       *string `gorm:"type:decimal(24,6)"`
	Sector            *string `gorm:"size:100"`
	Country           *string `gorm:"size:100"`
	RowHash           *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Holding) TableName() string { return "stg_fund_holdings" }

func (m *Holding) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":       m.Ticker,
		"asset_type":   m.AssetType,
		"source":       m.Source,
		"holding_name": m.HoldingName,
		"as_of_date":   m.AsOfDate,
	}
}

func (m *Holding) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *Holding) ContentAssignments() map[string]any {
	return map[string]any{
		"holding_ticker":     m.HoldingTicker,
		"holding_percentage": m.HoldingPercentage,
		"shares_held":        m.SharesHeld,
		"market_value":       m.MarketValue,
		"sector":             m.Sector,
		"country":            m.Country,
	}
}
