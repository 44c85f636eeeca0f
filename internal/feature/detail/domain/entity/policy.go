package entity

import "time"

// FundPolicy は配当方針とリターン関連指標のスナップショットを表します。
type FundPolicy struct {
	ID               uint    `gorm:"primaryKey"`
	Ticker           string  `gorm:"size:50;not null;uniqueIndex:uq_fund_policy,priority:1"`
	AssetType        string  `gorm:"size:20;not null;uniqueIndex:uq_fund_policy,priority:2"`
	Source           string  `gorm:"size:50;not null;uniqueIndex:uq_fund_policy,priority:3"`
	DividendYield    *string `gorm:"type:decimal(10,6)"`
	DividendGrowth1Y *string `gorm:"column:dividend_growth_1y;type:decimal(10,6)"`
	DividendGrowth3Y *string `gorm:"column:dividend_growth_3y;type:decimal(10,6)"`
	DividendGrowth5Y *string `gorm:"column:dividend_growth_5y;type:decimal(10,6)"`
	PayoutRatio      *string `gorm:"type:decimal(10,6)"`
	TotalReturnYtd   *string `gorm:"column:total_return_ytd;type:decimal(10,6)"`
	TotalReturn1Y    *string `gorm:"column:total_return_1y;type:decimal(10,6)"`
	PeRatio          *string `gorm:"column:pe_ratio;type:decimal(10,6)"`
	RowHash          *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FundPolicy) TableName() string { return "stg_fund_policy" }

func (m *FundPolicy) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":     m.Ticker,
		"asset_type": m.AssetType,
		"source":     m.Source,
	}
}

func (m *FundPolicy) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *FundPolicy) ContentAssignments() map[string]any {
	return map[string]any{
		"dividend_yield":     m.DividendYield,
		"dividend_growth_1y": m.DividendGrowth1Y,
		"dividend_growth_3y": m.DividendGrowth3Y,
		"dividend_growth_5y": m.DividendGrowth5Y,
		"payout_ratio":       m.PayoutRatio,
		"total_return_ytd":   m.TotalReturnYtd,
		"total_return_1y":    m.TotalReturn1Y,
		"pe_ratio":           m.PeRatio,
	}
}
