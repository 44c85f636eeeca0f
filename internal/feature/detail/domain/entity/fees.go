package entity

import "time"

// FundFees はファンドの手数料・資産規模のスナップショットを表します。比率は小数表記です。
type FundFees struct {
	ID               uint    `gorm:"primaryKey"`
	Ticker           string  `gorm:"size:50;not null;uniqueIndex:uq_fund_fees,priority:1"`
	AssetType        string  `gorm:"size:20;not null;uniqueIndex:uq_fund_fees,priority:2"`
	Source           string  `gorm:"size:50;not null;uniqueIndex:uq_fund_fees,priority:3"`
	ExpenseRatio     *string `gorm:"type:decimal(10,6)"`
	InitialCharge    *string `gorm:"type:decimal(10,6)"`
	ExitCharge       *string `gorm:"type:decimal(10,6)"`
	AssetsAum        *string `gorm:"column:assets_aum;type:decimal(24,6)"`
	Top10HoldPct     *string `gorm:"column:top_10_hold_pct;type:decimal(10,6)"`
	HoldingsCount    *string `gorm:"type:decimal(12,0)"`
	HoldingsTurnover *string `gorm:"type:decimal(10,6)"`
	RowHash          *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FundFees) TableName() string { return "stg_fund_fees" }

func (m *FundFees) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":     m.Ticker,
		"asset_type": m.AssetType,
		"source":     m.Source,
	}
}

func (m *FundFees) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *FundFees) ContentAssignments() map[string]any {
	return map[string]any{
		"expense_ratio":     m.ExpenseRatio,
		"initial_charge":    m.InitialCharge,
		"exit_charge":       m.ExitCharge,
		"assets_aum":        m.AssetsAum,
		"top_10_hold_pct":   m.Top10HoldPct,
		"holdings_count":    m.HoldingsCount,
		"holdings_turnover": m.HoldingsTurnover,
	}
}
