package entity

import "time"

// PricePoint は株式・ETFの日足価格の1行を表します。
type PricePoint struct {
	ID        uint    `gorm:"primaryKey"`
	Ticker    string  `gorm:"size:50;not null;uniqueIndex:uq_price_history,priority:1"`
	AssetType string  `gorm:"size:20;not null;uniqueIndex:uq_price_history,priority:2"`
	Source    string  `gorm:"size:50;not null;uniqueIndex:uq_price_history,priority:3"`
	Date      string  `gorm:"size:10;not null;uniqueIndex:uq_price_history,priority:4"`
	Open      *string `gorm:"type:decimal(18,6)"`
	High      *string `gorm:"type:decimal(18,6)"`
	Low       *string `gorm:"type:decimal(18,6)"`
	Close     *string `gorm:"type:decimal(18,6)"`
	AdjClose  *string `gorm:"column:adj_close;type:decimal(18,6)"`
	Volume    *string `gorm:"type:decimal(24,0)"`
	RowHash   *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PricePoint) TableName() string { return "stg_price_history" }

func (m *PricePoint) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":     m.Ticker,
		"asset_type": m.AssetType,
		"source":     m.Source,
		"date":       m.Date,
	}
}

func (m *PricePoint) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *PricePoint) ContentAssignments() map[string]any {
	return map[string]any{
		"open":      m.Open,
		"high":      m.High,
		"low":       m.Low,
		"close":     m.Close,
		"adj_close": m.AdjClose,
		"volume":    m.Volume,
	}
}
