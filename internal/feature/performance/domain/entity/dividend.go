package entity

import "time"

// Dividend は配当履歴の1行を表します。
// 同一権利落ち日に複数回の分配があり得るため、金額と種別もキーに含めます。
// 任意の判別子（支払日、種別）は欠損を空文字で保持し、キー照合を単純にします。
type Dividend struct {
	ID          uint    `gorm:"primaryKey"`
	Ticker      string  `gorm:"size:50;not null;uniqueIndex:uq_dividend,priority:1"`
	AssetType   string  `gorm:"size:20;not null;uniqueIndex:uq_dividend,priority:2"`
	Source      string  `gorm:"size:50;not null;uniqueIndex:uq_dividend,priority:3"`
	ExDate      string  `gorm:"size:10;not null;uniqueIndex:uq_dividend,priority:4"`
	PaymentDate string  `gorm:"size:10;not null;default:'';uniqueIndex:uq_dividend,priority:5"`
	Amount      string  `gorm:"type:decimal(18,6);not null;uniqueIndex:uq_dividend,priority:6"`
	Type        string  `gorm:"size:30;not null;default:'';uniqueIndex:uq_dividend,priority:7"`
	Currency    *string `gorm:"size:10"`
	RowHash     *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Dividend) TableName() string { return "stg_dividend_history" }

func (m *Dividend) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":       m.Ticker,
		"asset_type":   m.AssetType,
		"source":       m.Source,
		"ex_date":      m.ExDate,
		"payment_date": m.PaymentDate,
		"amount":       m.Amount,
		"type":         m.Type,
	}
}

func (m *Dividend) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *Dividend) ContentAssignments() map[string]any {
	return map[string]any{"currency": m.Currency}
}
