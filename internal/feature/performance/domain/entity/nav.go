// Package entity はパフォーマンスフィーチャーのドメインモデルを定義します。
// 数値・日付カラムはパイプラインの正規形（固定小数表記・ISO日付）の文字列を
// そのまま保持し、DB側の型への変換はドライバに任せます。
package entity

import "time"

// DailyNav は投資信託の日次基準価額の1行を表します。
type DailyNav struct {
	ID         uint    `gorm:"primaryKey"`
	Ticker     string  `gorm:"size:50;not null;uniqueIndex:uq_daily_nav,priority:1"`
	AssetType  string  `gorm:"size:20;not null;uniqueIndex:uq_daily_nav,priority:2"`
	Source     string  `gorm:"size:50;not null;uniqueIndex:uq_daily_nav,priority:3"`
	AsOfDate   string  `gorm:"size:10;not null;uniqueIndex:uq_daily_nav,priority:4"`
	NavPrice   *string `gorm:"type:decimal(18,6)"`
	Currency   *string `gorm:"size:10"`
	ScrapeDate *string `gorm:"size:10"`
	RowHash    *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DailyNav) TableName() string { return "stg_daily_nav" }

func (m *DailyNav) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":     m.Ticker,
		"asset_type": m.AssetType,
		"source":     m.Source,
		"as_of_date": m.AsOfDate,
	}
}

func (m *DailyNav) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *DailyNav) ContentAssignments() map[string]any {
	return map[string]any{
		"nav_price":   m.NavPrice,
		"currency":    m.Currency,
		"scrape_date": m.ScrapeDate,
	}
}
