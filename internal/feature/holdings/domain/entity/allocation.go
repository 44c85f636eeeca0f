package entity

import "time"

// Allocation は資産配分・地域配分・セクター配分の1項目を表します。
// allocation_type が配分の種類（asset, sector, region など）を判別します。
// ネット・ロング・ショートとカテゴリ平均を並べて保持します。
type Allocation struct {
	ID               uint    `gorm:"primaryKey"`
	Ticker           string  `gorm:"size:50;not null;uniqueIndex:uq_allocations,priority:1"`
	AssetType        string  `gorm:"size:20;not null;uniqueIndex:uq_allocations,priority:2"`
	Source           string  `gorm:"size:50;not null;uniqueIndex:uq_allocations,priority:3"`
	AllocationType   string  `gorm:"size:50;not null;uniqueIndex:uq_allocations,priority:4"`
	ItemName         string  `gorm:"size:255;not null;uniqueIndex:uq_allocations,priority:5"`
	AsOfDate         string  `gorm:"size:10;not null;uniqueIndex:uq_allocations,priority:6"`
	ValueNet         *string `gorm:"type:decimal(10,6)"`
	ValueCategoryAvg *string `gorm:"type:decimal(10,6)"`
	ValueLong        *string `gorm:"type:decimal(10,6)"`
	ValueShort       *string `gorm:"type:decimal(10,6)"`
	RowHash          *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Allocation) TableName() string { return "stg_allocations" }

func (m *Allocation) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":          m.Ticker,
		"asset_type":      m.AssetType,
		"source":          m.Source,
		"allocation_type": m.AllocationType,
		"item_name":       m.ItemName,
		"as_of_date":      m.AsOfDate,
	}
}

func (m *Allocation) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *Allocation) ContentAssignments() map[string]any {
	return map[string]any{
		"value_net":          m.ValueNet,
		"value_category_avg": m.ValueCategoryAvg,
		"value_long":         m.ValueLong,
		"value_short":        m.ValueShort,
	}
}
