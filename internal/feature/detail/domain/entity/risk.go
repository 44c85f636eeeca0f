package entity

import "time"

// FundRisk はファンドのリスク指標（1年・3年・5年）のスナップショットを表します。
type FundRisk struct {
	ID        uint   `gorm:"primaryKey"`
	Ticker    string `gorm:"size:50;not null;uniqueIndex:uq_fund_risk,priority:1"`
	AssetType string `gorm:"size:20;not null;uniqueIndex:uq_fund_risk,priority:2"`
	Source    string `gorm:"size:50;not null;uniqueIndex:uq_fund_risk,priority:3"`

	Sharpe1Y   *string `gorm:"column:sharpe_1y;type:decimal(10,6)"`
	Sharpe3Y   *string `gorm:"column:sharpe_3y;type:decimal(10,6)"`
	Sharpe5Y   *string `gorm:"column:sharpe_5y;type:decimal(10,6)"`
	Beta1Y     *string `gorm:"column:beta_1y;type:decimal(10,6)"`
	Beta3Y     *string `gorm:"column:beta_3y;type:decimal(10,6)"`
	Beta5Y     *string `gorm:"column:beta_5y;type:decimal(10,6)"`
	Alpha1Y    *string `gorm:"column:alpha_1y;type:decimal(10,6)"`
	Alpha3Y    *string `gorm:"column:alpha_3y;type:decimal(10,6)"`
	Alpha5Y    *string `gorm:"column:alpha_5y;type:decimal(10,6)"`
	StdDev1Y   *string `gorm:"column:std_dev_1y;type:decimal(10,6)"`
	StdDev3Y   *string `gorm:"column:std_dev_3y;type:decimal(10,6)"`
	StdDev5Y   *string `gorm:"column:std_dev_5y;type:decimal(10,6)"`
	RSquared1Y *string `gorm:"column:r_squared_1y;type:decimal(10,6)"`
	RSquared3Y *string `gorm:"column:r_squared_3y;type:decimal(10,6)"`
	RSquared5Y *string `gorm:"column:r_squared_5y;type:decimal(10,6)"`

	MorningstarRating *string `gorm:"type:decimal(3,1)"`
	RowHash           *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FundRisk) TableName() string { return "stg_fund_risk" }

func (m *FundRisk) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":     m.Ticker,
		"asset_type": m.AssetType,
		"source":     m.Source,
	}
}

func (m *FundRisk) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *FundRisk) ContentAssignments() map[string]any {
	return map[string]any{
		"sharpe_1y": m.Sharpe1Y, "sharpe_3y": m.Sharpe3Y, "sharpe_5y": m.Sharpe5Y,
		"beta_1y": m.Beta1Y, "beta_3y": m.Beta3Y, "beta_5y": m.Beta5Y,
		"alpha_1y": m.Alpha1Y, "alpha_3y": m.Alpha3Y, "alpha_5y": m.Alpha5Y,
		"std_dev_1y": m.StdDev1Y, "std_dev_3y": m.StdDev3Y, "std_dev_5y": m.StdDev5Y,
		"r_squared_1y": m.RSquared1Y, "r_squared_3y": m.RSquared3Y, "r_squared_5y": m.RSquared5Y,
		"morningstar_rating": m.MorningstarRating,
	}
}
