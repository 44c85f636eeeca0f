// Package adapters はパフォーマンスフィーチャーのローダー実装を提供します。
// 各ローダーは行→モデル変換のみを持ち、書き込み制御は共通エンジンに委ねます。
package adapters

import (
	"gorm.io/gorm"

	"fund_pipeline/internal/feature/performance/domain/entity"
	"fund_pipeline/internal/pipeline/load"
	"fund_pipeline/internal/pipeline/record"
	"fund_pipeline/internal/pipeline/rowhash"
)

// NewNavLoader は日次基準価額テーブルのローダーを生成します。
func NewNavLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: navModel}
}

// NewPriceHistoryLoader は日足価格テーブルのローダーを生成します。
func NewPriceHistoryLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: priceModel}
}

// NewDividendLoader は配当履歴テーブルのローダーを生成します。
func NewDividendLoader(db *gorm.DB, workers int) *load.RowLoader {
	return &load.RowLoader{DB: db, Workers: workers, Convert: dividendModel}
}

func navModel(r record.Row) load.Model {
	return &entity.DailyNav{
		Ticker:     r.Get("ticker"),
		AssetType:  r.Get("asset_type"),
		Source:     r.Get("source"),
		AsOfDate:   r.Get("as_of_date"),
		NavPrice:   r.Ptr("nav_price"),
		Currency:   r.Ptr("currency"),
		ScrapeDate: r.Ptr("scrape_date"),
		RowHash:    r.Ptr(rowhash.Column),
	}
}

func priceModel(r record.Row) load.Model {
	return &entity.PricePoint{
		Ticker:    r.Get("ticker"),
		AssetType: r.Get("asset_type"),
		Source:    r.Get("source"),
		Date:      r.Get("date"),
		Open:      r.Ptr("open"),
		High:      r.Ptr("high"),
		Low:       r.Ptr("low"),
		Close:     r.Ptr("close"),
		AdjClose:  r.Ptr("adj_close"),
		Volume:    r.Ptr("volume"),
		RowHash:   r.Ptr(rowhash.Column),
	}
}

func dividendModel(r record.Row) load.Model {
	return &entity.Dividend{
		Ticker:      r.Get("ticker"),
		AssetType:   r.Get("asset_type"),
		Source:      r.Get("source"),
		ExDate:      r.Get("ex_date"),
		PaymentDate: r.Get("payment_date"),
		Amount:      r.Get("amount"),
		Type:        r.Get("type"),
		Currency:    r.Ptr("currency"),
		RowHash:     r.Ptr(rowhash.Column),
	}
}
