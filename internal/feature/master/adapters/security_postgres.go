// Package adapters はマスターリストフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"fund_pipeline/internal/feature/master/domain/entity"
	"fund_pipeline/internal/pipeline"
	"fund_pipeline/internal/pipeline/load"
	"fund_pipeline/internal/pipeline/record"
	"fund_pipeline/internal/pipeline/rowhash"
)

// securityPostgres は銘柄マスターテーブルへの書き込みと、
// 完全性ゲート・廃止処理が必要とする読み取りを実装します。
type securityPostgres struct {
	db      *gorm.DB
	workers int
	runDate string
}

var (
	_ pipeline.Loader             = (*securityPostgres)(nil)
	_ pipeline.ExpectedKeyCounter = (*securityPostgres)(nil)
	_ pipeline.MasterMaintenance  = (*securityPostgres)(nil)
)

// NewSecurityRepository は指定されたDB接続でsecurityPostgresリポジトリの新しいインスタンスを生成します。
// runDate は first_seen / last_seen に刻む実行基準日です。
func NewSecurityRepository(db *gorm.DB, workers int, runDate string) *securityPostgres {
	return &securityPostgres{db: db, workers: workers, runDate: runDate}
}

// Load はハッシュ付与済みの行集合を銘柄マスターへアップサートします。
func (r *securityPostgres) Load(ctx context.Context, rows []record.Row) (load.Result, error) {
	models := make([]load.Model, 0, len(rows))
	for _, row := range rows {
		models = append(models, &entity.Security{
			Ticker:    row.Get("ticker"),
			AssetType: row.Get("asset_type"),
			Source:    row.Get("source"),
			Name:      row.Ptr("name"),
			Status:    entity.StatusActive,
			FirstSeen: r.runDate,
			LastSeen:  r.runDate,
			RowHash:   row.Ptr(rowhash.Column),
		})
	}
	return load.UpsertAll(ctx, r.db, models, r.workers)
}

// CountExpectedKeys はアクティブな銘柄の (ticker, asset_type) 件数を返します。
// 完全性ゲートはこれを「今日届くべきキー集合」の母数として使います。
func (r *securityPostgres) CountExpectedKeys(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entity.Security{}).
		Where("status = ?", entity.StatusActive).
		Select("count(distinct ticker || '|' || asset_type)").
		Scan(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

// SweepDelisted は今回の実行で観測されなかったアクティブ銘柄を廃止状態へ落とし、
// 対象となった行数を返します。row_hash も破棄し、同じ銘柄が再上場した際に
// ハッシュ一致で状態更新が省略されないようにします。
func (r *securityPostgres) SweepDelisted(ctx context.Context, lastSeenBefore string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Security{}).
		Where("status = ? AND last_seen < ?", entity.StatusActive, lastSeenBefore).
		Updates(map[string]any{"status": entity.StatusDelisted, "row_hash": nil})
	return res.RowsAffected, res.Error
}
