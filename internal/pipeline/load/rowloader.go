package load

import (
	"context"

	"gorm.io/gorm"

	"fund_pipeline/internal/pipeline/record"
)

// RowLoader は行→モデル変換とアップサートエンジンを束ねた汎用ローダーです。
// 独自の読み取り操作を持たないテーブルのアダプターはこれをそのまま使います。
type RowLoader struct {
	DB      *gorm.DB
	Workers int
	// Convert は正規化済みの1行をターゲットテーブルのモデルへ変換します。
	Convert func(record.Row) Model
}

// Load は行集合を変換してアップサートします。
func (l *RowLoader) Load(ctx context.Context, rows []record.Row) (Result, error) {
	models := make([]Model, 0, len(rows))
	for _, r := range rows {
		models = append(models, l.Convert(r))
	}
	return UpsertAll(ctx, l.DB, models, l.Workers)
}
