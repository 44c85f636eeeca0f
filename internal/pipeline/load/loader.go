// Package load はハッシュ比較付きアップサートの共通エンジンを実装します。
// 各ドメインのアダプターはモデル変換のみを実装し、書き込みの制御
// （キー分割、トランザクション、行単位の失敗隔離、件数集計）はここで一元化します。
package load

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"fund_pipeline/internal/pipeline/rowhash"
)

// Model は1ターゲットテーブルの1行を表す書き込み単位です。
// gormモデル（構造体ポインタ）がこのインターフェースを実装します。
type Model interface {
	// TableName はターゲットテーブル名です（gormのTabler規約と共用）。
	TableName() string
	// KeyConditions は自然キー＋判別子のWHERE条件です。
	KeyConditions() map[string]any
	// Hash は事前計算済みのコンテンツハッシュです。
	Hash() string
	// ContentAssignments は更新時に書き換えるコンテンツカラムです。
	// row_hash と updated_at はエンジンが付与するため含めないこと。
	ContentAssignments() map[string]any
}

// UnchangedMaintainer はハッシュ一致時にも維持したいカラム（マスターの
// last_seen など）を持つモデルが任意で実装します。
type UnchangedMaintainer interface {
	UnchangedAssignments() map[string]any
}

// Result はローダーの件数報告です。
type Result struct {
	Inserted int
	Updated  int
	Skipped  int // ハッシュ一致により書き込みを省略した行
	Failed   int // 制約違反などで失敗し、バッチ継続のため切り捨てた行
}

// Add は別の結果を加算します。
func (r *Result) Add(other Result) {
	r.Inserted += other.Inserted
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

// Total は処理対象となった行数を返します。
func (r Result) Total() int {
	return r.Inserted + r.Updated + r.Skipped + r.Failed
}

type action int

const (
	actInserted action = iota
	actUpdated
	actSkipped
)

// UpsertAll はモデル集合をハッシュ比較付きでアップサートします。
//
// 同一キーの読み比べ→条件付き書き込みが競合すると更新消失が起きるため、
// 作業はキーのFNVハッシュでワーカーへ決定的に分割し、1つのキーは常に
// 1つのワーカーだけが扱います。各ワーカーのバッチは1トランザクションで囲み、
// 行ごとにセーブポイントを切って単一行の失敗がバッチ全体を壊さないようにします。
func UpsertAll(ctx context.Context, db *gorm.DB, models []Model, workers int) (Result, error) {
	if len(models) == 0 {
		return Result{}, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(models) {
		workers = len(models)
	}

	partitions := make([][]Model, workers)
	for _, m := range models {
		i := int(partitionKey(m) % uint32(workers))
		partitions[i] = append(partitions[i], m)
	}

	results := make([]Result, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range partitions {
		part := partitions[i]
		res := &results[i]
		if len(part) == 0 {
			continue
		}
		g.Go(func() error {
			return db.WithContext(gctx).Transaction(func(tx *gorm.DB) error {
				for _, m := range part {
					var act action
					err := tx.Transaction(func(rtx *gorm.DB) error {
						var err error
						act, err = upsertOne(rtx, m)
						return err
					})
					if err != nil {
						// 単一行の書き込み失敗はバッチを止めない（制約違反などは想定内）
						res.Failed++
						slog.Warn("row upsert failed",
							"table", m.TableName(), "key", keyString(m), "error", err)
						continue
					}
					switch act {
					case actInserted:
						res.Inserted++
					case actUpdated:
						res.Updated++
					case actSkipped:
						res.Skipped++
					}
				}
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		// ここに来るのはトランザクション自体の失敗（接続断など）で、致命エラー扱い
		return Result{}, fmt.Errorf("upsert batch: %w", err)
	}

	var total Result
	for _, r := range results {
		total.Add(r)
	}
	return total, nil
}

// upsertOne は1行分の読み比べ→条件付き書き込みを行います。
// 既存行のハッシュがNULLの場合は必ず更新し、ハッシュ未付与の古い行にも
// いずれハッシュが行き渡るようにします。
func upsertOne(tx *gorm.DB, m Model) (action, error) {
	var stored []sql.NullString
	if err := tx.Table(m.TableName()).
		Where(m.KeyConditions()).
		Limit(1).
		Pluck(rowhash.Column, &stored).Error; err != nil {
		return actSkipped, fmt.Errorf("read stored hash: %w", err)
	}

	if len(stored) == 0 {
		if err := tx.Create(m).Error; err != nil {
			return actSkipped, fmt.Errorf("insert: %w", err)
		}
		return actInserted, nil
	}

	if stored[0].Valid && stored[0].String == m.Hash() {
		if um, ok := m.(UnchangedMaintainer); ok {
			if assigns := um.UnchangedAssignments(); len(assigns) > 0 {
				if err := tx.Table(m.TableName()).
					Where(m.KeyConditions()).
					Updates(assigns).Error; err != nil {
					return actSkipped, fmt.Errorf("maintain unchanged row: %w", err)
				}
			}
		}
		return actSkipped, nil
	}

	assigns := m.ContentAssignments()
	assigns[rowhash.Column] = m.Hash()
	assigns["updated_at"] = time.Now().UTC()
	if err := tx.Table(m.TableName()).
		Where(m.KeyConditions()).
		Updates(assigns).Error; err != nil {
		return actSkipped, fmt.Errorf("update: %w", err)
	}
	return actUpdated, nil
}

// keyString は自然キーの決定的な文字列表現を返します。
func keyString(m Model) string {
	conds := m.KeyConditions()
	cols := make([]string, 0, len(conds))
	for c := range conds {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, fmt.Sprint(conds[c]))
	}
	return strings.Join(parts, "|")
}

func partitionKey(m Model) uint32 {
	h := fnv.New32a()
	h.Write([]byte(keyString(m)))
	return h.Sum32()
}
