// Package rowhash は変更検知用のコンテンツハッシュ（row_hash）を計算します。
package rowhash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"fund_pipeline/internal/pipeline/record"
)

// Column は各行に付与するハッシュカラム名です。
const Column = "row_hash"

// Sum は行のコンテンツカラムに対する決定的なダイジェストを返します。
// contentCols にはキー・判別子・管理用カラム（updated_at等）を含めないこと。
// カラム順はスキーマ定義順で固定され、欠損値は空文字として扱われるため、
// 同じ論理内容はソースの表記や到着経路によらず常に同じハッシュになります。
func Sum(r record.Row, contentCols []string) string {
	var b strings.Builder
	for _, col := range contentCols {
		b.WriteString(col)
		b.WriteByte('=')
		b.WriteString(r.Get(col))
		b.WriteByte('\n')
	}
	digest := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(digest[:])
}

// Apply は各行に row_hash カラムを付与した新しい行集合を返します。
func Apply(rows []record.Row, contentCols []string) []record.Row {
	out := make([]record.Row, 0, len(rows))
	for _, r := range rows {
		hashed := r.Clone()
		hashed[Column] = Sum(r, contentCols)
		out = append(out, hashed)
	}
	return out
}
