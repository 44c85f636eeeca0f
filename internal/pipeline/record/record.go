// Package record はパイプラインの各ステージ間を流れる行データの共通表現を定義します。
package record

import (
	"sort"
	"strings"
)

// Row は正規化済みカラム名をキーとする1行分のデータです。
// 値はすべて正規化済みの文字列表現（日付はISO形式、数値は固定小数表記）で保持します。
type Row map[string]string

// Get は指定されたカラムの値を返します。カラムが存在しない場合は空文字を返します。
func (r Row) Get(col string) string {
	return r[col]
}

// Has は指定されたカラムに空でない値が存在するかを返します。
func (r Row) Has(col string) bool {
	return strings.TrimSpace(r[col]) != ""
}

// Ptr は指定されたカラムの値へのポインタを返します。
// 欠損（空文字）はnilとなり、NULL許容カラムへの書き込みにそのまま使えます。
func (r Row) Ptr(col string) *string {
	if !r.Has(col) {
		return nil
	}
	v := r[col]
	return &v
}

// Clone は行の複製を返します。
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Key は指定カラムの値を "|" で連結した自然キー文字列を返します。
// 値に区切り文字が含まれる可能性は低いため、単純連結で十分一意になります。
func (r Row) Key(cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = r[c]
	}
	return strings.Join(parts, "|")
}

// Canonical は行全体の決定的な文字列表現を返します。
// カラム名でソートした col=value の列で、同値比較やタイブレークに使用します。
func (r Row) Canonical() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(r[k])
		b.WriteByte('\n')
	}
	return b.String()
}

// DistinctKeys は行集合から重複を除いた自然キーの件数を返します。
func DistinctKeys(rows []Row, cols []string) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seen[r.Key(cols)] = struct{}{}
	}
	return len(seen)
}
