// Package merge は複数ソースのクリーニング済みデータを自然キー単位で統合します。
package merge

import (
	"sort"

	"fund_pipeline/internal/pipeline/record"
)

// SourceColumn はソース識別子を保持するカラム名です。
const SourceColumn = "source"

// Spec はドメインごとのマージ方針です。
type Spec struct {
	// KeyColumns は自然キー＋判別子のカラムです。source は含めません。
	KeyColumns []string
	// CrossSource が真の場合、同一キーを報告する複数ソースを優先順位で1行に解決します。
	// 偽の場合はソース内の重複除去のみ行い、ソースごとの行をそのまま残します
	// （マスターリストはソース別の観測を保持するドメインです）。
	CrossSource bool
	// Priority はフィールド単位の勝敗を決めるソースの優先順です。先頭が最優先。
	Priority []string
}

// Merge はクリーニング済みの行集合をキー単位で統合します。
// 同じ入力集合に対しては行の到着順によらず常に同じ出力を返します。
// 優先ソースに無いフィールドは、次点以降のソースの値でフィールド単位に補完します。
func Merge(rows []record.Row, spec Spec) []record.Row {
	keyCols := spec.KeyColumns
	if !spec.CrossSource {
		keyCols = append(append([]string{}, spec.KeyColumns...), SourceColumn)
	}

	groups := make(map[string][]record.Row)
	order := make([]string, 0)
	for _, r := range rows {
		k := r.Key(keyCols)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}
	// 出力順をキーで固定し、入力順への依存を断つ
	sort.Strings(order)

	rank := make(map[string]int, len(spec.Priority))
	for i, s := range spec.Priority {
		rank[s] = i
	}

	out := make([]record.Row, 0, len(order))
	for _, k := range order {
		out = append(out, resolve(groups[k], rank))
	}
	return out
}

// resolve は同一キーの行グループを1行に畳み込みます。
// 優先順位、同順位内は行内容の正規表現（canonical形式）でソートして決定性を保証します。
func resolve(group []record.Row, rank map[string]int) record.Row {
	if len(group) == 1 {
		return group[0].Clone()
	}

	sort.SliceStable(group, func(i, j int) bool {
		ri, rj := sourceRank(group[i], rank), sourceRank(group[j], rank)
		if ri != rj {
			return ri < rj
		}
		return group[i].Canonical() < group[j].Canonical()
	})

	winner := group[0].Clone()
	for _, fallback := range group[1:] {
		for col, v := range fallback {
			if col == SourceColumn {
				continue
			}
			if winner.Get(col) == "" && v != "" {
				winner[col] = v
			}
		}
	}
	return winner
}

func sourceRank(r record.Row, rank map[string]int) int {
	if i, ok := rank[r.Get(SourceColumn)]; ok {
		return i
	}
	return len(rank) // 優先順未定義のソースは常に後回し
}
