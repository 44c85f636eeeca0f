// Package clean はソースごとの生データをドメインの正規形へ変換するクリーナーを実装します。
package clean

import (
	"strings"

	"fund_pipeline/internal/pipeline/record"
	"fund_pipeline/internal/shared/cleanse"
)

// Kind はカラムの型種別です。種別ごとの正規化ルールが適用されます。
type Kind int

const (
	// Text は前後空白のみ正規化する自由テキストです。
	Text Kind = iota
	// UpperText は大文字化するコード値（ticker, asset_type）です。
	UpperText
	// Date はISO形式へ正規化する日付です。
	Date
	// Number は固定小数表記へ正規化する数値です。
	Number
	// Int は整数へ正規化する数値です。
	Int
)

// Column は正規形スキーマ上の1カラムの定義です。
type Column struct {
	Name     string
	Kind     Kind
	Required bool
}

// Schema はドメインごとの正規形を定義します。
type Schema struct {
	// Columns は出力カラムとその型です。定義順がそのままhash対象の安定順序になります。
	Columns []Column
	// Renames はソース固有のカラム名から正規名への読み替えです（例: symbol → ticker）。
	Renames map[string]string
	// Aliases はカラムごとの値の読み替えです（例: asset_type の MUTUAL FUND → FUND）。
	Aliases map[string]map[string]string
}

// ColumnNames は出力カラム名を定義順で返します。
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Result はクリーニングの結果です。変換できなかった行は落とし、件数のみ報告します。
type Result struct {
	Rows    []record.Row
	Dropped int
}

// Clean は1ソース分の生データを正規形へ変換します。
// 必須カラムの欠損や型変換の失敗は行の脱落として数え、致命エラーにはしません。
// ソース単位の部分失敗は想定内で、進行可否の判断はオーケストレーターのゲートが行います。
func Clean(raw []record.Row, s Schema) Result {
	var res Result
	for _, in := range raw {
		row, ok := cleanRow(in, s)
		if !ok {
			res.Dropped++
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

func cleanRow(in record.Row, s Schema) (record.Row, bool) {
	// 生データ側のキーを正規化してから読み替えを適用する
	src := make(record.Row, len(in))
	for k, v := range in {
		name := strings.ToLower(strings.TrimSpace(k))
		if renamed, ok := s.Renames[name]; ok {
			name = renamed
		}
		src[name] = v
	}

	out := make(record.Row, len(s.Columns))
	for _, col := range s.Columns {
		value, ok := coerce(src[col.Name], col.Kind)
		if !ok {
			if col.Required {
				return nil, false
			}
			value = "" // 任意カラムの壊れた値は欠損として扱う
		}
		if alias, ok := s.Aliases[col.Name][value]; ok {
			value = alias
		}
		if col.Required && value == "" {
			return nil, false
		}
		out[col.Name] = value
	}
	return out, true
}

func coerce(v string, kind Kind) (string, bool) {
	switch kind {
	case UpperText:
		return cleanse.Upper(v), true
	case Date:
		return cleanse.Date(v)
	case Number:
		return cleanse.Number(v)
	case Int:
		return cleanse.Int(v)
	default:
		return cleanse.Text(v), true
	}
}
