// Package validate はマージ済みデータに対する業務ルール検証を実装します。
package validate

import (
	"strconv"

	"fund_pipeline/internal/pipeline/record"
)

// 却下理由コード。rejectsファイルにそのまま永続化されます。
const (
	ReasonMissingField = "missing-field"
	ReasonTypeInvalid  = "type-invalid"
	ReasonOutOfRange   = "out-of-range"
	ReasonFutureDate   = "future-date"
	ReasonDuplicate    = "duplicate-in-batch"
)

// ReasonColumn はrejects出力に付与する理由カラム名です。
const ReasonColumn = "reject_reason"

// Rules はドメインごとの検証ルールです。
type Rules struct {
	// Required は欠損を許さないカラムです。
	Required []string
	// Positive は 0 より大きい値のみ許すカラムです（NAV価格など）。
	Positive []string
	// NonNegative は負値を許さないカラムです（出来高、比率など）。
	NonNegative []string
	// NotFuture は基準日より未来を許さない日付カラムです。
	NotFuture []string
	// KeyColumns はバッチ内の一意性を検査する自然キー＋判別子です。
	KeyColumns []string
}

// Reject は却下された1行とその理由です。
type Reject struct {
	Row    record.Row
	Reason string
}

// Result は検証結果です。却下行は検査用に保持されますが、ステージ自体は失敗しません。
type Result struct {
	Valid   []record.Row
	Rejects []Reject
}

// Validate はマージ済みの行集合を検証し、有効行と却下行に分離します。
// asOfLimit はISO形式の基準日で、NotFuture カラムはこの日付より未来だと却下されます。
// バッチ内の重複キーは、マージ後の安定順で最初の1行を残し、残りを却下します。
func Validate(rows []record.Row, rules Rules, asOfLimit string) Result {
	var res Result
	seen := make(map[string]struct{}, len(rows))

	for _, r := range rows {
		if reason := checkRow(r, rules, asOfLimit); reason != "" {
			res.Rejects = append(res.Rejects, Reject{Row: r, Reason: reason})
			continue
		}
		key := r.Key(rules.KeyColumns)
		if _, dup := seen[key]; dup {
			res.Rejects = append(res.Rejects, Reject{Row: r, Reason: ReasonDuplicate})
			continue
		}
		seen[key] = struct{}{}
		res.Valid = append(res.Valid, r)
	}
	return res
}

func checkRow(r record.Row, rules Rules, asOfLimit string) string {
	for _, col := range rules.Required {
		if !r.Has(col) {
			return ReasonMissingField
		}
	}
	for _, col := range rules.Positive {
		v, ok := number(r, col)
		if !ok {
			return ReasonTypeInvalid
		}
		if r.Has(col) && v <= 0 {
			return ReasonOutOfRange
		}
	}
	for _, col := range rules.NonNegative {
		v, ok := number(r, col)
		if !ok {
			return ReasonTypeInvalid
		}
		if r.Has(col) && v < 0 {
			return ReasonOutOfRange
		}
	}
	for _, col := range rules.NotFuture {
		if !r.Has(col) {
			continue
		}
		d := r.Get(col)
		if len(d) != len("2006-01-02") {
			return ReasonTypeInvalid
		}
		// 日付はクリーナーでISO形式に揃っているため文字列比較で十分
		if d > asOfLimit {
			return ReasonFutureDate
		}
	}
	return ""
}

func number(r record.Row, col string) (float64, bool) {
	if !r.Has(col) {
		return 0, true
	}
	v, err := strconv.ParseFloat(r.Get(col), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// RejectRows は却下行を理由カラム付きの行集合へ変換します（rejectsファイル出力用）。
func RejectRows(rejects []Reject) []record.Row {
	out := make([]record.Row, 0, len(rejects))
	for _, rej := range rejects {
		row := rej.Row.Clone()
		row[ReasonColumn] = rej.Reason
		out = append(out, row)
	}
	return out
}
