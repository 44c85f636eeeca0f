// Package cleanse はソースごとに揺れのある生データを正規形へ変換するヘルパーを提供します。
package cleanse

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NumberScale は正規化後の数値が持つ小数桁数です。
// 同じ論理値はソースの表記（"10.5" / "10.50" / "1,050.0e-2"）によらず
// 同一の文字列になる必要があるため、固定桁で出力します。
const NumberScale = 6

// dateLayouts は受け付ける日付表記の一覧です。先頭から順に試行します。
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// nullTokens は欠損値として扱う表記です。
var nullTokens = map[string]struct{}{
	"": {}, "-": {}, "--": {}, "n/a": {}, "na": {}, "nan": {}, "none": {}, "null": {},
}

// Text は前後の空白を除去した文字列を返します。欠損表記は空文字になります。
func Text(s string) string {
	t := strings.TrimSpace(s)
	if _, ok := nullTokens[strings.ToLower(t)]; ok {
		return ""
	}
	return t
}

// Upper はTextに加えて大文字化した文字列を返します。ticker / asset_type 用です。
func Upper(s string) string {
	return strings.ToUpper(Text(s))
}

// Date は各種表記の日付をISO形式（YYYY-MM-DD）へ変換します。
// 変換できない場合は ok=false を返します。空値は欠損として ("", true) を返します。
func Date(s string) (string, bool) {
	t := Text(s)
	if t == "" {
		return "", true
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Number はロケール揺れのある数値表記を固定小数の正規形へ変換します。
// 桁区切りカンマ、パーセント記号、k/m/b の桁数サフィックス、括弧による負数表記を許容します。
func Number(s string) (string, bool) {
	d, ok, empty := parseDecimal(s)
	if empty {
		return "", true
	}
	if !ok {
		return "", false
	}
	return d.StringFixed(NumberScale), true
}

// Int は整数値（出来高、件数など）を正規形へ変換します。小数部は切り捨てます。
func Int(s string) (string, bool) {
	d, ok, empty := parseDecimal(s)
	if empty {
		return "", true
	}
	if !ok {
		return "", false
	}
	return d.Truncate(0).String(), true
}

// parseDecimal は数値文字列を decimal にパースします。
// 戻り値は (値, パース成功, 欠損) の3つ組です。
func parseDecimal(s string) (decimal.Decimal, bool, bool) {
	t := strings.ToLower(Text(s))
	if t == "" {
		return decimal.Zero, false, true
	}

	neg := false
	if strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")") {
		neg = true
		t = strings.TrimSuffix(strings.TrimPrefix(t, "("), ")")
	}

	t = strings.ReplaceAll(t, ",", "")
	t = strings.TrimSuffix(t, "%")

	multiplier := decimal.NewFromInt(1)
	switch {
	case strings.HasSuffix(t, "k"):
		multiplier = decimal.NewFromInt(1_000)
		t = strings.TrimSuffix(t, "k")
	case strings.HasSuffix(t, "m"):
		multiplier = decimal.NewFromInt(1_000_000)
		t = strings.TrimSuffix(t, "m")
	case strings.HasSuffix(t, "b"):
		multiplier = decimal.NewFromInt(1_000_000_000)
		t = strings.TrimSuffix(t, "b")
	case strings.HasSuffix(t, "t"):
		multiplier = decimal.NewFromInt(1_000_000_000_000)
		t = strings.TrimSuffix(t, "t")
	}

	d, err := decimal.NewFromString(strings.TrimSpace(t))
	if err != nil {
		return decimal.Zero, false, false
	}
	d = d.Mul(multiplier)
	if neg {
		d = d.Neg()
	}
	return d, true, false
}
