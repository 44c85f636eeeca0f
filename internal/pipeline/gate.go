package pipeline

import (
	"context"
	"fmt"
)

// GatePolicy はゲート不通過時の進行方針です。
// 実行ごとに明示的に渡され、プロセス全体の可変状態には依存しません。
type GatePolicy string

const (
	// GateStrict は閾値未達のドメインで実行全体を中断します。
	GateStrict GatePolicy = "strict"
	// GatePermissive は閾値未達をPartiallyCompletedとして記録し、下流を続行します。
	GatePermissive GatePolicy = "permissive"
)

// ExpectedKeyCounter は「期待されるキー集合」の件数を供給します。
// 既知のアクティブ銘柄（前回までに永続化された母集団）を母数とします。
type ExpectedKeyCounter interface {
	CountExpectedKeys(ctx context.Context) (int64, error)
}

// Gate はドメインのクリーニング後に抽出の完全性を判定します。
// 上流のスクレイピングはソース単位で不安定なため、このゲートが
// 「今日はいくつかのソースが落ちた」を全体失敗ではなく限定的な劣化に変換します。
type Gate struct {
	// Threshold は進行に必要なキー網羅率（0〜1）です。
	Threshold float64
	// Policy は閾値未達時の方針です。
	Policy GatePolicy
	// Expected は期待キー件数の供給元です。
	Expected ExpectedKeyCounter
}

// Decision はゲート判定の記録です。実行サマリーに残ります。
type Decision struct {
	Expected int64
	Present  int
	Coverage float64
	Passed   bool
}

// Evaluate は実在キー数を期待キー数と突き合わせます。
// 期待キーがゼロ（初回実行でマスターが空）の場合は無条件で通過させ、
// ブートストラップを可能にします。
func (g Gate) Evaluate(ctx context.Context, present int) (Decision, error) {
	expected, err := g.Expected.CountExpectedKeys(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("count expected keys: %w", err)
	}

	d := Decision{Expected: expected, Present: present}
	if expected <= 0 {
		d.Coverage = 1
		d.Passed = true
		return d, nil
	}
	d.Coverage = float64(present) / float64(expected)
	if d.Coverage > 1 {
		d.Coverage = 1 // 新規キーは母数を超えて数えない
	}
	d.Passed = d.Coverage >= g.Threshold
	return d, nil
}
