package pipeline

import (
	"context"

	"fund_pipeline/internal/pipeline/clean"
	"fund_pipeline/internal/pipeline/load"
	"fund_pipeline/internal/pipeline/merge"
	"fund_pipeline/internal/pipeline/record"
	"fund_pipeline/internal/pipeline/validate"
)

// GateKeyColumns はゲートの網羅率計算に使う銘柄キーです。
// source を含めないのは、どのソース経由かに関わらず「その銘柄の今日のデータが
// 届いたか」を問うのがゲートの役割だからです。
var GateKeyColumns = []string{"ticker", "asset_type"}

// RawSource は1ソース分の生抽出物の所在です。
type RawSource struct {
	// Source はソース識別子（例: "Financial Times"）。source カラムが
	// 欠けているファイルにはこの値を補います。
	Source string
	// Glob は生CSVのパスパターンです。
	Glob string
}

// Loader はハッシュ付与済みの行集合を1ターゲットテーブルへ書き込みます。
// 実装は各ドメインのアダプターが持ちます（インターフェースは利用者側で定義）。
type Loader interface {
	Load(ctx context.Context, rows []record.Row) (load.Result, error)
}

// Dataset は1ターゲットテーブルへ至る一連のステージ定義です。
type Dataset struct {
	// Name はステージングディレクトリ名にもなるデータセット識別子です。
	Name string
	// RawSources は入力となるソース別の生抽出物です。
	RawSources []RawSource
	// Schema はクリーナーの正規形スキーマです。
	Schema clean.Schema
	// Merge はマージ方針です。
	Merge merge.Spec
	// Rules は検証ルールです。
	Rules validate.Rules
	// ContentColumns は row_hash の対象カラム（キー・管理カラムを除く）です。
	ContentColumns []string
	// Loader はターゲットテーブルへの書き込み実装です。
	Loader Loader
	// Gated が真のデータセットは、ドメインの完全性判定の母集団に数えられます。
	// 配当のように全銘柄には存在しないデータは偽にします。
	Gated bool
}

// Domain は依存順制御の単位です。マスターリスト → パフォーマンス →
// （静的詳細 ∥ 保有銘柄）の順で実行されます。
type Domain struct {
	Name     string
	Datasets []Dataset
}
