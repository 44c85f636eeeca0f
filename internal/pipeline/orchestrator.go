// Package pipeline はクリーニング→マージ→検証→ハッシュ→ロードの
// ステージ実行と、完全性ゲートによる進行判定を実装します。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"fund_pipeline/internal/pipeline/clean"
	"fund_pipeline/internal/pipeline/merge"
	"fund_pipeline/internal/pipeline/record"
	"fund_pipeline/internal/pipeline/rowhash"
	"fund_pipeline/internal/pipeline/validate"
	"fund_pipeline/internal/shared/csvio"
)

// MasterMaintenance はマスタードメイン完了後の保守処理を抽象化します。
// 今回の実行で観測されなかった銘柄を delisted へ落とす処理が該当します。
type MasterMaintenance interface {
	SweepDelisted(ctx context.Context, lastSeenBefore string) (int64, error)
}

// Options はオーケストレーターの構成です。ゲート方針を含め、実行ごとに
// 明示的に渡します（プロセス全体のトグルには依存しません）。
type Options struct {
	// DataDir は中間ファイルのルートディレクトリです。
	DataDir string
	// RunDate はこの実行の基準日（YYYY-MM-DD）です。
	RunDate string
	// Resume が真の場合、既に書き出されたステージ出力を再計算せずに読み戻します。
	Resume bool
	// Gate は完全性ゲートです。
	Gate Gate
	// Master は最初に完了している必要があるマスターリストドメインです。
	Master Domain
	// Performance はマスター完了後に実行するパフォーマンスドメインです。
	Performance Domain
	// Independent はマスター・パフォーマンス完了後に並行実行できるドメイン
	// （静的詳細、保有銘柄）です。
	Independent []Domain
	// Maintenance は任意のマスター保守処理です。
	Maintenance MasterMaintenance
}

// Orchestrator は1回のパイプライン実行を統括します。
type Orchestrator struct {
	opts      Options
	asOfLimit string
}

// New は新しいオーケストレーターを生成します。
func New(opts Options) *Orchestrator {
	limit := opts.RunDate
	// タイムゾーンのずれで当日データが未来日扱いにならないよう1日の猶予を持つ
	if t, err := time.Parse("2006-01-02", opts.RunDate); err == nil {
		limit = t.AddDate(0, 0, 1).Format("2006-01-02")
	}
	return &Orchestrator{opts: opts, asOfLimit: limit}
}

// Run はドメインを依存順に実行し、実行サマリーを返します。
// マスターが中断した場合、下流ドメインは実行されず Aborted として記録されます。
func (o *Orchestrator) Run(ctx context.Context) RunSummary {
	s := RunSummary{
		RunID:     uuid.NewString(),
		RunDate:   o.opts.RunDate,
		StartedAt: time.Now(),
		State:     StatePending,
	}
	slog.Info("pipeline run starting",
		"run_id", s.RunID,
		"run_date", s.RunDate,
		"gate_policy", string(o.opts.Gate.Policy),
		"gate_threshold", o.opts.Gate.Threshold,
		"resume", o.opts.Resume,
	)

	master := o.runDomain(ctx, o.opts.Master)
	s.Domains = append(s.Domains, master)
	if master.State == StateAborted {
		o.skipDownstream(&s, append([]Domain{o.opts.Performance}, o.opts.Independent...))
		s.finish()
		s.Log()
		return s
	}

	if master.State == StateCompleted && o.opts.Maintenance != nil {
		n, err := o.opts.Maintenance.SweepDelisted(ctx, o.opts.RunDate)
		if err != nil {
			slog.Error("delist sweep failed", "run_id", s.RunID, "error", err)
		} else if n > 0 {
			slog.Info("swept unobserved securities to delisted", "run_id", s.RunID, "count", n)
		}
	}

	perf := o.runDomain(ctx, o.opts.Performance)
	s.Domains = append(s.Domains, perf)
	if perf.State == StateAborted {
		o.skipDownstream(&s, o.opts.Independent)
		s.finish()
		s.Log()
		return s
	}

	// 静的詳細と保有銘柄は相互に依存しないため並行実行する
	results := make([]DomainResult, len(o.opts.Independent))
	var wg sync.WaitGroup
	for i := range o.opts.Independent {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = o.runDomain(ctx, o.opts.Independent[i])
		}(i)
	}
	wg.Wait()
	s.Domains = append(s.Domains, results...)

	s.finish()
	s.Log()
	return s
}

func (o *Orchestrator) skipDownstream(s *RunSummary, domains []Domain) {
	for _, d := range domains {
		s.Domains = append(s.Domains, DomainResult{
			Domain:       d.Name,
			State:        StateAborted,
			FailureCause: "skipped: upstream domain aborted",
		})
	}
}

// runDomain は1ドメイン分のステージ列を実行します。
// 致命エラー（接続断、中間ファイルの書き込み失敗）のみが中断を引き起こし、
// 行単位の問題はすべて件数として報告されます。
func (o *Orchestrator) runDomain(ctx context.Context, d Domain) DomainResult {
	res := DomainResult{Domain: d.Name, State: StateCleaning}
	counts := make([]DatasetCounts, len(d.Datasets))
	cleaned := make([][]record.Row, len(d.Datasets))

	if err := ctx.Err(); err != nil {
		return o.abort(res, counts, fmt.Errorf("run cancelled: %w", err))
	}

	// マージは全ソースのクリーニング結果が揃ってから行うため、
	// まずドメイン内の全データセットをクリーニングする
	gateKeys := make(map[string]struct{})
	hasGated := false
	for i, ds := range d.Datasets {
		counts[i].Dataset = ds.Name
		rows, dropped, err := o.cleanDataset(ds)
		if err != nil {
			return o.abort(res, counts, fmt.Errorf("cleaning %s: %w", ds.Name, err))
		}
		counts[i].Dropped = dropped
		cleaned[i] = rows
		slog.Info("dataset cleaned", "domain", d.Name, "dataset", ds.Name,
			"rows", len(rows), "dropped", dropped)

		if ds.Gated {
			hasGated = true
			for _, r := range rows {
				gateKeys[r.Key(GateKeyColumns)] = struct{}{}
			}
		}
	}

	// ゲート対象データセットを持たないドメイン（配当のみ等）は判定しない
	degraded := false
	if hasGated {
		decision, err := o.opts.Gate.Evaluate(ctx, len(gateKeys))
		if err != nil {
			return o.abort(res, counts, fmt.Errorf("integrity gate: %w", err))
		}
		res.Gate = &decision

		if !decision.Passed {
			slog.Warn("integrity gate below threshold",
				"domain", d.Name,
				"coverage", decision.Coverage,
				"threshold", o.opts.Gate.Threshold,
				"policy", string(o.opts.Gate.Policy),
			)
			if o.opts.Gate.Policy == GateStrict {
				res.State = StateAborted
				res.FailureCause = fmt.Sprintf(
					"completeness %.1f%% below threshold %.1f%% under strict gate",
					decision.Coverage*100, o.opts.Gate.Threshold*100)
				res.Datasets = counts
				return res
			}
			degraded = true
		}
	}

	for i, ds := range d.Datasets {
		if err := ctx.Err(); err != nil {
			return o.abort(res, counts, fmt.Errorf("run cancelled: %w", err))
		}

		res.State = StateMerging
		merged, err := o.stageRows(ds, "merged", ds.Schema.ColumnNames(), func() []record.Row {
			return merge.Merge(cleaned[i], ds.Merge)
		})
		if err != nil {
			return o.abort(res, counts, fmt.Errorf("merging %s: %w", ds.Name, err))
		}

		res.State = StateValidating
		valid, rejected, err := o.validateStage(ds, merged)
		if err != nil {
			return o.abort(res, counts, fmt.Errorf("validating %s: %w", ds.Name, err))
		}
		counts[i].Rejected = rejected

		res.State = StateHashing
		hashedCols := append(ds.Schema.ColumnNames(), rowhash.Column)
		hashed, err := o.stageRows(ds, "hashed", hashedCols, func() []record.Row {
			return rowhash.Apply(valid, ds.ContentColumns)
		})
		if err != nil {
			return o.abort(res, counts, fmt.Errorf("hashing %s: %w", ds.Name, err))
		}

		res.State = StateLoading
		lr, err := ds.Loader.Load(ctx, hashed)
		if err != nil {
			// ここに届くのはバッチ全体の失敗（接続断など）で、行単位の失敗は lr に含まれる
			return o.abort(res, counts, fmt.Errorf("loading %s: %w", ds.Name, err))
		}
		counts[i].Load = lr
		slog.Info("dataset loaded", "domain", d.Name, "dataset", ds.Name,
			"inserted", lr.Inserted, "updated", lr.Updated,
			"skipped_unchanged", lr.Skipped, "failed", lr.Failed)
	}

	res.Datasets = counts
	if degraded {
		res.State = StatePartiallyCompleted
	} else {
		res.State = StateCompleted
	}
	return res
}

func (o *Orchestrator) abort(res DomainResult, counts []DatasetCounts, err error) DomainResult {
	slog.Error("domain aborted", "domain", res.Domain, "stage", string(res.State), "error", err)
	res.State = StateAborted
	res.FailureCause = err.Error()
	res.Datasets = counts
	return res
}

func (o *Orchestrator) stagePath(ds Dataset, stage string) string {
	return filepath.Join(o.opts.DataDir, "staging", ds.Name, o.opts.RunDate, stage+".csv")
}

// cleanDataset は全ソースの生抽出物を読み込み、正規形へ変換して書き出します。
// 再開時に既存のチェックポイントがあれば読み戻します（脱落件数は当実行分のみ数えます）。
func (o *Orchestrator) cleanDataset(ds Dataset) ([]record.Row, int, error) {
	path := o.stagePath(ds, "cleaned")
	if o.opts.Resume && csvio.Exists(path) {
		slog.Info("resuming from checkpoint", "dataset", ds.Name, "path", path)
		rows, err := csvio.Read(path)
		return rows, 0, err
	}

	var raw []record.Row
	for _, rs := range ds.RawSources {
		rows, files, err := csvio.ReadGlob(rs.Glob)
		if err != nil {
			return nil, 0, err
		}
		if files == 0 {
			// ソース単位の欠損は想定内。進行可否はゲートが判定する。
			slog.Warn("raw extract missing", "dataset", ds.Name, "source", rs.Source, "glob", rs.Glob)
			continue
		}
		for _, r := range rows {
			if r.Get(merge.SourceColumn) == "" {
				r[merge.SourceColumn] = rs.Source
			}
		}
		raw = append(raw, rows...)
	}

	res := clean.Clean(raw, ds.Schema)
	if err := csvio.Write(path, ds.Schema.ColumnNames(), res.Rows); err != nil {
		return nil, 0, err
	}
	return res.Rows, res.Dropped, nil
}

// stageRows は1ステージ分の計算をチェックポイント付きで実行します。
func (o *Orchestrator) stageRows(ds Dataset, stage string, cols []string, compute func() []record.Row) ([]record.Row, error) {
	path := o.stagePath(ds, stage)
	if o.opts.Resume && csvio.Exists(path) {
		slog.Info("resuming from checkpoint", "dataset", ds.Name, "path", path)
		return csvio.Read(path)
	}
	rows := compute()
	if err := csvio.Write(path, cols, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// validateStage は検証を実行し、有効行と却下行をそれぞれ書き出します。
// 却下行は理由コード付きで永続化され、検査可能ですがステージは失敗させません。
func (o *Orchestrator) validateStage(ds Dataset, merged []record.Row) ([]record.Row, int, error) {
	path := o.stagePath(ds, "validated")
	if o.opts.Resume && csvio.Exists(path) {
		slog.Info("resuming from checkpoint", "dataset", ds.Name, "path", path)
		rows, err := csvio.Read(path)
		return rows, 0, err
	}

	res := validate.Validate(merged, ds.Rules, o.asOfLimit)
	if err := csvio.Write(path, ds.Schema.ColumnNames(), res.Valid); err != nil {
		return nil, 0, err
	}
	if len(res.Rejects) > 0 {
		rejectCols := append(ds.Schema.ColumnNames(), validate.ReasonColumn)
		if err := csvio.Write(o.stagePath(ds, "rejects"), rejectCols, validate.RejectRows(res.Rejects)); err != nil {
			return nil, 0, err
		}
	}
	return res.Valid, len(res.Rejects), nil
}
