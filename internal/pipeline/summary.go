package pipeline

import (
	"log/slog"
	"time"

	"fund_pipeline/internal/pipeline/load"
)

// DatasetCounts は1データセット分のステージ別件数です。
type DatasetCounts struct {
	Dataset  string
	Dropped  int // クリーナーで脱落した行
	Rejected int // バリデーターで却下された行
	Load     load.Result
}

// DomainResult は1ドメイン分の実行結果です。
type DomainResult struct {
	Domain   string
	State    State
	Gate     *Decision
	Datasets []DatasetCounts
	// FailureCause は Aborted の原因です（致命エラー、ゲート不通過、上流中断）。
	FailureCause string
}

// RunSummary は1回のパイプライン実行の外部から観測可能な結果です。
type RunSummary struct {
	RunID      string
	RunDate    string
	StartedAt  time.Time
	FinishedAt time.Time
	State      State
	Domains    []DomainResult
}

// finish は全ドメインの終了状態から実行全体の状態を確定します。
func (s *RunSummary) finish() {
	s.FinishedAt = time.Now()
	s.State = StateCompleted
	for _, d := range s.Domains {
		switch d.State {
		case StateAborted:
			s.State = StateAborted
			return
		case StatePartiallyCompleted:
			s.State = StatePartiallyCompleted
		}
	}
}

// Log は実行サマリーを構造化ログへ出力します。
func (s RunSummary) Log() {
	slog.Info("run summary",
		"run_id", s.RunID,
		"run_date", s.RunDate,
		"state", string(s.State),
		"duration", s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond).String(),
	)
	for _, d := range s.Domains {
		args := []any{"run_id", s.RunID, "domain", d.Domain, "state", string(d.State)}
		if d.Gate != nil {
			args = append(args,
				"expected_keys", d.Gate.Expected,
				"present_keys", d.Gate.Present,
				"coverage", d.Gate.Coverage,
				"gate_passed", d.Gate.Passed,
			)
		}
		if d.FailureCause != "" {
			args = append(args, "failure_cause", d.FailureCause)
		}
		slog.Info("domain summary", args...)

		for _, ds := range d.Datasets {
			slog.Info("dataset summary",
				"run_id", s.RunID,
				"domain", d.Domain,
				"dataset", ds.Dataset,
				"dropped", ds.Dropped,
				"rejected", ds.Rejected,
				"inserted", ds.Load.Inserted,
				"updated", ds.Load.Updated,
				"skipped_unchanged", ds.Load.Skipped,
				"failed", ds.Load.Failed,
			)
		}
	}
}
