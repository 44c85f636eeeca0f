package pipeline

// State はパイプライン実行（ドメイン単位・実行全体）の状態です。
// 抽出（Extracting）は外部コラボレーターの責務のため、ここではクリーニング以降を扱います。
type State string

const (
	StatePending    State = "Pending"
	StateCleaning   State = "Cleaning"
	StateMerging    State = "Merging"
	StateValidating State = "Validating"
	StateHashing    State = "Hashing"
	StateLoading    State = "Loading"

	// StateCompleted は全ステージが完了した終了状態です。
	StateCompleted State = "Completed"
	// StatePartiallyCompleted はゲート閾値未達のまま寛容モードで完了した終了状態です。
	StatePartiallyCompleted State = "PartiallyCompleted"
	// StateAborted は致命エラーまたは厳格モードのゲート不通過で中断した終了状態です。
	StateAborted State = "Aborted"
)

// Terminal は終了状態かどうかを返します。
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StatePartiallyCompleted, StateAborted:
		return true
	}
	return false
}
