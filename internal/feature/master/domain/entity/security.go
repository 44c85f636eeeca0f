// Package entity はマスターリストフィーチャーのドメインモデルを定義します。
package entity

import "time"

// 銘柄のライフサイクル状態。
const (
	StatusActive   = "ACTIVE"
	StatusDelisted = "DELISTED"
)

// Security は銘柄マスターの1行を表します。
// 同一銘柄でもソースごとに1行持ち、どのソースがいつまで観測していたかを保持します。
// 日付カラムはパイプライン全体の正規形に合わせてISO形式の文字列で保持します。
type Security struct {
	ID        uint    `gorm:"primaryKey"`
	Ticker    string  `gorm:"size:50;not null;uniqueIndex:uq_security_master,priority:1"`
	AssetType string  `gorm:"size:20;not null;uniqueIndex:uq_security_master,priority:2"`
	Source    string  `gorm:"size:50;not null;uniqueIndex:uq_security_master,priority:3"`
	Name      *string `gorm:"size:255"`
	Status    string  `gorm:"size:20;not null;default:ACTIVE"`
	FirstSeen string  `gorm:"size:10;not null"`
	LastSeen  string  `gorm:"size:10;not null"`
	RowHash   *string `gorm:"column:row_hash;size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はターゲットテーブル名を返します。
func (Security) TableName() string { return "stg_security_master" }

// KeyConditions は自然キーのWHERE条件を返します。
func (s *Security) KeyConditions() map[string]any {
	return map[string]any{
		"ticker":     s.Ticker,
		"asset_type": s.AssetType,
		"source":     s.Source,
	}
}

// Hash は事前計算済みのコンテンツハッシュを返します。
func (s *Security) Hash() string {
	if s.RowHash == nil {
		return ""
	}
	return *s.RowHash
}

// ContentAssignments は内容が変わった行の更新カラムを返します。
func (s *Security) ContentAssignments() map[string]any {
	return map[string]any{
		"name":      s.Name,
		"status":    s.Status,
		"last_seen": s.LastSeen,
	}
}

// UnchangedAssignments は内容が同一でも今日観測した事実を残すため、
// last_seen だけを進めます。updated_at は動かしません。
func (s *Security) UnchangedAssignments() map[string]any {
	return map[string]any{"last_seen": s.LastSeen}
}
