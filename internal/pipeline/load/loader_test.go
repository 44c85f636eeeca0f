package load

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// navTestModel はローダーエンジン検証用の最小モデルです。
type navTestModel struct {
	ID        uint   `gorm:"primaryKey"`
	Ticker    string `gorm:"size:50;not null;uniqueIndex:uq_nav_test,priority:1"`
	AssetType string `gorm:"size:50;not null;uniqueIndex:uq_nav_test,priority:2"`
	Source    string `gorm:"size:50;not null;uniqueIndex:uq_nav_test,priority:3"`
	AsOfDate  string `gorm:"size:10;not null;uniqueIndex:uq_nav_test,priority:4"`
	NavPrice  *float64 `gorm:"not null"`
	Currency  string
	RowHash   *string `gorm:"column:row_hash;size:64"`
	UpdatedAt time.Time
}

func (navTestModel) TableName() string { return "nav_test" }

func (m *navTestModel) KeyConditions() map[string]any {
	return map[string]any{
		"ticker": m.Ticker, "asset_type": m.AssetType,
		"source": m.Source, "as_of_date": m.AsOfDate,
	}
}

func (m *navTestModel) Hash() string {
	if m.RowHash == nil {
		return ""
	}
	return *m.RowHash
}

func (m *navTestModel) ContentAssignments() map[string]any {
	return map[string]any{"nav_price": m.NavPrice, "currency": m.Currency}
}

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: は接続ごとに別DBになるため、プールを1接続に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&navTestModel{}), "failed to migrate table")
	return db
}

func ptr[T any](v T) *T { return &v }

func navModel(ticker, date string, price float64, hash string) *navTestModel {
	return &navTestModel{
		Ticker: ticker, AssetType: "FUND", Source: "Financial Times",
		AsOfDate: date, NavPrice: ptr(price), Currency: "THB", RowHash: ptr(hash),
	}
}

func asModels(ms ...*navTestModel) []Model {
	out := make([]Model, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&navTestModel{}).Count(&n).Error)
	return n
}

func TestUpsertAll_InsertsNewKeys(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	res, err := UpsertAll(context.Background(), db, asModels(
		navModel("ABC", "2024-01-02", 10.50, "hash-a"),
		navModel("XYZ", "2024-01-02", 20.00, "hash-b"),
	), 1)

	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 2}, res)
	assert.EqualValues(t, 2, countRows(t, db))
}

// TestUpsertAll_Idempotent は同一入力での2回目の実行が全行スキップになることを検証します。
func TestUpsertAll_Idempotent(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	models := asModels(
		navModel("ABC", "2024-01-02", 10.50, "hash-a"),
		navModel("XYZ", "2024-01-02", 20.00, "hash-b"),
	)

	_, err := UpsertAll(context.Background(), db, models, 1)
	require.NoError(t, err)

	res, err := UpsertAll(context.Background(), db, models, 1)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 2}, res, "second run must rewrite nothing")
	assert.EqualValues(t, 2, countRows(t, db))
}

// TestUpsertAll_ChangeDetection は1フィールドの変化がその行だけの更新になり、
// row_hash と updated_at が動くことを検証します。
func TestUpsertAll_ChangeDetection(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	_, err := UpsertAll(context.Background(), db, asModels(
		navModel("ABC", "2024-01-02", 10.50, "hash-a1"),
		navModel("XYZ", "2024-01-02", 20.00, "hash-b"),
	), 1)
	require.NoError(t, err)

	var before navTestModel
	require.NoError(t, db.Where("ticker = ?", "ABC").First(&before).Error)

	time.Sleep(10 * time.Millisecond)

	res, err := UpsertAll(context.Background(), db, asModels(
		navModel("ABC", "2024-01-02", 10.52, "hash-a2"), // 訂正値
		navModel("XYZ", "2024-01-02", 20.00, "hash-b"),
	), 1)
	require.NoError(t, err)
	assert.Equal(t, Result{Updated: 1, Skipped: 1}, res)

	var after navTestModel
	require.NoError(t, db.Where("ticker = ?", "ABC").First(&after).Error)
	assert.Equal(t, 10.52, *after.NavPrice)
	assert.Equal(t, "hash-a2", *after.RowHash)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt), "updated_at must move on content change")

	var untouched navTestModel
	require.NoError(t, db.Where("ticker = ?", "XYZ").First(&untouched).Error)
	assert.Equal(t, "hash-b", *untouched.RowHash)
}

// TestUpsertAll_NullStoredHashForcesUpdate はハッシュ未付与の既存行が
// 必ず更新対象になることを検証します。
func TestUpsertAll_NullStoredHashForcesUpdate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	legacy := navModel("OLD", "2024-01-02", 5.00, "")
	legacy.RowHash = nil
	require.NoError(t, db.Create(legacy).Error)

	res, err := UpsertAll(context.Background(), db, asModels(
		navModel("OLD", "2024-01-02", 5.00, "hash-new"),
	), 1)
	require.NoError(t, err)
	assert.Equal(t, Result{Updated: 1}, res)

	var got navTestModel
	require.NoError(t, db.Where("ticker = ?", "OLD").First(&got).Error)
	require.NotNil(t, got.RowHash)
	assert.Equal(t, "hash-new", *got.RowHash)
}

// TestUpsertAll_RowFailureDoesNotAbortBatch は1行の制約違反がバッチを
// 止めず、残りの行が永続化されることを検証します。
func TestUpsertAll_RowFailureDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)

	poisoned := navModel("BAD", "2024-01-02", 0, "hash-bad")
	poisoned.NavPrice = nil // NOT NULL制約に違反させる

	models := asModels(
		navModel("OK1", "2024-01-02", 1.00, "hash-1"),
		poisoned,
		navModel("OK2", "2024-01-02", 2.00, "hash-2"),
		navModel("OK3", "2024-01-02", 3.00, "hash-3"),
	)

	res, err := UpsertAll(context.Background(), db, models, 1)
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 3, Failed: 1}, res)
	assert.EqualValues(t, 3, countRows(t, db))
}

func TestUpsertAll_EmptyInput(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	res, err := UpsertAll(context.Background(), db, nil, 4)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

// maintainedModel はハッシュ一致時にも last_seen を進めるモデルです。
type maintainedModel struct {
	navTestModel
	LastSeen string `gorm:"-"`
}

func (m *maintainedModel) UnchangedAssignments() map[string]any {
	return map[string]any{"currency": m.LastSeen} // 既存カラムを流用して検証する
}

func TestUpsertAll_UnchangedMaintainer(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	base := navModel("ABC", "2024-01-02", 10.50, "hash-a")
	_, err := UpsertAll(context.Background(), db, asModels(base), 1)
	require.NoError(t, err)

	kept := &maintainedModel{navTestModel: *navModel("ABC", "2024-01-02", 10.50, "hash-a"), LastSeen: "USD"}
	res, err := UpsertAll(context.Background(), db, []Model{kept}, 1)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 1}, res, "maintained row still counts as skipped")

	var got navTestModel
	require.NoError(t, db.Where("ticker = ?", "ABC").First(&got).Error)
	assert.Equal(t, "USD", got.Currency, "maintenance assignment must be applied")
}

func TestResult_AddAndTotal(t *testing.T) {
	t.Parallel()

	var r Result
	r.Add(Result{Inserted: 1, Updated: 2})
	r.Add(Result{Skipped: 3, Failed: 4})
	assert.Equal(t, Result{Inserted: 1, Updated: 2, Skipped: 3, Failed: 4}, r)
	assert.Equal(t, 10, r.Total())
}
