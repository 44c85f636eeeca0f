package rowhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund_pipeline/internal/pipeline/record"
)

var contentCols = []string{"nav_price", "currency"}

// TestSum_Deterministic は同じ論理内容が常に同じダイジェストになることを検証します。
// Rowはmapなので反復順は不定ですが、ハッシュはスキーマ順で計算されるため影響しません。
func TestSum_Deterministic(t *testing.T) {
	t.Parallel()

	a := record.Row{"ticker": "ABC", "nav_price": "10.500000", "currency": "THB"}
	b := record.Row{"currency": "THB", "nav_price": "10.500000", "ticker": "ABC"}

	first := Sum(a, contentCols)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Sum(a, contentCols))
		assert.Equal(t, first, Sum(b, contentCols))
	}
}

func TestSum_IgnoresKeyAndBookkeepingColumns(t *testing.T) {
	t.Parallel()

	a := record.Row{"ticker": "ABC", "source": "Financial Times", "nav_price": "10.500000", "currency": "THB"}
	b := record.Row{"ticker": "XYZ", "source": "Yahoo Finance", "nav_price": "10.500000", "currency": "THB", "updated_at": "2024-01-02 09:00:00"}

	assert.Equal(t, Sum(a, contentCols), Sum(b, contentCols), "only content columns contribute")
}

func TestSum_ChangesWithContent(t *testing.T) {
	t.Parallel()

	a := record.Row{"nav_price": "10.500000", "currency": "THB"}
	b := record.Row{"nav_price": "10.510000", "currency": "THB"}
	c := record.Row{"nav_price": "10.500000", "currency": ""}

	assert.NotEqual(t, Sum(a, contentCols), Sum(b, contentCols))
	assert.NotEqual(t, Sum(a, contentCols), Sum(c, contentCols))
}

// TestSum_ColumnValueBoundary は値のずれがカラム境界を越えて同一視されないことを検証します。
func TestSum_ColumnValueBoundary(t *testing.T) {
	t.Parallel()

	a := record.Row{"nav_price": "10.5", "currency": "THB"}
	b := record.Row{"nav_price": "10.5THB", "currency": ""}
	assert.NotEqual(t, Sum(a, contentCols), Sum(b, contentCols))
}

func TestApply(t *testing.T) {
	t.Parallel()

	rows := []record.Row{
		{"ticker": "ABC", "nav_price": "10.500000", "currency": "THB"},
		{"ticker": "XYZ", "nav_price": "20.000000", "currency": ""},
	}
	hashed := Apply(rows, contentCols)
	require.Len(t, hashed, 2)
	assert.Len(t, hashed[0][Column], 64)
	assert.NotEqual(t, hashed[0][Column], hashed[1][Column])
	assert.NotContains(t, rows[0], Column, "input rows must not be mutated")
}
