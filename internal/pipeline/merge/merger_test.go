package merge

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund_pipeline/internal/pipeline/record"
)

var navSpec = Spec{
	KeyColumns:  []string{"ticker", "asset_type", "as_of_date"},
	CrossSource: true,
	Priority:    []string{"Financial Times", "Yahoo Finance", "Stock Analysis"},
}

// TestMerge_FieldLevelFallback は優先ソースの値が勝ち、優先ソースに無い
// フィールドだけが次点ソースで補完されることを検証します。
func TestMerge_FieldLevelFallback(t *testing.T) {
	t.Parallel()

	rows := []record.Row{
		{"ticker": "ABC", "asset_type": "FUND", "as_of_date": "2024-01-02", "source": "Financial Times", "nav_price": "10.500000", "currency": ""},
		{"ticker": "ABC", "asset_type": "FUND", "as_of_date": "2024-01-02", "source": "Yahoo Finance", "nav_price": "10.520000", "currency": "THB"},
	}

	out := Merge(rows, navSpec)
	require.Len(t, out, 1)
	assert.Equal(t, "10.500000", out[0]["nav_price"], "priority source value must win")
	assert.Equal(t, "THB", out[0]["currency"], "missing field falls back to next source")
	assert.Equal(t, "Financial Times", out[0]["source"])
}

// TestMerge_DeterministicUnderShuffle は入力の到着順を入れ替えても
// 出力が完全に一致することを検証します。
func TestMerge_DeterministicUnderShuffle(t *testing.T) {
	t.Parallel()

	base := []record.Row{
		{"ticker": "ABC", "asset_type": "FUND", "as_of_date": "2024-01-02", "source": "Financial Times", "nav_price": "10.500000"},
		{"ticker": "ABC", "asset_type": "FUND", "as_of_date": "2024-01-02", "source": "Yahoo Finance", "nav_price": "10.520000", "currency": "THB"},
		{"ticker": "XYZ", "asset_type": "ETF", "as_of_date": "2024-01-02", "source": "Stock Analysis", "nav_price": "20.000000"},
		{"ticker": "XYZ", "asset_type": "ETF", "as_of_date": "2024-01-02", "source": "Yahoo Finance", "nav_price": "20.010000"},
	}

	want := Merge(base, navSpec)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]record.Row, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Merge(shuffled, navSpec))
	}
}

func TestMerge_SingleSourcePassesThrough(t *testing.T) {
	t.Parallel()

	rows := []record.Row{
		{"ticker": "ONLY", "asset_type": "FUND", "as_of_date": "2024-01-02", "source": "Stock Analysis", "nav_price": "5.000000"},
	}
	out := Merge(rows, navSpec)
	require.Len(t, out, 1)
	assert.Equal(t, rows[0], out[0])
}

// TestMerge_WithinSourceOnly はマスターリスト方式（ソース間の重複を許容し、
// ソース内の重複だけを除去する）を検証します。
func TestMerge_WithinSourceOnly(t *testing.T) {
	t.Parallel()

	spec := Spec{
		KeyColumns:  []string{"ticker", "asset_type"},
		CrossSource: false,
		Priority:    []string{"Financial Times", "Yahoo Finance"},
	}
	rows := []record.Row{
		{"ticker": "ABC", "asset_type": "FUND", "source": "Financial Times", "name": "Fund A"},
		{"ticker": "ABC", "asset_type": "FUND", "source": "Yahoo Finance", "name": "Fund A (YF)"},
		{"ticker": "ABC", "asset_type": "FUND", "source": "Yahoo Finance", "name": "Fund A (YF)"},
	}

	out := Merge(rows, spec)
	require.Len(t, out, 2, "cross-source rows stay separate, within-source dup collapses")

	sources := []string{out[0]["source"], out[1]["source"]}
	assert.ElementsMatch(t, []string{"Financial Times", "Yahoo Finance"}, sources)
}

func TestMerge_UnknownSourceRanksLast(t *testing.T) {
	t.Parallel()

	rows := []record.Row{
		{"ticker": "ABC", "asset_type": "FUND", "as_of_date": "2024-01-02", "source": "Mystery Feed", "nav_price": "9.990000"},
		{"ticker": "ABC", "asset_type": "FUND", "as_of_date": "2024-01-02", "source": "Yahoo Finance", "nav_price": "10.000000"},
	}
	out := Merge(rows, navSpec)
	require.Len(t, out, 1)
	assert.Equal(t, "10.000000", out[0]["nav_price"])
	assert.Equal(t, "Yahoo Finance", out[0]["source"])
}
