package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund_pipeline/internal/pipeline/record"
)

func navSchema() Schema {
	return Schema{
		Columns: []Column{
			{Name: "ticker", Kind: UpperText, Required: true},
			{Name: "asset_type", Kind: UpperText, Required: true},
			{Name: "source", Kind: Text, Required: true},
			{Name: "nav_price", Kind: Number, Required: true},
			{Name: "currency", Kind: UpperText},
			{Name: "as_of_date", Kind: Date, Required: true},
		},
		Renames: map[string]string{"symbol": "ticker", "price": "nav_price"},
		Aliases: map[string]map[string]string{
			"asset_type": {"MUTUAL FUND": "FUND", "MUTUALFUND": "FUND"},
		},
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		raw         []record.Row
		wantRows    int
		wantDropped int
		verify      func(t *testing.T, rows []record.Row)
	}{
		{
			name: "success: normalizes case, renames and aliases",
			raw: []record.Row{{
				"Symbol":     " abc ",
				"asset_type": "Mutual Fund",
				"source":     "Financial Times",
				"Price":      "1,234.50",
				"currency":   "thb",
				"as_of_date": "2024/01/02",
			}},
			wantRows: 1,
			verify: func(t *testing.T, rows []record.Row) {
				assert.Equal(t, "ABC", rows[0]["ticker"])
				assert.Equal(t, "FUND", rows[0]["asset_type"])
				assert.Equal(t, "1234.500000", rows[0]["nav_price"])
				assert.Equal(t, "THB", rows[0]["currency"])
				assert.Equal(t, "2024-01-02", rows[0]["as_of_date"])
			},
		},
		{
			name: "drop: unparseable required number",
			raw: []record.Row{{
				"ticker": "ABC", "asset_type": "FUND", "source": "Yahoo Finance",
				"nav_price": "pending", "as_of_date": "2024-01-02",
			}},
			wantDropped: 1,
		},
		{
			name: "drop: missing required column",
			raw: []record.Row{{
				"ticker": "ABC", "asset_type": "FUND", "source": "Yahoo Finance",
				"as_of_date": "2024-01-02",
			}},
			wantDropped: 1,
		},
		{
			name: "keep: optional column broken value becomes missing",
			raw: []record.Row{{
				"ticker": "ABC", "asset_type": "ETF", "source": "Yahoo Finance",
				"nav_price": "10.5", "currency": "???", "as_of_date": "2024-01-02",
			}},
			wantRows: 1,
			verify: func(t *testing.T, rows []record.Row) {
				assert.Equal(t, "???", rows[0]["currency"])
			},
		},
		{
			name: "mixed: one good one bad reports both",
			raw: []record.Row{
				{"ticker": "GOOD", "asset_type": "FUND", "source": "Financial Times", "nav_price": "1.0", "as_of_date": "2024-01-02"},
				{"ticker": "", "asset_type": "FUND", "source": "Financial Times", "nav_price": "1.0", "as_of_date": "2024-01-02"},
			},
			wantRows:    1,
			wantDropped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Clean(tt.raw, navSchema())
			assert.Len(t, res.Rows, tt.wantRows)
			assert.Equal(t, tt.wantDropped, res.Dropped)
			if tt.verify != nil {
				require.NotEmpty(t, res.Rows)
				tt.verify(t, res.Rows)
			}
		})
	}
}

// TestClean_ToleratesMissingOptionalColumns は任意カラムがファイルごと欠けている
// 抽出物を受け付けることを検証します。
func TestClean_ToleratesMissingOptionalColumns(t *testing.T) {
	t.Parallel()

	raw := []record.Row{{
		"ticker": "ABC", "asset_type": "ETF", "source": "Stock Analysis",
		"nav_price": "9.99", "as_of_date": "2024-01-02",
	}}
	res := Clean(raw, navSchema())
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "", res.Rows[0]["currency"])
}
