package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund_pipeline/internal/pipeline/record"
)

var navRules = Rules{
	Required:   []string{"ticker", "asset_type", "source", "nav_price", "as_of_date"},
	Positive:   []string{"nav_price"},
	NotFuture:  []string{"as_of_date"},
	KeyColumns: []string{"ticker", "asset_type", "source", "as_of_date"},
}

func navRow(ticker, nav, date string) record.Row {
	return record.Row{
		"ticker": ticker, "asset_type": "FUND", "source": "Financial Times",
		"nav_price": nav, "as_of_date": date,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	const asOf = "2024-01-03"

	tests := []struct {
		name        string
		rows        []record.Row
		wantValid   int
		wantReasons []string
	}{
		{
			name:      "success: clean row passes",
			rows:      []record.Row{navRow("ABC", "10.500000", "2024-01-02")},
			wantValid: 1,
		},
		{
			name:        "reject: missing required field",
			rows:        []record.Row{navRow("ABC", "", "2024-01-02")},
			wantReasons: []string{ReasonMissingField},
		},
		{
			name:        "reject: non-positive nav",
			rows:        []record.Row{navRow("ABC", "0.000000", "2024-01-02")},
			wantReasons: []string{ReasonOutOfRange},
		},
		{
			name:        "reject: negative nav",
			rows:        []record.Row{navRow("ABC", "-1.000000", "2024-01-02")},
			wantReasons: []string{ReasonOutOfRange},
		},
		{
			name:        "reject: future as_of_date",
			rows:        []record.Row{navRow("ABC", "10.000000", "2024-02-01")},
			wantReasons: []string{ReasonFutureDate},
		},
		{
			name:        "reject: malformed number slips through cleaner",
			rows:        []record.Row{navRow("ABC", "10,5", "2024-01-02")},
			wantReasons: []string{ReasonTypeInvalid},
		},
		{
			name: "reject: duplicate keeps first occurrence",
			rows: []record.Row{
				navRow("ABC", "10.000000", "2024-01-02"),
				navRow("ABC", "11.000000", "2024-01-02"),
			},
			wantValid:   1,
			wantReasons: []string{ReasonDuplicate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.rows, navRules, asOf)
			assert.Len(t, res.Valid, tt.wantValid)
			reasons := make([]string, 0, len(res.Rejects))
			for _, rej := range res.Rejects {
				reasons = append(reasons, rej.Reason)
			}
			assert.Equal(t, tt.wantReasons, reasons)
		})
	}
}

// TestValidate_DuplicatePolicyIsDeterministic は重複組のうち先頭行が残ることを検証します。
func TestValidate_DuplicatePolicyIsDeterministic(t *testing.T) {
	t.Parallel()

	rows := []record.Row{
		navRow("ABC", "10.000000", "2024-01-02"),
		navRow("ABC", "11.000000", "2024-01-02"),
		navRow("ABC", "12.000000", "2024-01-02"),
	}
	res := Validate(rows, navRules, "2024-01-03")
	require.Len(t, res.Valid, 1)
	assert.Equal(t, "10.000000", res.Valid[0]["nav_price"])
	assert.Len(t, res.Rejects, 2)
}

func TestRejectRows(t *testing.T) {
	t.Parallel()

	rejects := []Reject{{Row: navRow("ABC", "", "2024-01-02"), Reason: ReasonMissingField}}
	rows := RejectRows(rejects)
	require.Len(t, rows, 1)
	assert.Equal(t, ReasonMissingField, rows[0][ReasonColumn])
	assert.Equal(t, "ABC", rows[0]["ticker"])
}
