// Package usecase はマスターリストドメインのステージ定義を提供します。
package usecase

import (
	"path/filepath"

	"fund_pipeline/internal/pipeline"
	"fund_pipeline/internal/pipeline/clean"
	"fund_pipeline/internal/pipeline/merge"
	"fund_pipeline/internal/pipeline/validate"
	"fund_pipeline/internal/shared/sources"
)

// DatasetName は銘柄マスターデータセットの識別子です。
const DatasetName = "security_master"

// Domain は銘柄マスターのドメイン定義を組み立てます。
// マスターはソースごとに1行を保持するため、ソース間のマージは行いません
// （同一ソース内の重複除去のみ）。
func Domain(rawDir string, priority []string, loader pipeline.Loader) pipeline.Domain {
	return pipeline.Domain{
		Name: "master",
		Datasets: []pipeline.Dataset{
			{
				Name:       DatasetName,
				RawSources: rawSources(rawDir),
				Schema: clean.Schema{
					Columns: []clean.Column{
						{Name: "ticker", Kind: clean.UpperText, Required: true},
						{Name: "asset_type", Kind: clean.UpperText, Required: true},
						{Name: "source", Kind: clean.Text, Required: true},
						{Name: "name", Kind: clean.Text},
					},
					Renames: map[string]string{
						"symbol":        "ticker",
						"type":          "asset_type",
						"security_type": "asset_type",
						"fund_name":     "name",
						"long_name":     "name",
					},
					Aliases: map[string]map[string]string{
						"asset_type": {
							"MUTUAL FUND": "FUND",
							"FUNDS":       "FUND",
							"ETFS":        "ETF",
							"STOCKS":      "STOCK",
						},
						"source": sources.Aliases(),
					},
				},
				Merge: merge.Spec{
					KeyColumns:  []string{"ticker", "asset_type"},
					CrossSource: false,
					Priority:    priority,
				},
				Rules: validate.Rules{
					Required:   []string{"ticker", "asset_type", "source"},
					KeyColumns: []string{"ticker", "asset_type", "source"},
				},
				ContentColumns: []string{"name"},
				Loader:         loader,
				Gated:          true,
			},
		},
	}
}

func rawSources(rawDir string) []pipeline.RawSource {
	var out []pipeline.RawSource
	for _, src := range sources.DefaultPriority() {
		out = append(out, pipeline.RawSource{
			Source: src,
			Glob:   filepath.Join(rawDir, sources.Slug(src), "securities*.csv"),
		})
	}
	return out
}
