// Package csvio はステージ間の中間ファイル（CSV）の読み書きを提供します。
// 各ステージの出力は既知のパスに永続化され、次ステージの入力・デバッグ用の
// 検査対象・再開時のチェックポイントを兼ねます。
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fund_pipeline/internal/pipeline/record"
)

// Read はCSVファイルを読み込み、ヘッダーをキーとする行のスライスを返します。
// ヘッダーは小文字化・トリムして正規化します。
func Read(path string) ([]record.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ソースによって列数が揃わないファイルを許容する

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]record.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(record.Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadGlob はパターンに一致するすべてのCSVを読み込み、行を連結して返します。
// ファイル名に "error" や "log" を含む補助ファイルは読み飛ばします。
// 一致するファイルが無い場合はエラーではなく空の結果を返します（部分欠損は上流で想定内）。
func ReadGlob(pattern string) ([]record.Row, int, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(paths)

	var rows []record.Row
	files := 0
	for _, p := range paths {
		base := strings.ToLower(filepath.Base(p))
		if strings.Contains(base, "error") || strings.Contains(base, "log") {
			continue
		}
		part, err := Read(p)
		if err != nil {
			return nil, files, err
		}
		rows = append(rows, part...)
		files++
	}
	return rows, files, nil
}

// Write は行集合を指定カラム順でCSVに書き出します。親ディレクトリは必要に応じて作成します。
func Write(path string, cols []string, rows []record.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cols); err != nil {
		return fmt.Errorf("write header %s: %w", path, err)
	}
	buf := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			buf[i] = row[c]
		}
		if err := w.Write(buf); err != nil {
			return fmt.Errorf("write row %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// Exists はチェックポイントファイルが存在するかを返します。
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
