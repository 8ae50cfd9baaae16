package refdata

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huichen/ocrmatch/core"
	"github.com/huichen/ocrmatch/types"
	"github.com/huichen/ocrmatch/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrColumnMismatch = errors.New("column mismatch between source files")

// 一份参考数据快照
type Snapshot struct {
	Rows    []types.ReferenceRow
	Digest  string
	Columns types.ResolvedColumns
	Sources []string

	// 被跳过的异常行数
	Skipped int
}

// 把文件或目录展开成排好序的表文件列表，目录只取.csv和.tsv
func ScanSources(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat source %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read source dir %s", path)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".tsv":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no .csv or .tsv files in %s", path)
	}
	sort.Strings(files)
	return files, nil
}

// 计算当前源文件的摘要：单文件用自身摘要，多文件按路径排序后合并
func SourceDigest(paths []string, cache *TableCache) (string, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	digests := make([]string, 0, len(sorted))
	for _, path := range sorted {
		table, err := cache.Load(path)
		if err != nil {
			return "", err
		}
		digests = append(digests, table.Digest)
	}
	return combineDigests(digests), nil
}

func combineDigests(digests []string) string {
	if len(digests) == 1 {
		return digests[0]
	}
	return core.ComputeMultiFileDigest(digests)
}

// 读入全部源文件的参考行
//
// 每个文件都必须解析出相同的列，否则返回ErrColumnMismatch。列数不足或两个字段都为空的行被跳过并记警告。
func LoadSnapshot(paths []string, aliases types.ColumnAliases, cache *TableCache, logger *zap.Logger) (*Snapshot, error) {
	if len(paths) == 0 {
		return nil, errors.New("no source files")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	snapshot := &Snapshot{Sources: sorted}
	digests := make([]string, 0, len(sorted))
	for i, path := range sorted {
		table, err := cache.Load(path)
		if err != nil {
			return nil, err
		}
		columns, err := core.ResolveColumns(table.Headers, aliases)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve columns of %s", path)
		}
		if i == 0 {
			snapshot.Columns = columns
		} else if strings.Join(columns.Names(), "|") != strings.Join(snapshot.Columns.Names(), "|") {
			return nil, errors.Wrapf(ErrColumnMismatch, "%s has [%s], %s has [%s]",
				sorted[0], strings.Join(snapshot.Columns.Names(), ", "),
				path, strings.Join(columns.Names(), ", "))
		}
		digests = append(digests, table.Digest)

		rows, skipped := tableRows(table, columns, logger)
		snapshot.Rows = append(snapshot.Rows, rows...)
		snapshot.Skipped += skipped
	}
	snapshot.Digest = combineDigests(digests)

	logger.Info("reference snapshot loaded",
		zap.Int("files", len(sorted)),
		zap.Int("rows", len(snapshot.Rows)),
		zap.Int("skipped", snapshot.Skipped),
		zap.String("digest", snapshot.Digest))
	return snapshot, nil
}

func tableRows(table *Table, columns types.ResolvedColumns, logger *zap.Logger) ([]types.ReferenceRow, int) {
	need := utils.MaxInt(columns.Field1Index, columns.Field2Index)
	rows := make([]types.ReferenceRow, 0, len(table.Rows))
	skipped := 0
	for i, record := range table.Rows {
		if len(record) <= need {
			logger.Warn("skip malformed row",
				zap.String("file", table.Path), zap.Int("row", i), zap.Int("cells", len(record)))
			skipped++
			continue
		}
		row := types.ReferenceRow{
			Field1:     strings.TrimSpace(record[columns.Field1Index]),
			Field2:     strings.TrimSpace(record[columns.Field2Index]),
			Provenance: types.Provenance{SourceFile: table.Path, RowIndex: i},
		}
		if row.Field1 == "" && row.Field2 == "" {
			logger.Warn("skip empty row", zap.String("file", table.Path), zap.Int("row", i))
			skipped++
			continue
		}
		if columns.OrderIndex >= 0 && columns.OrderIndex < len(record) {
			row.Order = strings.TrimSpace(record[columns.OrderIndex])
		}
		rows = append(rows, row)
	}
	return rows, skipped
}
