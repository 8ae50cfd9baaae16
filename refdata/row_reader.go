package refdata

import (
	"github.com/pkg/errors"
)

var ErrRowOutOfRange = errors.New("row index out of range")

// 读取源文件中的一行原始数据（表头 -> 单元格），用于展示匹配依据
func ReadRow(cache *TableCache, path string, rowIndex int) (map[string]string, error) {
	table, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	if rowIndex < 0 || rowIndex >= len(table.Rows) {
		return nil, errors.Wrapf(ErrRowOutOfRange, "%s row %d of %d", path, rowIndex, len(table.Rows))
	}
	record := table.Rows[rowIndex]
	row := make(map[string]string, len(table.Headers))
	for i, header := range table.Headers {
		if i < len(record) {
			row[header] = record[i]
		} else {
			row[header] = ""
		}
	}
	return row, nil
}
