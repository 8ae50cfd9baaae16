package refdata

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"

	"github.com/huichen/ocrmatch/core"
	"github.com/pkg/errors"
)

// 解析后的参考表
type Table struct {
	Path    string
	Headers []string

	// 数据行，不含表头
	Rows [][]string

	// 原始字节的摘要
	Digest string
}

// 按扩展名选择分隔符：.tsv用制表符，其余用逗号
func delimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

func ParseTable(path string, content []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))))
	reader.Comma = delimiterFor(path)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parse table %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("table %s has no header row", path)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return &Table{
		Path:    path,
		Headers: headers,
		Rows:    records[1:],
		Digest:  core.ComputeDigest(content),
	}, nil
}
