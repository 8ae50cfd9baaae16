package core

import (
	"strings"

	"github.com/huichen/ocrmatch/types"
	"github.com/pkg/errors"
)

var ErrColumnNotFound = errors.New("column not found")

// 最多在错误信息中列出的表头数
const maxHeadersInError = 10

// 按别名优先级在表头中查找一列，找不到时返回-1
func findColumn(headers []string, aliases []string) (int, string) {
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		for i, h := range headers {
			if strings.EqualFold(cleanHeader(h), alias) {
				return i, alias
			}
		}
	}
	return -1, ""
}

// 去掉BOM和首尾空白
func cleanHeader(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
}

// 将表头映射到字段1、字段2和可选的订单号列
//
// 必需的列找不到时返回的错误会列出尝试过的别名和现有表头（最多10个）。
func ResolveColumns(headers []string, aliases types.ColumnAliases) (types.ResolvedColumns, error) {
	var resolved types.ResolvedColumns

	required := []struct {
		field   string
		aliases []string
		index   *int
		name    *string
	}{
		{"field1", aliases.Field1, &resolved.Field1Index, &resolved.Field1Name},
		{"field2", aliases.Field2, &resolved.Field2Index, &resolved.Field2Name},
	}
	for _, r := range required {
		index, name := findColumn(headers, r.aliases)
		if index < 0 {
			shown := headers
			if len(shown) > maxHeadersInError {
				shown = shown[:maxHeadersInError]
			}
			return resolved, errors.Wrapf(ErrColumnNotFound,
				"%s: tried aliases [%s], available headers [%s]",
				r.field, strings.Join(r.aliases, ", "), strings.Join(shown, ", "))
		}
		*r.index = index
		*r.name = name
	}

	resolved.OrderIndex, resolved.OrderName = findColumn(headers, aliases.Order)
	return resolved, nil
}
