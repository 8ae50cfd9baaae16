package core

import (
	"testing"

	"github.com/huichen/ocrmatch/types"
	"github.com/huichen/ocrmatch/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	utils.Expect(t, "[河南 南宏 宏凯]", Tokenize("河南宏凯", 2))
	assert.Equal(t, []string{"河南", "南宏", "宏凯"}, Tokenize("河南宏凯", 2))
	assert.Equal(t, []string{}, Tokenize("", 2))
	assert.Equal(t, []string{}, Tokenize("", 5))
	assert.Equal(t, []string{"河"}, Tokenize("河", 2))
	assert.Equal(t, []string{"ab"}, Tokenize("ab", 3))
	assert.Equal(t, []string{"河南宏", "南宏凯"}, Tokenize("河南宏凯", 3))
	assert.Equal(t, []string{"ab", "bc"}, Tokenize("abc", 0))
}

func TestComputeDigest(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ComputeDigest(nil))

	content := []byte("订单号,供应单位名称,单体工程名称\nA001,河南宏凯建设有限公司,新荣TOD项目\n")
	assert.Equal(t, ComputeDigest(content), ComputeDigest(append([]byte(nil), content...)))

	changed := append([]byte(nil), content...)
	changed[len(changed)-2] = 'X'
	assert.NotEqual(t, ComputeDigest(content), ComputeDigest(changed))

	a, b := ComputeDigest([]byte("a")), ComputeDigest([]byte("b"))
	assert.Equal(t, ComputeDigest([]byte(a+"|"+b)), ComputeMultiFileDigest([]string{a, b}))
	assert.NotEqual(t, ComputeMultiFileDigest([]string{a, b}), ComputeMultiFileDigest([]string{b, a}))
}

func TestBuildIndex(t *testing.T) {
	normalizer, err := NewNormalizer(types.NormalizeConfig{
		Replacements: []types.ReplaceRule{{Pattern: `\s+`}},
	})
	require.NoError(t, err)

	index := BuildIndex(newTestRows(
		"河南 宏凯", "新荣",
		"河南建设", "新荣二期",
		"河南河南", "河南",
	), normalizer, 2)

	utils.Expect(t, "3", len(index.Rows))
	utils.Expect(t, "[1 2 3]", index.Postings["河南"])
	utils.Expect(t, "[1 2]", index.Postings["新荣"])
	utils.Expect(t, "[1]", index.Postings["宏凯"])
	utils.Expect(t, "[3]", index.Postings["南河"])
	utils.Expect(t, "[]", index.Postings["北京"])

	assert.Equal(t, "河南宏凯", index.Rows[0].NormField1)
	assert.Equal(t, "河南 宏凯", index.Rows[0].Field1)
	assert.Equal(t, types.IndexVersion, index.Meta.Version)
	assert.Equal(t, 2, index.Meta.NgramSize)
	assert.Equal(t, 3, index.Meta.TotalRows)
	assert.Equal(t, len(index.Postings), index.Meta.UniqueTokens)

	row, found := index.Row(2)
	require.True(t, found)
	assert.Equal(t, "河南建设", row.Field1)
	_, found = index.Row(4)
	assert.False(t, found)
}

func TestIndexerLookup(t *testing.T) {
	index := BuildIndex(newTestRows(
		"河南宏凯", "新荣",
		"河南建设", "新荣二期",
		"北京物流", "朝阳",
	), nil, 2)
	indexer := NewIndexer(index)

	utils.Expect(t, "1:3 2:1 ", overlapsToString(indexer.Lookup([]string{"河南", "南宏", "宏凯", "河南"})))
	utils.Expect(t, "1:1 2:2 ", overlapsToString(indexer.Lookup([]string{"新荣", "荣二"})))
	utils.Expect(t, "", overlapsToString(indexer.Lookup(nil)))
	assert.Equal(t, 2, indexer.NgramSize())
}

func TestResolveColumns(t *testing.T) {
	aliases := types.DefaultColumnAliases()

	columns, err := ResolveColumns([]string{"\ufeff订单号", " 供应单位名称 ", "单体工程名称"}, aliases)
	require.NoError(t, err)
	assert.Equal(t, 1, columns.Field1Index)
	assert.Equal(t, 2, columns.Field2Index)
	assert.Equal(t, 0, columns.OrderIndex)
	assert.Equal(t, []string{"供应单位名称", "单体工程名称", "订单号"}, columns.Names())

	columns, err = ResolveColumns([]string{"单体工程名称", "供应单位名称"}, aliases)
	require.NoError(t, err)
	assert.Equal(t, -1, columns.OrderIndex)
	assert.Equal(t, []string{"供应单位名称", "单体工程名称"}, columns.Names())

	// 别名按顺序优先
	columns, err = ResolveColumns([]string{"Supplier", "Name", "Project"},
		types.ColumnAliases{Field1: []string{"name", "supplier"}, Field2: []string{"project"}})
	require.NoError(t, err)
	assert.Equal(t, 1, columns.Field1Index)
	assert.Equal(t, "name", columns.Field1Name)

	headers := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10", "c11", "供应单位名称"}
	_, err = ResolveColumns(headers, aliases)
	require.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), "field2")
	assert.Contains(t, err.Error(), "[单体工程名称]")
	assert.Contains(t, err.Error(), "c10]")
	assert.NotContains(t, err.Error(), "c11")
	assert.NotContains(t, err.Error(), "供应单位名称")
}
