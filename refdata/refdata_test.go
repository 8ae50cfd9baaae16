package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huichen/ocrmatch/core"
	"github.com/huichen/ocrmatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSnapshotSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ref.csv",
		"\xef\xbb\xbf订单号,供应单位名称,单体工程名称\n"+
			"A001,河南宏凯建设有限公司,新荣TOD项目\n"+
			"A002,郑州电力工程有限公司\n"+
			"A003,,\n"+
			"A004,中原线路工程有限公司,北区线路改造\n")

	cache, err := NewTableCache(4)
	require.NoError(t, err)

	snapshot, err := LoadSnapshot([]string{path}, types.DefaultColumnAliases(), cache, nil)
	require.NoError(t, err)

	require.Len(t, snapshot.Rows, 2)
	assert.Equal(t, 2, snapshot.Skipped)
	assert.Equal(t, "河南宏凯建设有限公司", snapshot.Rows[0].Field1)
	assert.Equal(t, "新荣TOD项目", snapshot.Rows[0].Field2)
	assert.Equal(t, "A001", snapshot.Rows[0].Order)
	assert.Equal(t, 3, snapshot.Rows[1].Provenance.RowIndex)
	assert.Equal(t, []string{"供应单位名称", "单体工程名称", "订单号"}, snapshot.Columns.Names())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, core.ComputeDigest(content), snapshot.Digest)
	assert.Equal(t, 1, cache.Len())
}

func TestLoadSnapshotMultiFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "供应单位名称,单体工程名称\n乙公司,乙项目\n")
	writeFile(t, dir, "a.tsv", "供应单位名称\t单体工程名称\n甲公司\t甲项目\n")
	writeFile(t, dir, "notes.txt", "ignored")

	paths, err := ScanSources(dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.tsv"), filepath.Join(dir, "b.csv")}, paths)

	snapshot, err := LoadSnapshot(paths, types.DefaultColumnAliases(), nil, nil)
	require.NoError(t, err)
	require.Len(t, snapshot.Rows, 2)
	assert.Equal(t, "甲公司", snapshot.Rows[0].Field1)
	assert.Equal(t, "乙项目", snapshot.Rows[1].Field2)

	a, _ := ParseTable("a.tsv", []byte("供应单位名称\t单体工程名称\n甲公司\t甲项目\n"))
	b, _ := ParseTable("b.csv", []byte("供应单位名称,单体工程名称\n乙公司,乙项目\n"))
	assert.Equal(t, core.ComputeMultiFileDigest([]string{a.Digest, b.Digest}), snapshot.Digest)

	digest, err := SourceDigest([]string{paths[1], paths[0]}, nil)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Digest, digest)
}

func TestLoadSnapshotColumnErrors(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.csv", "供应单位名称,单体工程名称,订单号\n甲,甲项目,1\n")
	second := writeFile(t, dir, "b.csv", "供应单位名称,单体工程名称\n乙,乙项目\n")

	_, err := LoadSnapshot([]string{first, second}, types.DefaultColumnAliases(), nil, nil)
	assert.ErrorIs(t, err, ErrColumnMismatch)

	bad := writeFile(t, dir, "c.csv", "名称,项目\n甲,甲项目\n")
	_, err = LoadSnapshot([]string{bad}, types.DefaultColumnAliases(), nil, nil)
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
	assert.Contains(t, err.Error(), "供应单位名称")
	assert.Contains(t, err.Error(), "名称, 项目")
}

func TestTableCacheAndReadRow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ref.csv", "供应单位名称,单体工程名称\n甲公司,甲项目\n")

	cache, err := NewTableCache(2)
	require.NoError(t, err)

	row, err := ReadRow(cache, path, 0)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"供应单位名称": "甲公司", "单体工程名称": "甲项目"}, row)

	// 文件变了但缓存还在
	writeFile(t, dir, "ref.csv", "供应单位名称,单体工程名称\n丙公司,丙项目\n")
	row, err = ReadRow(cache, path, 0)
	require.NoError(t, err)
	assert.Equal(t, "甲公司", row["供应单位名称"])

	cache.Invalidate(path)
	row, err = ReadRow(cache, path, 0)
	require.NoError(t, err)
	assert.Equal(t, "丙公司", row["供应单位名称"])

	_, err = ReadRow(cache, path, 5)
	assert.ErrorIs(t, err, ErrRowOutOfRange)

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}
