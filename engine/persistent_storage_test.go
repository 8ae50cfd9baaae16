package engine

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/huichen/ocrmatch/refdata"
	"github.com/huichen/ocrmatch/storage"
	"github.com/huichen/ocrmatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLargeTestIndex(numRows int) *types.InvertedIndex {
	fields := make([]string, 0, numRows*2)
	for i := 0; i < numRows; i++ {
		fields = append(fields,
			fmt.Sprintf("第%d建设有限公司", i),
			fmt.Sprintf("%d号线路改造工程", i))
	}
	index := newTestIndex(fields...)
	index.Meta.Sources = []string{"ref.csv"}
	index.Meta.Columns = types.ResolvedColumns{
		Field1Index: 0, Field2Index: 1, OrderIndex: -1,
		Field1Name: "供应单位名称", Field2Name: "单体工程名称",
	}
	return index
}

func assertSameIndex(t *testing.T, expected, actual *types.InvertedIndex) {
	assert.Equal(t, expected.Digest, actual.Digest)
	assert.Equal(t, expected.Rows, actual.Rows)
	assert.Equal(t, expected.Postings, actual.Postings)
	assert.Equal(t, expected.Meta.TotalRows, actual.Meta.TotalRows)
	assert.Equal(t, expected.Meta.UniqueTokens, actual.Meta.UniqueTokens)
	assert.Equal(t, expected.Meta.NgramSize, actual.Meta.NgramSize)
	assert.Equal(t, expected.Meta.Version, actual.Meta.Version)
	assert.Equal(t, expected.Meta.Columns, actual.Meta.Columns)
	assert.Equal(t, expected.Meta.Sources, actual.Meta.Sources)
	assert.True(t, expected.Meta.BuiltAt.Equal(actual.Meta.BuiltAt))
}

func TestIndexFileRoundTrip(t *testing.T) {
	index := newLargeTestIndex(2500)
	require.Greater(t, len(index.Rows), rowsPerChunk*2)

	for _, engine := range storage.SupportedEngines() {
		t.Run(engine, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "index."+engine)
			require.NoError(t, WriteIndexFile(path, engine, index))

			loaded, err := ReadIndexFile(path, engine)
			require.NoError(t, err)
			assertSameIndex(t, index, loaded)

			row, found := loaded.Row(2500)
			require.True(t, found)
			assert.Equal(t, "第2499建设有限公司", row.Field1)
		})
	}
}

func TestSaveIndexOverwrites(t *testing.T) {
	store, err := storage.OpenStorage(filepath.Join(t.TempDir(), "index.bolt"), "bolt")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, SaveIndex(store, newLargeTestIndex(1500)))
	small := newLargeTestIndex(3)
	require.NoError(t, SaveIndex(store, small))

	loaded, err := LoadIndex(store)
	require.NoError(t, err)
	assertSameIndex(t, small, loaded)
}

func TestLoadIndexCorrupt(t *testing.T) {
	store, err := storage.OpenStorage(filepath.Join(t.TempDir(), "index.bolt"), "bolt")
	require.NoError(t, err)
	defer store.Close()

	_, err = LoadIndex(store)
	assert.ErrorIs(t, err, ErrCorruptIndex)

	require.NoError(t, SaveIndex(store, newLargeTestIndex(1500)))
	require.NoError(t, store.Delete(chunkKey(rowsKeyPrefix, 1)))
	_, err = LoadIndex(store)
	assert.ErrorIs(t, err, ErrCorruptIndex)

	require.NoError(t, store.Set(chunkKey(rowsKeyPrefix, 1), []byte("not gob")))
	_, err = LoadIndex(store)
	assert.ErrorIs(t, err, ErrCorruptIndex)
}

func TestReadIndexFileMissing(t *testing.T) {
	_, err := ReadIndexFile(filepath.Join(t.TempDir(), "missing.bolt"), "bolt")
	assert.Error(t, err)

	_, err = ReadIndexFile(filepath.Join(t.TempDir(), "index"), "leveldb")
	assert.Error(t, err)
}

func TestBuildIndexFromSnapshot(t *testing.T) {
	snapshot := &refdata.Snapshot{
		Rows: []types.ReferenceRow{
			{Field1: "河南宏凯建设有限公司", Field2: "新荣 TOD项目", Order: "A001"},
			{Field1: "郑州电力工程有限公司", Field2: "北区线路改造"},
		},
		Digest:  "abc",
		Sources: []string{"a.csv", "b.csv"},
		Columns: types.ResolvedColumns{Field1Index: 1, Field2Index: 2, OrderIndex: 0},
	}

	index, err := BuildIndex(snapshot, types.DefaultNormalizeConfig(), 2)
	require.NoError(t, err)
	assert.Equal(t, "abc", index.Digest)
	assert.Equal(t, []string{"a.csv", "b.csv"}, index.Meta.Sources)
	assert.Equal(t, snapshot.Columns, index.Meta.Columns)
	assert.Equal(t, 2, index.Meta.TotalRows)
	assert.Equal(t, "新荣TOD项目", index.Rows[0].NormField2)
	assert.Equal(t, "A001", index.Rows[0].Order)
	assert.Equal(t, []uint64{1}, index.Postings["宏凯"])

	_, err = BuildIndex(nil, types.DefaultNormalizeConfig(), 2)
	assert.Error(t, err)

	_, err = BuildIndex(snapshot, types.NormalizeConfig{Replacements: []types.ReplaceRule{{Pattern: "(["}}}, 2)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}
