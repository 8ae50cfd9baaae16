package core

import (
	"sort"
	"time"

	"github.com/huichen/ocrmatch/types"
)

// 由参考行建立反向索引
//
// 行编号按输入顺序重新分配为1..len(rows)。每行的两个字段先归一化再切分，
// 两个字段的关键词合并去重后把行编号追加到每个关键词的postings。
// 返回的索引中Digest、Meta.Columns和Meta.Sources由调用者填写。
func BuildIndex(rows []types.ReferenceRow, normalizer *Normalizer, n int) *types.InvertedIndex {
	if n <= 0 {
		n = DefaultNgramSize
	}
	index := &types.InvertedIndex{
		Rows:     make([]types.ReferenceRow, len(rows)),
		Postings: make(map[string][]uint64),
	}

	for i, row := range rows {
		row.Id = uint64(i + 1)
		row.NormField1 = normalizer.Normalize(row.Field1)
		row.NormField2 = normalizer.Normalize(row.Field2)
		index.Rows[i] = row

		seen := make(map[string]struct{})
		for _, field := range []string{row.NormField1, row.NormField2} {
			for _, token := range Tokenize(field, n) {
				if _, found := seen[token]; found {
					continue
				}
				seen[token] = struct{}{}
				index.Postings[token] = append(index.Postings[token], row.Id)
			}
		}
	}

	index.Meta = types.IndexMeta{
		Version:      types.IndexVersion,
		BuiltAt:      time.Now(),
		NgramSize:    n,
		TotalRows:    len(index.Rows),
		UniqueTokens: len(index.Postings),
	}
	return index
}

// 只读的索引查找器
type Indexer struct {
	index *types.InvertedIndex
}

func NewIndexer(index *types.InvertedIndex) *Indexer {
	return &Indexer{index: index}
}

// 某行与查询共有的关键词数
type overlap struct {
	docId uint64
	count int
}

// 查找包含任一关键词的行，返回每行命中的（去重后）关键词数，按行编号升序
func (indexer *Indexer) Lookup(tokens []string) []overlap {
	counts := make(map[uint64]int)
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, found := seen[token]; found {
			continue
		}
		seen[token] = struct{}{}
		for _, id := range indexer.index.Postings[token] {
			counts[id]++
		}
	}

	overlaps := make([]overlap, 0, len(counts))
	for id, count := range counts {
		overlaps = append(overlaps, overlap{docId: id, count: count})
	}
	sort.Slice(overlaps, func(i, j int) bool {
		return overlaps[i].docId < overlaps[j].docId
	})
	return overlaps
}

// 某个关键词的postings
func (indexer *Indexer) Postings(token string) []uint64 {
	return indexer.index.Postings[token]
}

func (indexer *Indexer) Row(id uint64) (types.ReferenceRow, bool) {
	return indexer.index.Row(id)
}

func (indexer *Indexer) Rows() []types.ReferenceRow {
	return indexer.index.Rows
}

func (indexer *Indexer) NgramSize() int {
	if indexer.index.Meta.NgramSize <= 0 {
		return DefaultNgramSize
	}
	return indexer.index.Meta.NgramSize
}
