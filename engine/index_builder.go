package engine

import (
	"github.com/huichen/ocrmatch/core"
	"github.com/huichen/ocrmatch/refdata"
	"github.com/huichen/ocrmatch/types"
	"github.com/pkg/errors"
)

// 从参考数据快照建立索引，索引摘要取快照的摘要
func BuildIndex(snapshot *refdata.Snapshot, normalize types.NormalizeConfig, ngramSize int) (*types.InvertedIndex, error) {
	if snapshot == nil {
		return nil, errors.New("nil snapshot")
	}
	normalizer, err := core.NewNormalizer(normalize)
	if err != nil {
		return nil, err
	}
	index := core.BuildIndex(snapshot.Rows, normalizer, ngramSize)
	index.Digest = snapshot.Digest
	index.Meta.Columns = snapshot.Columns
	index.Meta.Sources = append([]string(nil), snapshot.Sources...)
	return index, nil
}
