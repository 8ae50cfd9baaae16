package core

import (
	"sort"

	"github.com/huichen/ocrmatch/types"
	"github.com/huichen/ocrmatch/utils"
)

type Ranker struct {
	options types.MatchOptions
}

func NewRanker(options types.MatchOptions) *Ranker {
	options.Init()
	return &Ranker{options: options}
}

// 给一行打分：字段1用通用比较器，字段2用工程名称比较器，总分取两者平均
func (ranker *Ranker) Score(query1, query2 string, row types.ReferenceRow) types.ScoredCandidate {
	field1Score := FieldSimilarity(query1, row.NormField1, ranker.options.Field1Weight)
	field2Score := ProjectFieldSimilarity(query2, row.NormField2)
	return types.ScoredCandidate{
		Row:         row,
		Score:       (field1Score + field2Score) / 2,
		Field1Score: field1Score,
		Field2Score: field2Score,
	}
}

// 给候选行打分并排序，返回前TopK个
func (ranker *Ranker) Rank(query1, query2 string, rows []types.ReferenceRow) []types.ScoredCandidate {
	candidates := make(types.ScoredCandidates, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, ranker.Score(query1, query2, row))
	}
	return ranker.Sort(candidates)
}

// 按总分从大到小稳定排序后截断，分数相同的保持输入顺序
func (ranker *Ranker) Sort(candidates types.ScoredCandidates) []types.ScoredCandidate {
	sort.Stable(sort.Reverse(candidates))
	end := utils.MinInt(ranker.options.TopK, len(candidates))
	return candidates[:end]
}
