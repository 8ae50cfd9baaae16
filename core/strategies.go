package core

import (
	"sort"

	"github.com/huichen/ocrmatch/types"
)

// 两个归一化字段都与查询完全相同
func exactStrategy(matcher *Matcher, query1, query2 string) (types.MatchResult, bool) {
	if query1 == "" || query2 == "" {
		return types.MatchResult{}, false
	}
	for _, row := range matcher.indexer.Rows() {
		if row.NormField1 == query1 && row.NormField2 == query2 {
			return types.MatchResult{
				Strategy: types.StrategyExact,
				Candidates: []types.ScoredCandidate{{
					Row:         row,
					Score:       1.0,
					Field1Score: 1.0,
					Field2Score: 1.0,
				}},
				RecallCount: 1,
			}, true
		}
	}
	return types.MatchResult{}, false
}

// 一个字段完全相同，另一个字段的相似度达到阈值
func anchorStrategy(matcher *Matcher, query1, query2 string) (types.MatchResult, bool) {
	threshold := matcher.options.AnchorThreshold
	var candidates types.ScoredCandidates
	for _, row := range matcher.indexer.Rows() {
		switch {
		case query1 != "" && row.NormField1 == query1:
			field2Score := ProjectFieldSimilarity(query2, row.NormField2)
			if field2Score >= threshold {
				candidates = append(candidates, types.ScoredCandidate{
					Row:         row,
					Score:       (1.0 + field2Score) / 2,
					Field1Score: 1.0,
					Field2Score: field2Score,
				})
			}
		case query2 != "" && row.NormField2 == query2:
			field1Score := FieldSimilarity(query1, row.NormField1, matcher.options.Field1Weight)
			if field1Score >= threshold {
				candidates = append(candidates, types.ScoredCandidate{
					Row:         row,
					Score:       (field1Score + 1.0) / 2,
					Field1Score: field1Score,
					Field2Score: 1.0,
				})
			}
		}
	}
	if len(candidates) == 0 {
		return types.MatchResult{}, false
	}
	return types.MatchResult{
		Strategy:    types.StrategyAnchor,
		Candidates:  matcher.ranker.Sort(candidates),
		RecallCount: len(candidates),
	}, true
}

// 用两个字段n-gram的并集从反向索引召回，再打分排序
//
// 召回数超过MaxCandidates时，先只保留共有关键词数不少于MinOverlap的行，
// 按共有关键词数从多到少取前MaxCandidates个，再计算相似度。
func recallStrategy(matcher *Matcher, query1, query2 string) (types.MatchResult, bool) {
	n := matcher.indexer.NgramSize()
	tokens := append(Tokenize(query1, n), Tokenize(query2, n)...)
	overlaps := matcher.indexer.Lookup(tokens)

	result := types.MatchResult{
		Strategy:    types.StrategyRecall,
		Candidates:  []types.ScoredCandidate{},
		RecallCount: len(overlaps),
	}
	if len(overlaps) == 0 {
		return result, true
	}
	if len(overlaps) > matcher.options.MaxCandidates {
		overlaps = prefilterByOverlap(overlaps, matcher.options.MinOverlap, matcher.options.MaxCandidates)
	}

	rows := make([]types.ReferenceRow, 0, len(overlaps))
	for _, o := range overlaps {
		if row, found := matcher.indexer.Row(o.docId); found {
			rows = append(rows, row)
		}
	}
	result.Candidates = matcher.ranker.Rank(query1, query2, rows)
	return result, true
}

func prefilterByOverlap(overlaps []overlap, minOverlap, maxCandidates int) []overlap {
	kept := make([]overlap, 0, maxCandidates)
	for _, o := range overlaps {
		if o.count >= minOverlap {
			kept = append(kept, o)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].count > kept[j].count
	})
	if len(kept) > maxCandidates {
		kept = kept[:maxCandidates]
	}
	return kept
}
