package core

import (
	"testing"

	"github.com/huichen/ocrmatch/types"
	"github.com/huichen/ocrmatch/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(options types.MatchOptions) *Matcher {
	index := BuildIndex(newTestRows(
		"河南宏凯建设有限公司", "新荣TOD项目",
		"河南宏凯建设有限公司", "新荣TOD项目一期",
		"北京物流集团", "朝阳站改造",
	), nil, 2)
	return NewMatcher(index, options)
}

func TestExactMatchWins(t *testing.T) {
	matcher := newTestMatcher(types.MatchOptions{})

	result := matcher.Match("河南宏凯建设有限公司", "新荣TOD项目")
	assert.Equal(t, types.StrategyExact, result.Strategy)
	utils.Expect(t, "[1 1000 1000 1000] ", candidatesToString(result.Candidates))
}

func TestAnchorMatch(t *testing.T) {
	matcher := newTestMatcher(types.MatchOptions{})

	result := matcher.Match("河南宏凯建设有限公司", "新荣TOD项目二期")
	require.Equal(t, types.StrategyAnchor, result.Strategy)
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, 2, result.RecallCount)
	assert.Equal(t, uint64(1), result.Candidates[0].Row.Id)
	assert.Equal(t, uint64(2), result.Candidates[1].Row.Id)
	for _, c := range result.Candidates {
		assert.Equal(t, 1.0, c.Field1Score)
		assert.GreaterOrEqual(t, c.Field2Score, 0.6)
		assert.InDelta(t, (c.Field1Score+c.Field2Score)/2, c.Score, 1e-9)
	}

	// 字段2完全相同，字段1用通用比较器
	result = matcher.Match("北京物流集团公司", "朝阳站改造")
	require.Equal(t, types.StrategyAnchor, result.Strategy)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, 1.0, result.Candidates[0].Field2Score)
	assert.InDelta(t, FieldSimilarity("北京物流集团公司", "北京物流集团", 0.5), result.Candidates[0].Field1Score, 1e-9)

	// 另一字段相似度不够时交给召回
	result = matcher.Match("河南宏凯建设有限公司", "朝阳")
	assert.Equal(t, types.StrategyRecall, result.Strategy)
}

func TestRecallMatch(t *testing.T) {
	matcher := newTestMatcher(types.MatchOptions{})

	result := matcher.Match("河南宏凯建设公司", "新荣项目")
	require.Equal(t, types.StrategyRecall, result.Strategy)
	assert.Equal(t, 2, result.RecallCount)
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, uint64(1), result.Candidates[0].Row.Id)
	assert.GreaterOrEqual(t, result.Candidates[0].Score, result.Candidates[1].Score)
	for _, c := range result.Candidates {
		assert.InDelta(t, (c.Field1Score+c.Field2Score)/2, c.Score, 1e-9)
	}
}

func TestRecallNoMatch(t *testing.T) {
	matcher := newTestMatcher(types.MatchOptions{})

	for _, query := range [][2]string{{"", ""}, {"上海", "浦东"}, {"", "朝阳站改造二期"}} {
		result := matcher.Match(query[0], query[1])
		assert.Equal(t, types.StrategyRecall, result.Strategy, "query %v", query)
		assert.NotNil(t, result.Candidates)
	}
	result := matcher.Match("上海", "浦东")
	assert.Empty(t, result.Candidates)
	assert.Equal(t, 0, result.RecallCount)
}

func TestRecallTopK(t *testing.T) {
	rows := newTestRows()
	for i := 0; i < 5; i++ {
		rows = append(rows, types.ReferenceRow{Field1: "河南宏凯建设有限公司", Field2: "新荣项目"})
	}
	matcher := NewMatcher(BuildIndex(rows, nil, 2), types.MatchOptions{})

	result := matcher.Match("河南宏凯建设公司", "新荣项目部")
	require.Equal(t, types.StrategyRecall, result.Strategy)
	assert.Equal(t, 5, result.RecallCount)
	// 分数相同，保持行顺序
	utils.Expect(t, "1 2 3 ", idsToString(result.Candidates))
}

func TestRecallPrefilter(t *testing.T) {
	index := BuildIndex(newTestRows(
		"河南物流", "x",
		"河南宏凯", "y",
		"河南宏凯建设", "z",
	), nil, 2)
	matcher := NewMatcher(index, types.MatchOptions{MaxCandidates: 1, MinOverlap: 2})

	result := matcher.Match("河南宏凯", "")
	require.Equal(t, types.StrategyRecall, result.Strategy)
	assert.Equal(t, 3, result.RecallCount)
	utils.Expect(t, "2 ", idsToString(result.Candidates))

	overlaps := []overlap{{1, 1}, {2, 3}, {3, 2}, {4, 3}}
	utils.Expect(t, "2:3 4:3 3:2 ", overlapsToString(prefilterByOverlap(overlaps, 2, 10)))
	utils.Expect(t, "2:3 ", overlapsToString(prefilterByOverlap(overlaps, 2, 1)))
}
