package core

import (
	"github.com/huichen/ocrmatch/types"
)

// 匹配策略：返回false表示该策略不适用，交给下一个策略
type matchStrategy func(matcher *Matcher, query1, query2 string) (types.MatchResult, bool)

// 按顺序尝试，最后的召回策略总是返回
var defaultStrategies = []matchStrategy{
	exactStrategy,
	anchorStrategy,
	recallStrategy,
}

// 在一份只读索引上匹配查询，可以在多个协程中同时使用
type Matcher struct {
	indexer    *Indexer
	ranker     *Ranker
	options    types.MatchOptions
	strategies []matchStrategy
}

func NewMatcher(index *types.InvertedIndex, options types.MatchOptions) *Matcher {
	options.Init()
	return &Matcher{
		indexer:    NewIndexer(index),
		ranker:     NewRanker(options),
		options:    options,
		strategies: defaultStrategies,
	}
}

// 依次尝试exact、anchor、召回+排序，第一个命中的策略给出结果
//
// 没有候选时返回召回策略的空列表，不会出错。
func (matcher *Matcher) Match(query1, query2 string) types.MatchResult {
	for _, strategy := range matcher.strategies {
		if result, ok := strategy(matcher, query1, query2); ok {
			return result
		}
	}
	return types.MatchResult{Strategy: types.StrategyRecall, Candidates: []types.ScoredCandidate{}}
}
