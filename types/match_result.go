package types

type Strategy string

const (
	StrategyExact  Strategy = "exact"
	StrategyAnchor Strategy = "anchor"
	StrategyRecall Strategy = "recall"
)

// 一份文档的匹配结果
type MatchResult struct {
	// 命中的策略
	Strategy Strategy

	// 按总分从大到小排列的前K个候选
	Candidates []ScoredCandidate

	// 召回阶段未经截断的候选数，exact和anchor策略下为命中行数
	RecallCount int
}
