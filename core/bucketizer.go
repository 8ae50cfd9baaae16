package core

import (
	"math"

	"github.com/huichen/ocrmatch/types"
)

const (
	// 最高字段分超过该值时放宽字段下限
	dynamicFloorTrigger = 0.8

	// 放宽幅度的上限以及放宽后的最低值
	maxFloorRelaxation = 0.1
	minRelaxedFloor    = 0.5

	// 高置信度直接通过的条件
	highConfidenceScore  = 0.85
	highConfidenceField1 = 0.80
	highConfidenceField2 = 0.75
)

// 分桶规则的输入，所有规则看到的是同一份数据
type bucketInput struct {
	query1     string
	query2     string
	candidates []types.ScoredCandidate
	config     types.ThresholdConfig

	// 以下只在有候选时有效
	top      types.ScoredCandidate
	floor    float64
	delta    float64
	weighted float64
}

// 返回false表示本规则不做决定
type bucketRule func(in bucketInput) (types.BucketOutcome, bool)

// 顺序不可调整：先确认候选可信，再决定置信度等级
var bucketRules = []bucketRule{
	rejectEmptyFields,
	rejectNoCandidates,
	rejectField2BelowFloor,
	rejectPrimaryHardFloor,
	rejectField1BelowFloor,
	acceptHighConfidence,
	reviewAmbiguousTopTwo,
	acceptWeightedScore,
	reviewBorderline,
}

// 根据排好序的候选给出accept、review或reject
func Bucketize(query1, query2 string, candidates []types.ScoredCandidate, config types.ThresholdConfig) types.BucketOutcome {
	in := bucketInput{
		query1:     query1,
		query2:     query2,
		candidates: candidates,
		config:     config,
	}
	if len(candidates) > 0 {
		in.top = candidates[0]
		in.floor = DynamicFloor(in.top, config.MinFieldSimilarity)
		in.delta = 1.0
		if len(candidates) > 1 {
			in.delta = candidates[0].Score - candidates[1].Score
		}
		in.weighted = config.Weights[0]*in.top.Field1Score + config.Weights[1]*in.top.Field2Score
	}

	for _, rule := range bucketRules {
		if outcome, decided := rule(in); decided {
			return outcome
		}
	}
	return reject(types.ReasonScoreTooLow)
}

// 动态下限：最高字段分超过0.8时按超出部分的一半放宽，最多放宽0.1，且不低于0.5
//
// 配置的下限本身低于0.5时不会被抬高。
func DynamicFloor(top types.ScoredCandidate, base float64) float64 {
	maxScore := math.Max(top.Field1Score, top.Field2Score)
	if maxScore <= dynamicFloorTrigger {
		return base
	}
	relaxed := base - math.Min(maxFloorRelaxation, (maxScore-dynamicFloorTrigger)*0.5)
	if relaxed < minRelaxedFloor {
		relaxed = math.Min(base, minRelaxedFloor)
	}
	return relaxed
}

func reject(reason types.Reason) types.BucketOutcome {
	return types.BucketOutcome{Outcome: types.OutcomeReject, Reason: reason}
}

func review(reason types.Reason) types.BucketOutcome {
	return types.BucketOutcome{Outcome: types.OutcomeReview, Reason: reason}
}

func accept() types.BucketOutcome {
	return types.BucketOutcome{Outcome: types.OutcomeAccept, Reason: types.ReasonNone}
}

func rejectEmptyFields(in bucketInput) (types.BucketOutcome, bool) {
	switch {
	case in.query1 == "" && in.query2 == "":
		return reject(types.ReasonBothEmpty), true
	case in.query1 == "":
		return reject(types.ReasonField1Empty), true
	case in.query2 == "":
		return reject(types.ReasonField2Empty), true
	}
	return types.BucketOutcome{}, false
}

func rejectNoCandidates(in bucketInput) (types.BucketOutcome, bool) {
	if len(in.candidates) == 0 {
		return reject(types.ReasonNoCandidates), true
	}
	return types.BucketOutcome{}, false
}

func rejectField2BelowFloor(in bucketInput) (types.BucketOutcome, bool) {
	if in.top.Field2Score < in.floor {
		return reject(types.ReasonField2TooLow), true
	}
	return types.BucketOutcome{}, false
}

// 字段1近似主键，硬下限不随动态下限放宽
func rejectPrimaryHardFloor(in bucketInput) (types.BucketOutcome, bool) {
	if in.top.Field1Score < in.config.PrimaryHardFloor {
		return reject(types.ReasonPrimaryFloor), true
	}
	return types.BucketOutcome{}, false
}

func rejectField1BelowFloor(in bucketInput) (types.BucketOutcome, bool) {
	if in.top.Field1Score < in.floor {
		return reject(types.ReasonField1TooLow), true
	}
	return types.BucketOutcome{}, false
}

// 跳过top1/top2差值检查
func acceptHighConfidence(in bucketInput) (types.BucketOutcome, bool) {
	if in.top.Score >= highConfidenceScore &&
		in.top.Field1Score >= highConfidenceField1 &&
		in.top.Field2Score >= highConfidenceField2 {
		return accept(), true
	}
	return types.BucketOutcome{}, false
}

func reviewAmbiguousTopTwo(in bucketInput) (types.BucketOutcome, bool) {
	if in.delta < in.config.MinDelta {
		return review(types.ReasonAmbiguousTop), true
	}
	return types.BucketOutcome{}, false
}

func acceptWeightedScore(in bucketInput) (types.BucketOutcome, bool) {
	if in.weighted >= in.config.AutoAccept &&
		in.top.Field1Score >= in.floor &&
		in.top.Field2Score >= in.floor &&
		in.delta >= in.config.MinDelta {
		return accept(), true
	}
	return types.BucketOutcome{}, false
}

func reviewBorderline(in bucketInput) (types.BucketOutcome, bool) {
	if in.weighted >= in.config.MinReview && in.weighted < in.config.AutoAccept {
		return review(types.ReasonBorderline), true
	}
	return types.BucketOutcome{}, false
}
