package core

import (
	"testing"

	"github.com/huichen/ocrmatch/types"
	"github.com/stretchr/testify/assert"
)

func candidate(score, field1Score, field2Score float64) types.ScoredCandidate {
	return types.ScoredCandidate{Score: score, Field1Score: field1Score, Field2Score: field2Score}
}

func TestBucketize(t *testing.T) {
	config := types.DefaultThresholdConfig()

	tests := []struct {
		name       string
		query1     string
		query2     string
		candidates []types.ScoredCandidate
		outcome    types.Outcome
		reason     types.Reason
	}{
		{"both empty", "", "", nil, types.OutcomeReject, types.ReasonBothEmpty},
		{"field1 empty", "", "新荣", []types.ScoredCandidate{candidate(1, 1, 1)}, types.OutcomeReject, types.ReasonField1Empty},
		{"field2 empty", "河南", "", []types.ScoredCandidate{candidate(1, 1, 1)}, types.OutcomeReject, types.ReasonField2Empty},
		{"no candidates", "河南", "新荣", nil, types.OutcomeReject, types.ReasonNoCandidates},
		{"field2 below floor", "河南", "新荣", []types.ScoredCandidate{candidate(0.6, 0.9, 0.3)},
			types.OutcomeReject, types.ReasonField2TooLow},
		{"primary hard floor", "河南", "新荣", []types.ScoredCandidate{candidate(0.75, 0.50, 1.0)},
			types.OutcomeReject, types.ReasonPrimaryFloor},
		{"field1 below floor", "河南", "新荣", []types.ScoredCandidate{candidate(0.645, 0.59, 0.70)},
			types.OutcomeReject, types.ReasonField1TooLow},
		{"high confidence bypass", "河南", "新荣",
			[]types.ScoredCandidate{candidate(0.90, 0.85, 0.80), candidate(0.89, 0.85, 0.78)},
			types.OutcomeAccept, types.ReasonNone},
		{"ambiguous top two", "河南", "新荣",
			[]types.ScoredCandidate{candidate(0.80, 0.82, 0.78), candidate(0.79, 0.80, 0.78)},
			types.OutcomeReview, types.ReasonAmbiguousTop},
		{"weighted accept", "河南", "新荣", []types.ScoredCandidate{candidate(0.80, 0.82, 0.78)},
			types.OutcomeAccept, types.ReasonNone},
		{"weighted accept with clear second", "河南", "新荣",
			[]types.ScoredCandidate{candidate(0.80, 0.82, 0.78), candidate(0.70, 0.70, 0.70)},
			types.OutcomeAccept, types.ReasonNone},
		{"borderline", "河南", "新荣", []types.ScoredCandidate{candidate(0.675, 0.70, 0.65)},
			types.OutcomeReview, types.ReasonBorderline},
		{"score too low", "河南", "新荣", []types.ScoredCandidate{candidate(0.615, 0.62, 0.61)},
			types.OutcomeReject, types.ReasonScoreTooLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Bucketize(tt.query1, tt.query2, tt.candidates, config)
			assert.Equal(t, tt.outcome, outcome.Outcome)
			assert.Equal(t, tt.reason, outcome.Reason)
		})
	}
}

func TestBucketizeHardFloorIgnoresRelaxation(t *testing.T) {
	// 字段2满分使动态下限放宽到0.5，字段1仍受0.58硬下限约束
	top := candidate(0.79, 0.57, 1.0)
	assert.InDelta(t, 0.5, DynamicFloor(top, 0.6), 1e-9)

	outcome := Bucketize("河南", "新荣", []types.ScoredCandidate{top}, types.DefaultThresholdConfig())
	assert.Equal(t, types.BucketOutcome{Outcome: types.OutcomeReject, Reason: types.ReasonPrimaryFloor}, outcome)
}

func TestDynamicFloor(t *testing.T) {
	assert.InDelta(t, 0.6, DynamicFloor(candidate(0, 0.8, 0.7), 0.6), 1e-9)
	assert.InDelta(t, 0.55, DynamicFloor(candidate(0, 0.9, 0.7), 0.6), 1e-9)
	assert.InDelta(t, 0.55, DynamicFloor(candidate(0, 0.7, 0.9), 0.6), 1e-9)
	assert.InDelta(t, 0.5, DynamicFloor(candidate(0, 1.0, 1.0), 0.6), 1e-9)
	assert.InDelta(t, 0.5, DynamicFloor(candidate(0, 1.0, 1.0), 0.55), 1e-9)
	// 配置的下限低于0.5时不会被抬高
	assert.InDelta(t, 0.45, DynamicFloor(candidate(0, 1.0, 1.0), 0.45), 1e-9)
}

func TestBucketizeCustomThresholds(t *testing.T) {
	config := types.DefaultThresholdConfig()
	config.Weights = [2]float64{0.5, 0.5}
	config.AutoAccept = 0.70

	// 默认权重下为0.685（borderline），等权重下为0.675
	top := candidate(0.675, 0.70, 0.65)
	assert.Equal(t, types.OutcomeReview, Bucketize("河南", "新荣", []types.ScoredCandidate{top}, config).Outcome)

	config.AutoAccept = 0.67
	config.MinReview = 0.60
	assert.Equal(t, types.OutcomeAccept, Bucketize("河南", "新荣", []types.ScoredCandidate{top}, config).Outcome)
}
