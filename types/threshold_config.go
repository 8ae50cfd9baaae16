package types

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

// 分桶阈值，加载后不再修改
type ThresholdConfig struct {
	// 加权分数达到该值时自动通过
	AutoAccept float64 `yaml:"auto_accept" validate:"gte=0,lte=1"`

	// 单字段相似度下限（可被动态放宽）
	MinFieldSimilarity float64 `yaml:"min_field_similarity" validate:"gte=0,lte=1"`

	// top1与top2总分之差的下限
	MinDelta float64 `yaml:"min_delta" validate:"gte=0,lte=1"`

	// 字段1的硬下限，不参与动态放宽
	PrimaryHardFloor float64 `yaml:"primary_hard_floor" validate:"gte=0,lte=1"`

	// 进入人工审核的最低加权分数
	MinReview float64 `yaml:"min_review" validate:"gte=0,lte=1"`

	// 字段1、字段2的权重，和为1
	Weights [2]float64 `yaml:"weights" validate:"dive,gte=0,lte=1"`
}

func DefaultThresholdConfig() ThresholdConfig {
	return ThresholdConfig{
		AutoAccept:         0.75,
		MinFieldSimilarity: 0.60,
		MinDelta:           0.03,
		PrimaryHardFloor:   0.58,
		MinReview:          0.65,
		Weights:            [2]float64{0.7, 0.3},
	}
}

// 校验取值范围、权重之和以及 PrimaryHardFloor <= MinReview <= AutoAccept
func (c ThresholdConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "thresholds: %v", err)
	}
	if sum := c.Weights[0] + c.Weights[1]; math.Abs(sum-1.0) > 0.001 {
		return errors.Wrapf(ErrInvalidConfig, "thresholds: weights must sum to 1.0, got %.4f", sum)
	}
	if c.PrimaryHardFloor > c.MinReview || c.MinReview > c.AutoAccept {
		return errors.Wrapf(ErrInvalidConfig,
			"thresholds: need primary_hard_floor <= min_review <= auto_accept, got %.2f / %.2f / %.2f",
			c.PrimaryHardFloor, c.MinReview, c.AutoAccept)
	}
	return nil
}
