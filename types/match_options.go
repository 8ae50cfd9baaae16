package types

type MatchOptions struct {
	// n-gram长度
	NgramSize int `yaml:"ngram_size" validate:"gte=0"`

	// anchor策略中非精确字段的相似度阈值
	AnchorThreshold float64 `yaml:"anchor_threshold" validate:"gte=0,lte=1"`

	// 最多输出的候选数
	TopK int `yaml:"top_k" validate:"gte=0"`

	// 召回候选上限，超过时启用重叠度预过滤
	MaxCandidates int `yaml:"max_candidates" validate:"gte=0"`

	// 预过滤要求的最少共同n-gram数
	MinOverlap int `yaml:"min_overlap" validate:"gte=0"`

	// 字段1比较器中编辑距离相似度的权重
	Field1Weight float64 `yaml:"field1_weight" validate:"gte=0,lte=1"`
}

func (options *MatchOptions) Init() {
	if options.NgramSize == 0 {
		options.NgramSize = 2
	}
	if options.AnchorThreshold == 0 {
		options.AnchorThreshold = 0.6
	}
	if options.TopK == 0 {
		options.TopK = 3
	}
	if options.MaxCandidates == 0 {
		options.MaxCandidates = 5000
	}
	if options.MinOverlap == 0 {
		options.MinOverlap = 2
	}
	if options.Field1Weight == 0 {
		options.Field1Weight = 0.5
	}
}
