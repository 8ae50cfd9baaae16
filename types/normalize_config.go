package types

// 一条正则替换规则。Flags支持i、m、s，g总是隐含
type ReplaceRule struct {
	Pattern string `yaml:"pattern" validate:"required"`
	Flags   string `yaml:"flags"`
	Replace string `yaml:"replace"`
}

// 归一化配置，执行顺序固定为：替换 -> 折叠 -> 删除
type NormalizeConfig struct {
	Replacements []ReplaceRule `yaml:"replacements" validate:"dive"`

	// 键中的每个字符都折叠为值
	Maps map[string]string `yaml:"maps"`

	// 删除列表，每项先按正则解释，非法时按字面删除
	Strip []string `yaml:"strip"`

	// 折叠阶段额外做全角转半角和NFKC
	FoldWidth bool `yaml:"fold_width"`
}

func DefaultNormalizeConfig() NormalizeConfig {
	return NormalizeConfig{
		Replacements: []ReplaceRule{
			{Pattern: `\s+`, Replace: ""},
		},
		Maps: map[string]string{
			"（": "(",
			"）": ")",
		},
		Strip:     []string{`[·•]`},
		FoldWidth: true,
	}
}
