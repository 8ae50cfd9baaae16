package types

// 字段抽取配置
type ExtractConfig struct {
	// 字段标签的别名
	Field1Labels []string `yaml:"field1_labels" validate:"required,min=1,dive,required"`
	Field2Labels []string `yaml:"field2_labels" validate:"required,min=1,dive,required"`

	// 出现这些词时在该处截断取值
	NoiseWords []string `yaml:"noise_words"`

	// 文档中其它字段的标签，例如"订单号"、"日期"，这些行不会被拼接
	DocumentNoiseLabels []string `yaml:"document_noise_labels"`

	// 表头关键词，一行命中至少TableHeaderMinHits个时视为表头
	TableHeaderKeywords []string `yaml:"table_header_keywords"`
	TableHeaderMinHits  int      `yaml:"table_header_min_hits" validate:"gte=0"`

	// 字段2在最后一个锚点词处截止
	Anchors []string `yaml:"anchors"`

	// 实体后缀，例如"公司"
	EntitySuffixes []string `yaml:"entity_suffixes"`

	// 实体或工程关键词，上一行以这些词结尾时可以拼接
	EntityKeywords []string `yaml:"entity_keywords"`

	// 深缩进的上一行若以这些字符开头则不拼接
	LeadingPunctuation string `yaml:"leading_punctuation"`

	// 上一行缩进达到该值时视为表格列错位
	DeepIndent int `yaml:"deep_indent" validate:"gte=0"`

	// 下一行缩进达到该值时视为续行
	ContinuationIndent int `yaml:"continuation_indent" validate:"gte=0"`

	// 取值短于该长度（按字符计）时向上查找
	MinValueLength int `yaml:"min_value_length" validate:"gte=0"`
}

func DefaultExtractConfig() ExtractConfig {
	options := ExtractConfig{
		Field1Labels: []string{"供应单位名称", "供货单位名称", "供应单位", "供货单位", "供应商"},
		Field2Labels: []string{"单体工程名称", "工程名称", "项目名称"},
		NoiseWords:   []string{"联系人", "联系电话", "电话", "地址", "签收"},
		DocumentNoiseLabels: []string{
			"订单号", "订号", "日期", "编号", "收货单位", "送货单号",
		},
		TableHeaderKeywords: []string{"序号", "物资名称", "规格型号", "单位", "数量", "备注"},
	}
	options.Init()
	return options
}

// 将零值常量设为默认值
func (options *ExtractConfig) Init() {
	if options.TableHeaderMinHits == 0 {
		options.TableHeaderMinHits = 2
	}
	if options.EntitySuffixes == nil {
		options.EntitySuffixes = []string{"公司", "有限", "集团"}
	}
	if options.EntityKeywords == nil {
		options.EntityKeywords = []string{"公司", "有限", "集团", "工程", "项目", "线路", "站", "小区", "改造"}
	}
	if options.LeadingPunctuation == "" {
		options.LeadingPunctuation = ":：、，。；"
	}
	if options.DeepIndent == 0 {
		options.DeepIndent = 60
	}
	if options.ContinuationIndent == 0 {
		options.ContinuationIndent = 20
	}
	if options.MinValueLength == 0 {
		options.MinValueLength = 5
	}
}
