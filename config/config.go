package config

import (
	"os"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/huichen/ocrmatch/core"
	"github.com/huichen/ocrmatch/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// 超过该长度（字符数）的别名视为误配置并丢弃
const maxAliasLength = 50

var validate = validator.New()

// 完整配置
type Config struct {
	Version    string                `yaml:"version"`
	Normalize  types.NormalizeConfig `yaml:"normalize"`
	Extract    types.ExtractConfig   `yaml:"extract"`
	Columns    types.ColumnAliases   `yaml:"columns"`
	Thresholds types.ThresholdConfig `yaml:"thresholds"`
	Match      types.MatchOptions    `yaml:"match"`

	// 配置文件内容的sha256，Parse时计算
	SHA string `yaml:"-"`
}

// 文件中的各段，缺失的段使用默认值
type fileConfig struct {
	Version    string                 `yaml:"version"`
	Normalize  *types.NormalizeConfig `yaml:"normalize"`
	Extract    *types.ExtractConfig   `yaml:"extract"`
	Columns    *types.ColumnAliases   `yaml:"columns"`
	Thresholds *types.ThresholdConfig `yaml:"thresholds"`
	Match      *types.MatchOptions    `yaml:"match"`
}

func Default() *Config {
	config := &Config{
		Normalize:  types.DefaultNormalizeConfig(),
		Extract:    types.DefaultExtractConfig(),
		Columns:    types.DefaultColumnAliases(),
		Thresholds: types.DefaultThresholdConfig(),
	}
	config.Match.Init()
	return config
}

func Load(path string, logger *zap.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	config, err := Parse(data, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return config, nil
}

// 解析YAML配置，补默认值、清理别名并校验。任何校验失败都返回ErrInvalidConfig。
//
// extract、columns、thresholds、match段中未出现的键保留默认值；normalize段出现时整体替换默认值。
func Parse(data []byte, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := Default()
	file := fileConfig{
		Extract:    &defaults.Extract,
		Columns:    &defaults.Columns,
		Thresholds: &defaults.Thresholds,
		Match:      &defaults.Match,
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidConfig, "yaml: %v", err)
	}

	config := Default()
	config.Version = file.Version
	config.SHA = core.ComputeDigest(data)
	if file.Normalize != nil {
		config.Normalize = *file.Normalize
	}
	if file.Extract != nil {
		config.Extract = *file.Extract
	}
	if file.Columns != nil {
		config.Columns = *file.Columns
	}
	if file.Thresholds != nil {
		config.Thresholds = *file.Thresholds
	}
	if file.Match != nil {
		config.Match = *file.Match
	}
	config.ApplyDefaults()
	config.Sanitize(logger)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *Config) ApplyDefaults() {
	config.Extract.Init()
	config.Match.Init()
}

// 丢弃过长的别名
func (config *Config) Sanitize(logger *zap.Logger) {
	config.Extract.Field1Labels = dropLongAliases(config.Extract.Field1Labels, "extract.field1_labels", logger)
	config.Extract.Field2Labels = dropLongAliases(config.Extract.Field2Labels, "extract.field2_labels", logger)
	config.Columns.Field1 = dropLongAliases(config.Columns.Field1, "columns.field1", logger)
	config.Columns.Field2 = dropLongAliases(config.Columns.Field2, "columns.field2", logger)
	config.Columns.Order = dropLongAliases(config.Columns.Order, "columns.order", logger)
}

func dropLongAliases(aliases []string, section string, logger *zap.Logger) []string {
	kept := aliases[:0:0]
	for _, alias := range aliases {
		if utf8.RuneCountInString(alias) > maxAliasLength {
			logger.Warn("drop overlong alias", zap.String("section", section), zap.Int("length", utf8.RuneCountInString(alias)))
			continue
		}
		kept = append(kept, alias)
	}
	return kept
}

func (config *Config) Validate() error {
	for name, section := range map[string]interface{}{
		"normalize": config.Normalize,
		"extract":   config.Extract,
		"columns":   config.Columns,
		"match":     config.Match,
	} {
		if err := validate.Struct(section); err != nil {
			return errors.Wrapf(types.ErrInvalidConfig, "%s: %v", name, err)
		}
	}
	if err := config.Thresholds.Validate(); err != nil {
		return err
	}
	if _, err := core.NewNormalizer(config.Normalize); err != nil {
		return err
	}
	return nil
}

// 转换成引擎初始化参数
func (config *Config) EngineOptions() types.EngineInitOptions {
	return types.EngineInitOptions{
		Normalize:  config.Normalize,
		Extract:    config.Extract,
		Thresholds: config.Thresholds,
		Match:      config.Match,
		ConfigSHA:  config.SHA,
	}
}
