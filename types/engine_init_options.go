package types

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	// 默认的抽取协程数
	defaultNumExtractorThreads = runtime.NumCPU()

	// 默认的分片数
	defaultNumShards = 2

	// 默认每个分片的匹配协程数
	defaultNumMatcherThreadsPerShard = runtime.NumCPU() / 2

	// 默认的分桶协程数
	defaultNumBucketizerThreads = 1

	// 默认通道缓冲长度
	defaultBufferLength = runtime.NumCPU()
)

type EngineInitOptions struct {
	Normalize  NormalizeConfig
	Extract    ExtractConfig
	Thresholds ThresholdConfig
	Match      MatchOptions

	// 当前参考数据源的摘要，与索引中的摘要比较
	SourceDigest string

	// 为true时摘要不一致只记警告
	AllowStaleIndex bool

	// 配置文件的sha256，写入每次批量匹配的结果
	ConfigSHA string

	NumExtractorThreads       int
	NumShards                 int
	NumMatcherThreadsPerShard int
	NumBucketizerThreads      int
	BufferLength              int

	// 为nil时不输出日志
	Logger *zap.Logger

	// 为nil时不注册指标
	Registerer prometheus.Registerer
}

// 初始化EngineInitOptions，当用户未设定某个选项的值时用默认值取代
func (options *EngineInitOptions) Init() {
	if options.Thresholds == (ThresholdConfig{}) {
		options.Thresholds = DefaultThresholdConfig()
	}
	if len(options.Extract.Field1Labels) == 0 && len(options.Extract.Field2Labels) == 0 {
		options.Extract = DefaultExtractConfig()
	}
	options.Extract.Init()
	options.Match.Init()

	if options.NumExtractorThreads == 0 {
		options.NumExtractorThreads = defaultNumExtractorThreads
	}
	if options.NumShards == 0 {
		options.NumShards = defaultNumShards
	}
	if options.NumMatcherThreadsPerShard == 0 {
		options.NumMatcherThreadsPerShard = defaultNumMatcherThreadsPerShard
	}
	if options.NumMatcherThreadsPerShard == 0 {
		options.NumMatcherThreadsPerShard = 1
	}
	if options.NumBucketizerThreads == 0 {
		options.NumBucketizerThreads = defaultNumBucketizerThreads
	}
	if options.BufferLength == 0 {
		options.BufferLength = defaultBufferLength
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
}
