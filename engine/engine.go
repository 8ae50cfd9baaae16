package engine

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/huichen/ocrmatch/core"
	"github.com/huichen/ocrmatch/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrNotInitialized = errors.New("engine not initialized")
	ErrStaleIndex     = errors.New("index digest does not match reference data")
)

type Engine struct {
	// 计数器，用来统计有多少文档被匹配等信息
	numMatchRequests    uint64
	numDocumentsMatched uint64
	numDocumentsFailed  uint64

	// 记录初始化参数
	initOptions types.EngineInitOptions
	initialized bool
	closed      bool
	stale       bool

	index     *types.InvertedIndex
	extractor *core.Extractor
	matcher   *core.Matcher
	metrics   *engineMetrics
	logger    *zap.Logger

	// 流水线各阶段的通信通道，匹配器按文档名分片
	extractorChannel  chan extractorRequest
	matcherChannels   []chan matcherRequest
	bucketizerChannel chan bucketizerRequest

	extractorGroup  sync.WaitGroup
	matcherGroup    sync.WaitGroup
	bucketizerGroup sync.WaitGroup

	// 批量匹配持读锁，Close持写锁
	lock sync.RWMutex
}

// 初始化引擎
//
// 索引的摘要必须与options.SourceDigest一致，除非设置了AllowStaleIndex。
// 阈值或归一化配置非法时返回types.ErrInvalidConfig。
func (engine *Engine) Init(index *types.InvertedIndex, options types.EngineInitOptions) error {
	if engine.initialized {
		return errors.New("engine already initialized")
	}
	if index == nil {
		return errors.New("nil index")
	}
	options.Init()
	logger := options.Logger

	if err := options.Thresholds.Validate(); err != nil {
		return err
	}
	normalizer, err := core.NewNormalizer(options.Normalize)
	if err != nil {
		return err
	}
	stale, err := VerifyIndex(index, options.SourceDigest, options.AllowStaleIndex, logger)
	if err != nil {
		return err
	}
	metrics, err := newEngineMetrics(options.Registerer)
	if err != nil {
		return err
	}

	engine.initOptions = options
	engine.index = index
	engine.stale = stale
	engine.logger = logger
	engine.metrics = metrics
	engine.extractor = core.NewExtractor(options.Extract, normalizer)
	engine.matcher = core.NewMatcher(index, options.Match)

	// 启动抽取器
	engine.extractorChannel = make(chan extractorRequest, options.BufferLength)
	for i := 0; i < options.NumExtractorThreads; i++ {
		engine.extractorGroup.Add(1)
		go engine.extractorWorker()
	}

	// 启动匹配器
	engine.matcherChannels = make([]chan matcherRequest, options.NumShards)
	for shard := 0; shard < options.NumShards; shard++ {
		engine.matcherChannels[shard] = make(chan matcherRequest, options.BufferLength)
		for i := 0; i < options.NumMatcherThreadsPerShard; i++ {
			engine.matcherGroup.Add(1)
			go engine.matcherWorker(shard)
		}
	}

	// 启动分桶器
	engine.bucketizerChannel = make(chan bucketizerRequest, options.BufferLength)
	for i := 0; i < options.NumBucketizerThreads; i++ {
		engine.bucketizerGroup.Add(1)
		go engine.bucketizerWorker()
	}

	engine.initialized = true
	logger.Info("engine initialized",
		zap.Int("rows", len(index.Rows)),
		zap.Int("tokens", len(index.Postings)),
		zap.Int("shards", options.NumShards),
		zap.Bool("stale", stale))
	return nil
}

// 校验索引摘要，返回索引是否在容忍下被使用
func VerifyIndex(index *types.InvertedIndex, sourceDigest string, allowStale bool, logger *zap.Logger) (bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch {
	case sourceDigest == "" && !allowStale:
		return false, errors.Wrap(ErrStaleIndex, "no source digest given")
	case sourceDigest == "":
		logger.Warn("index digest not verified", zap.String("index_digest", index.Digest))
		return true, nil
	case sourceDigest != index.Digest && !allowStale:
		return false, errors.Wrapf(ErrStaleIndex, "index %s, source %s", index.Digest, sourceDigest)
	case sourceDigest != index.Digest:
		logger.Warn("using stale index",
			zap.String("index_digest", index.Digest), zap.String("source_digest", sourceDigest))
		return true, nil
	}
	logger.Debug("index digest verified", zap.String("digest", index.Digest))
	return false, nil
}

// 同步匹配一份文档
func (engine *Engine) MatchDocument(doc types.Document) (types.DocumentResult, error) {
	if !engine.initialized {
		return types.DocumentResult{}, ErrNotInitialized
	}
	atomic.AddUint64(&engine.numMatchRequests, 1)
	if doc.Err != nil {
		engine.recordFailure(doc.Name, doc.Err)
		return types.DocumentResult{}, doc.Err
	}

	start := time.Now()
	result := types.DocumentResult{Name: doc.Name}
	err := safely(func() {
		result.Query = engine.extractor.Extract(doc.Text)
		result.Match = engine.matcher.Match(result.Query.Field1, result.Query.Field2)
		result.Bucket = core.Bucketize(result.Query.Field1, result.Query.Field2,
			result.Match.Candidates, engine.initOptions.Thresholds)
	})
	if err != nil {
		engine.recordFailure(doc.Name, err)
		return types.DocumentResult{}, err
	}
	engine.recordResult(result, start)
	return result, nil
}

// 并发匹配一批文档
//
// 单个文档失败只记录在BatchResult.Failures中，不影响其它文档。Results按输入顺序排列。
func (engine *Engine) MatchBatch(docs []types.Document) (*types.BatchResult, error) {
	engine.lock.RLock()
	defer engine.lock.RUnlock()
	if !engine.initialized || engine.closed {
		return nil, ErrNotInitialized
	}

	// 通道容量等于文档数，工作协程写入时不会阻塞
	returnChannel := make(chan documentResponse, len(docs))
	responses := make([]documentResponse, len(docs))
	numPending := 0
	for seq, doc := range docs {
		atomic.AddUint64(&engine.numMatchRequests, 1)
		if doc.Err != nil {
			engine.recordFailure(doc.Name, doc.Err)
			responses[seq] = documentResponse{seq: seq, result: types.DocumentResult{Name: doc.Name}, err: doc.Err}
			continue
		}
		numPending++
		engine.extractorChannel <- extractorRequest{
			seq:           seq,
			doc:           doc,
			start:         time.Now(),
			returnChannel: returnChannel,
		}
	}
	for i := 0; i < numPending; i++ {
		response := <-returnChannel
		responses[response.seq] = response
	}

	batch := &types.BatchResult{
		RunId:       uuid.NewString(),
		ConfigSHA:   engine.initOptions.ConfigSHA,
		IndexDigest: engine.index.Digest,
		Results:     make([]types.DocumentResult, 0, len(docs)),
		Counts:      make(map[types.Outcome]int),
	}
	for _, response := range responses {
		if response.err != nil {
			batch.Failures = append(batch.Failures, types.DocumentFailure{Name: response.result.Name, Err: response.err})
			continue
		}
		batch.Results = append(batch.Results, response.result)
		batch.Counts[response.result.Bucket.Outcome]++
	}

	engine.logger.Info("batch matched",
		zap.String("run_id", batch.RunId),
		zap.Int("documents", len(docs)),
		zap.Int("accept", batch.Counts[types.OutcomeAccept]),
		zap.Int("review", batch.Counts[types.OutcomeReview]),
		zap.Int("reject", batch.Counts[types.OutcomeReject]),
		zap.Int("failed", len(batch.Failures)))
	return batch, nil
}

// 读取文本文件并批量匹配，读不了的文件记为失败
func (engine *Engine) MatchFiles(paths []string) (*types.BatchResult, error) {
	docs := make([]types.Document, len(paths))
	for i, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			docs[i] = types.Document{Name: path, Err: errors.Wrapf(err, "read %s", path)}
			continue
		}
		docs[i] = types.Document{Name: path, Text: string(content)}
	}
	return engine.MatchBatch(docs)
}

func (engine *Engine) recordResult(result types.DocumentResult, start time.Time) {
	atomic.AddUint64(&engine.numDocumentsMatched, 1)
	engine.metrics.observe(result, time.Since(start))
}

func (engine *Engine) recordFailure(name string, err error) {
	atomic.AddUint64(&engine.numDocumentsFailed, 1)
	engine.metrics.failures.Inc()
	engine.logger.Error("document failed", zap.String("document", name), zap.Error(err))
}

// 把panic转成错误
func safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

// 根据文档名的哈希得到分片
func (engine *Engine) getShard(hash uint32) int {
	return int(hash % uint32(engine.initOptions.NumShards))
}

// 索引是否在容忍摘要不一致的情况下被使用
func (engine *Engine) Stale() bool {
	return engine.stale
}

func (engine *Engine) Index() *types.InvertedIndex {
	return engine.index
}

func (engine *Engine) NumMatchRequests() uint64 {
	return atomic.LoadUint64(&engine.numMatchRequests)
}

func (engine *Engine) NumDocumentsMatched() uint64 {
	return atomic.LoadUint64(&engine.numDocumentsMatched)
}

func (engine *Engine) NumDocumentsFailed() uint64 {
	return atomic.LoadUint64(&engine.numDocumentsFailed)
}

// 关闭引擎，等待所有工作协程退出
func (engine *Engine) Close() {
	engine.lock.Lock()
	defer engine.lock.Unlock()
	if !engine.initialized || engine.closed {
		return
	}
	engine.closed = true

	close(engine.extractorChannel)
	engine.extractorGroup.Wait()
	for _, channel := range engine.matcherChannels {
		close(channel)
	}
	engine.matcherGroup.Wait()
	close(engine.bucketizerChannel)
	engine.bucketizerGroup.Wait()
}
