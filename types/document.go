package types

// 待匹配的一份OCR文本
type Document struct {
	Name string

	// 保留每行行首空白的纯文本
	Text string

	// 读取失败时不为空，该文档会被记为失败并跳过
	Err error
}

type DocumentResult struct {
	Name   string
	Query  ExtractedQuery
	Match  MatchResult
	Bucket BucketOutcome
}

type DocumentFailure struct {
	Name string
	Err  error
}

// 一次批量匹配的输出
type BatchResult struct {
	RunId       string
	ConfigSHA   string
	IndexDigest string

	// 按输入顺序排列，不含失败的文档
	Results  []DocumentResult
	Failures []DocumentFailure

	// 各类结果的数量
	Counts map[Outcome]int
}
