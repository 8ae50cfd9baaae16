package types

// 抽取警告
const (
	WarnEmptyField1 = "EXTRACT_EMPTY_SUPPLIER"
	WarnEmptyField2 = "EXTRACT_EMPTY_PROJECT"
)

// 从一份OCR文本中抽取的查询，两个字段都已归一化
type ExtractedQuery struct {
	Field1   string
	Field2   string
	Warnings []string
}

// 打分后的候选行
type ScoredCandidate struct {
	Row ReferenceRow

	// 总分，两个字段分数的平均值
	Score float64

	Field1Score float64
	Field2Score float64
}

// 为了方便排序
type ScoredCandidates []ScoredCandidate

func (cands ScoredCandidates) Len() int {
	return len(cands)
}

func (cands ScoredCandidates) Swap(i, j int) {
	cands[i], cands[j] = cands[j], cands[i]
}

func (cands ScoredCandidates) Less(i, j int) bool {
	return cands[i].Score < cands[j].Score
}
