package types

import (
	"time"
)

const IndexVersion = "1.0"

// 反向索引，由一份参考数据快照一次性建立，之后只读
type InvertedIndex struct {
	// 参考数据源字节的摘要，见core.ComputeDigest
	Digest string

	// 全部行，按Id升序排列，Rows[i].Id == i+1
	Rows []ReferenceRow

	// 关键词 -> 行Id列表（postings），按Id从小到大排序且不重复
	Postings map[string][]uint64

	Meta IndexMeta
}

type IndexMeta struct {
	Version string
	BuiltAt time.Time

	// n-gram长度
	NgramSize int

	TotalRows    int
	UniqueTokens int

	// 实际命中的列名：字段1、字段2、订单号（可能为空）
	Columns ResolvedColumns

	// 参与建立索引的源文件，按路径排序
	Sources []string
}

// 按Id取行，Id不存在时返回false
func (index *InvertedIndex) Row(id uint64) (ReferenceRow, bool) {
	if id >= 1 && id <= uint64(len(index.Rows)) && index.Rows[id-1].Id == id {
		return index.Rows[id-1], true
	}
	for _, row := range index.Rows {
		if row.Id == id {
			return row, true
		}
	}
	return ReferenceRow{}, false
}
