package core

import (
	"github.com/huichen/ocrmatch/utils"
)

// 以下相似度均按字符（rune）计算，取值范围[0, 1]。
// 两个空串的相似度为1，恰有一个为空时为0。

// 1 - 编辑距离 / 较长串的长度
func LevenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	distance := levenshteinDistance(ra, rb)
	return 1.0 - float64(distance)/float64(utils.MaxInt(len(ra), len(rb)))
}

// 两行滚动数组的编辑距离
func levenshteinDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = utils.MinInt(utils.MinInt(prev[j]+1, curr[j-1]+1), prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// n-gram集合的交集大小 / 并集大小
func JaccardSimilarity(a, b string, n int) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	setA, setB := tokenSet(a, n), tokenSet(b, n)
	intersection := 0
	for token := range setA {
		if _, found := setB[token]; found {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// 最长公共子串长度 / 较长串的长度
//
// 一个串是另一个串截断或扩展后的结果时该值仍然较高。
func LCSRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	return float64(longestCommonSubstring(ra, rb)) / float64(utils.MaxInt(len(ra), len(rb)))
}

func longestCommonSubstring(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	longest := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > longest {
					longest = curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return longest
}

// 通用字段比较器（字段1）：w·编辑距离相似度 + (1-w)·Jaccard
func FieldSimilarity(query, field string, w float64) float64 {
	if query == field {
		return 1.0
	}
	return w*LevenshteinSimilarity(query, field) + (1-w)*JaccardSimilarity(query, field, DefaultNgramSize)
}

// 字段2比较器：降低长度差异的影响，奖励子串包含
func ProjectFieldSimilarity(query, field string) float64 {
	if query == field {
		return 1.0
	}
	return 0.2*LevenshteinSimilarity(query, field) +
		0.4*JaccardSimilarity(query, field, DefaultNgramSize) +
		0.4*LCSRatio(query, field)
}
