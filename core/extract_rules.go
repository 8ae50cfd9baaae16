package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// 标签所在行及其上下文
type lineContext struct {
	index int

	// 去掉首尾空白后的行
	line     string
	prevLine string
	nextLine string

	// 未去空白时的行首缩进（字符数）
	indent     int
	prevIndent int
	nextIndent int

	hasPrev bool
	hasNext bool
}

func newLineContext(lines []string, i int) lineContext {
	ctx := lineContext{
		index:  i,
		line:   strings.TrimSpace(lines[i]),
		indent: indentOf(lines[i]),
	}
	if i > 0 {
		ctx.hasPrev = true
		ctx.prevLine = strings.TrimSpace(lines[i-1])
		ctx.prevIndent = indentOf(lines[i-1])
	}
	if i+1 < len(lines) {
		ctx.hasNext = true
		ctx.nextLine = strings.TrimSpace(lines[i+1])
		ctx.nextIndent = indentOf(lines[i+1])
	}
	return ctx
}

func indentOf(line string) int {
	indent := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		indent++
	}
	return indent
}

// 向上查找的触发条件，任一成立即向上看一行
type lookUpTrigger func(extractor *Extractor, ctx lineContext, value string) bool

var lookUpTriggers = []lookUpTrigger{
	prevLineDeepIndented,
	valueTooShort,
	entitySuffixOnPrevLine,
}

// 上一行缩进很深，通常是表格列错位把值挤到了上一行
func prevLineDeepIndented(extractor *Extractor, ctx lineContext, value string) bool {
	return ctx.hasPrev && ctx.prevIndent >= extractor.config.DeepIndent
}

func valueTooShort(extractor *Extractor, ctx lineContext, value string) bool {
	return utf8.RuneCountInString(value) < extractor.config.MinValueLength
}

// 值里没有实体后缀而上一行有
func entitySuffixOnPrevLine(extractor *Extractor, ctx lineContext, value string) bool {
	return !containsAny(value, extractor.config.EntitySuffixes) &&
		containsAny(ctx.prevLine, extractor.config.EntitySuffixes)
}

// 待拼接的相邻行
type neighborLine struct {
	text   string
	indent int
}

// 拼接上一行的条件，必须全部成立
type spliceGate func(extractor *Extractor, neighbor neighborLine, otherLabels []string) bool

var spliceUpGates = []spliceGate{
	notEmpty,
	noOtherLabel,
	noDocumentNoiseLabel,
	entityKeywordOrDeepIndent,
}

// 拼接下一行的条件，必须全部成立
var spliceDownGates = []spliceGate{
	continuationIndented,
	notEmpty,
	noOtherLabel,
	noDocumentNoiseLabel,
	notStartingWithNoiseWord,
	notEndingWithEntitySuffix,
}

func notEmpty(extractor *Extractor, neighbor neighborLine, otherLabels []string) bool {
	return neighbor.text != ""
}

func noOtherLabel(extractor *Extractor, neighbor neighborLine, otherLabels []string) bool {
	return !containsAny(neighbor.text, otherLabels)
}

func noDocumentNoiseLabel(extractor *Extractor, neighbor neighborLine, otherLabels []string) bool {
	return !containsAny(neighbor.text, extractor.config.DocumentNoiseLabels)
}

func entityKeywordOrDeepIndent(extractor *Extractor, neighbor neighborLine, otherLabels []string) bool {
	if endsWithAny(neighbor.text, extractor.config.EntityKeywords) {
		return true
	}
	return neighbor.indent >= extractor.config.DeepIndent &&
		!startsWithAnyRune(neighbor.text, extractor.config.LeadingPunctuation)
}

func continuationIndented(extractor *Extractor, neighbor neighborLine, otherLabels []string) bool {
	return neighbor.indent >= extractor.config.ContinuationIndent
}

func notStartingWithNoiseWord(extractor *Extractor, neighbor neighborLine, otherLabels []string) bool {
	for _, word := range extractor.config.NoiseWords {
		if word != "" && strings.HasPrefix(neighbor.text, word) {
			return false
		}
	}
	return true
}

func notEndingWithEntitySuffix(extractor *Extractor, neighbor neighborLine, otherLabels []string) bool {
	return !endsWithAny(neighbor.text, extractor.config.EntitySuffixes)
}

func passesAll(extractor *Extractor, gates []spliceGate, neighbor neighborLine, otherLabels []string) bool {
	for _, gate := range gates {
		if !gate(extractor, neighbor, otherLabels) {
			return false
		}
	}
	return true
}

// 一行命中至少TableHeaderMinHits个表头关键词时视为表头
func isTableHeader(extractor *Extractor, line string) bool {
	if len(extractor.config.TableHeaderKeywords) == 0 {
		return false
	}
	hits := 0
	for _, keyword := range extractor.config.TableHeaderKeywords {
		if keyword != "" && strings.Contains(line, keyword) {
			hits++
		}
	}
	return hits >= extractor.config.TableHeaderMinHits
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if word != "" && strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func endsWithAny(text string, words []string) bool {
	for _, word := range words {
		if word != "" && strings.HasSuffix(text, word) {
			return true
		}
	}
	return false
}

func startsWithAnyRune(text string, runes string) bool {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return false
	}
	return strings.ContainsRune(runes, r)
}
