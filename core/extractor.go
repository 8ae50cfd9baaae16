package core

import (
	"strings"
	"unicode"

	"github.com/huichen/ocrmatch/types"
)

// 从保留版面的OCR文本中抽取字段1（供应商）和字段2（工程名称）
//
// Extractor创建后只读，可以在多个协程中同时使用。
type Extractor struct {
	config     types.ExtractConfig
	normalizer *Normalizer
}

func NewExtractor(config types.ExtractConfig, normalizer *Normalizer) *Extractor {
	config.Init()
	return &Extractor{config: config, normalizer: normalizer}
}

// 抽取并归一化两个字段。找不到字段时返回空串并记录警告，不会出错。
func (extractor *Extractor) Extract(text string) types.ExtractedQuery {
	lines := splitLines(text)

	field1 := extractor.extractField(lines, extractor.config.Field1Labels, extractor.config.Field2Labels)
	field2 := extractor.extractField(lines, extractor.config.Field2Labels, extractor.config.Field1Labels)
	field2 = trimByAnchors(field2, extractor.config.Anchors)

	query := types.ExtractedQuery{
		Field1:   extractor.normalizer.Normalize(field1),
		Field2:   extractor.normalizer.Normalize(field2),
		Warnings: []string{},
	}
	if query.Field1 == "" {
		query.Warnings = append(query.Warnings, types.WarnEmptyField1)
	}
	if query.Field2 == "" {
		query.Warnings = append(query.Warnings, types.WarnEmptyField2)
	}
	return query
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// 从上到下找第一个带标签且能取到值的行
func (extractor *Extractor) extractField(lines []string, labels, otherLabels []string) string {
	for i := range lines {
		ctx := newLineContext(lines, i)
		label, pos := findLabel(ctx.line, labels)
		if pos < 0 {
			continue
		}

		value := trimSeparators(ctx.line[pos+len(label):])
		value = extractor.lookUp(lines, ctx, value, labels, otherLabels)
		value = extractor.lookDown(ctx, value, labels, otherLabels)
		value = truncateAtNoise(value, extractor.config.NoiseWords)
		value = strings.TrimSpace(value)
		if value != "" {
			return value
		}
	}
	return ""
}

// 在一行中找标签：位置最靠前的优先，位置相同取最长的
func findLabel(line string, labels []string) (string, int) {
	best, bestPos := "", -1
	for _, label := range labels {
		if label == "" {
			continue
		}
		pos := strings.Index(line, label)
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos || (pos == bestPos && len(label) > len(best)) {
			best, bestPos = label, pos
		}
	}
	return best, bestPos
}

func trimSeparators(value string) string {
	return strings.TrimLeftFunc(value, func(r rune) bool {
		return r == ':' || r == '：' || r == '=' || unicode.IsSpace(r)
	})
}

// 向上看一行，必要时把上一行拼到值前面
func (extractor *Extractor) lookUp(lines []string, ctx lineContext, value string, labels, otherLabels []string) string {
	if !ctx.hasPrev {
		return value
	}
	triggered := false
	for _, trigger := range lookUpTriggers {
		if trigger(extractor, ctx, value) {
			triggered = true
			break
		}
	}
	if !triggered {
		return value
	}

	// 上一行只是重复了同一个标签时再往上看一行
	up := ctx.index - 1
	if value == "" && containsAny(ctx.prevLine, labels) {
		if up == 0 {
			return value
		}
		up--
	}

	neighbor := neighborLine{text: strings.TrimSpace(lines[up]), indent: indentOf(lines[up])}
	if !passesAll(extractor, spliceUpGates, neighbor, otherLabels) {
		return value
	}
	if value == "" {
		return neighbor.text
	}
	return neighbor.text + " " + value
}

// 向下看一行续行，遇到表头立即停止
func (extractor *Extractor) lookDown(ctx lineContext, value string, labels, otherLabels []string) string {
	if !ctx.hasNext || isTableHeader(extractor, ctx.nextLine) {
		return value
	}
	neighbor := neighborLine{text: ctx.nextLine, indent: ctx.nextIndent}
	allLabels := make([]string, 0, len(labels)+len(otherLabels))
	allLabels = append(append(allLabels, labels...), otherLabels...)
	if !passesAll(extractor, spliceDownGates, neighbor, allLabels) {
		return value
	}
	if value == "" {
		return neighbor.text
	}
	return value + " " + neighbor.text
}

// 在最早出现的噪声词处截断
func truncateAtNoise(value string, noiseWords []string) string {
	cut := len(value)
	for _, word := range noiseWords {
		if word == "" {
			continue
		}
		if pos := strings.Index(value, word); pos >= 0 && pos < cut {
			cut = pos
		}
	}
	return value[:cut]
}

// 截到最后一个锚点词的末尾，丢掉后面的括号、地址等
func trimByAnchors(value string, anchors []string) string {
	end := -1
	for _, anchor := range anchors {
		if anchor == "" {
			continue
		}
		if pos := strings.LastIndex(value, anchor); pos >= 0 && pos+len(anchor) > end {
			end = pos + len(anchor)
		}
	}
	if end < 0 {
		return value
	}
	return value[:end]
}
