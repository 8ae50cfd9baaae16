package core

import (
	"regexp"
	"sort"
	"strings"

	"github.com/huichen/ocrmatch/types"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// 最多重复执行的轮数，管线在达到不动点后停止
const maxNormalizePasses = 8

// 编译后的归一化管线：替换 -> 折叠 -> 删除
//
// Normalizer创建后只读，可以在多个协程中同时使用。
type Normalizer struct {
	replacements []replacement
	foldMap      map[rune]string
	foldWidth    bool
	strips       []stripper
}

type replacement struct {
	re      *regexp.Regexp
	replace string
}

// 删除规则：正则或字面串二选一
type stripper struct {
	re      *regexp.Regexp
	literal string
}

// 编译归一化配置。替换规则中的非法正则属于配置错误，删除列表中的非法正则退化为字面删除。
func NewNormalizer(config types.NormalizeConfig) (*Normalizer, error) {
	normalizer := &Normalizer{foldWidth: config.FoldWidth}

	for i, rule := range config.Replacements {
		re, err := regexp.Compile(withFlags(rule.Pattern, rule.Flags))
		if err != nil {
			return nil, errors.Wrapf(types.ErrInvalidConfig,
				"normalize: replacement #%d %q: %v", i, rule.Pattern, err)
		}
		normalizer.replacements = append(normalizer.replacements, replacement{re: re, replace: rule.Replace})
	}

	if len(config.Maps) > 0 {
		// 按键排序，保证同一字符出现在多个键中时结果确定
		keys := make([]string, 0, len(config.Maps))
		for k := range config.Maps {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		normalizer.foldMap = make(map[rune]string)
		for _, k := range keys {
			for _, r := range k {
				if _, found := normalizer.foldMap[r]; !found {
					normalizer.foldMap[r] = config.Maps[k]
				}
			}
		}
	}

	for _, s := range config.Strip {
		if s == "" {
			continue
		}
		if re, err := regexp.Compile(s); err == nil {
			normalizer.strips = append(normalizer.strips, stripper{re: re})
		} else {
			normalizer.strips = append(normalizer.strips, stripper{literal: s})
		}
	}
	return normalizer, nil
}

// 把规则中的i、m、s标志转成内联标志，g总是隐含
func withFlags(pattern, flags string) string {
	inline := ""
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline, f) {
				inline += string(f)
			}
		}
	}
	if inline == "" {
		return pattern
	}
	return "(?" + inline + ")" + pattern
}

// 归一化文本，重复执行直到结果不再变化，因此满足幂等性
func (normalizer *Normalizer) Normalize(text string) string {
	if normalizer == nil {
		return text
	}
	current := text
	for pass := 0; pass < maxNormalizePasses; pass++ {
		next := normalizer.apply(current)
		if next == current {
			break
		}
		current = next
	}
	return current
}

// 执行一轮管线
func (normalizer *Normalizer) apply(text string) string {
	for _, r := range normalizer.replacements {
		text = r.re.ReplaceAllString(text, r.replace)
	}

	if normalizer.foldMap != nil {
		var b strings.Builder
		b.Grow(len(text))
		for _, r := range text {
			if to, found := normalizer.foldMap[r]; found {
				b.WriteString(to)
			} else {
				b.WriteRune(r)
			}
		}
		text = b.String()
	}
	if normalizer.foldWidth {
		text = norm.NFKC.String(width.Fold.String(text))
	}

	for _, s := range normalizer.strips {
		if s.re != nil {
			text = s.re.ReplaceAllString(text, "")
		} else {
			text = strings.ReplaceAll(text, s.literal, "")
		}
	}
	return text
}
