package core

// 默认n-gram长度
const DefaultNgramSize = 2

// 按字符（rune）切分出所有长度为n的滑动窗口子串
//
// 空串返回空切片；长度不足n的字符串整体作为一个关键词返回。
func Tokenize(text string, n int) []string {
	if n <= 0 {
		n = DefaultNgramSize
	}
	if text == "" {
		return []string{}
	}
	runes := []rune(text)
	if len(runes) < n {
		return []string{text}
	}
	tokens := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		tokens = append(tokens, string(runes[i:i+n]))
	}
	return tokens
}

// 去重后的关键词集合
func tokenSet(text string, n int) map[string]struct{} {
	tokens := Tokenize(text, n)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
