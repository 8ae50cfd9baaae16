package utils

import (
	"fmt"
	"testing"
)

// 比较期待值与实际值的字符串形式
func Expect(t *testing.T, expect string, actual interface{}) {
	t.Helper()
	actualString := fmt.Sprint(actual)
	if expect != actualString {
		t.Errorf("期待值=\"%s\", 实际=\"%s\"", expect, actualString)
	}
}
