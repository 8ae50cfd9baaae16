package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// 计算内容摘要（sha256的十六进制），只用于判断内容是否变化
func ComputeDigest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// 多文件摘要：按给定顺序用"|"连接各文件的摘要后再取摘要，顺序不同结果不同
func ComputeMultiFileDigest(digests []string) string {
	return ComputeDigest([]byte(strings.Join(digests, "|")))
}
