package wallet

import "crypto/rand"

// SecureBytes 敏感字节缓冲区（种子、私钥标量等）
//
// 持有方负责在不再需要时调用 Zero 清除内容，
// 无论签名流程成功还是失败都应清除
type SecureBytes []byte

// Zero 清除缓冲区内容
// 先用随机数据覆盖一次，再写零，防止残留可识别的密钥片段
func (b SecureBytes) Zero() {
	if len(b) == 0 {
		return
	}
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = 0
	}
}

// Clone 复制一份独立的缓冲区
func (b SecureBytes) Clone() SecureBytes {
	out := make(SecureBytes, len(b))
	copy(out, b)
	return out
}

// String 实现 fmt.Stringer，永不输出内容
func (b SecureBytes) String() string {
	return "wallet.SecureBytes(redacted)"
}
