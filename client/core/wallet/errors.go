package wallet

import "errors"

// 钱包核心错误定义
// 注意：任何错误文本都不得携带私钥、种子或助记词内容
var (
	// ErrInvalidMnemonic 助记词无效（词表查找失败或校验和不匹配）
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrInvalidPath 派生路径无效（格式错误或索引超出取值空间）
	ErrInvalidPath = errors.New("invalid derivation path")

	// ErrDerivationFailure 子密钥派生失败（BIP32 极小概率的无效中间密钥）
	// 按标准的恢复规则，调用方应将该层索引 +1 后重试
	ErrDerivationFailure = errors.New("child key derivation failure")

	// ErrChecksumMismatch bech32 校验和不匹配
	ErrChecksumMismatch = errors.New("bech32 checksum mismatch")

	// ErrUnknownPrefix bech32 前缀与期望值不符
	ErrUnknownPrefix = errors.New("unknown bech32 prefix")

	// ErrEmptySignBytes 拒绝签名空消息（只允许签名规范化的签名文档）
	ErrEmptySignBytes = errors.New("refusing to sign empty message")

	// ErrInvalidPrivateKey 私钥字节不在曲线标量有效范围内
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidPublicKey 公钥字节无法解析
	ErrInvalidPublicKey = errors.New("invalid public key")
)
