package tx

import "errors"

// 交易构建与签名错误定义
var (
	// ErrEmptyTransaction 消息列表为空，无法构建签名文档
	ErrEmptyTransaction = errors.New("empty transaction: no messages")

	// ErrSequenceStale 账户序列号已前进，签名文档必须重建而不是修补
	// 序列号是签名内容的一部分，修补会使已有签名失效
	ErrSequenceStale = errors.New("account sequence is stale")

	// ErrSignerMismatch 提供的密钥公钥与声明的签名人槽位不匹配
	ErrSignerMismatch = errors.New("signing key does not match declared signer")

	// ErrNotFullySigned 签名槽位未全部填充，不能产出可广播交易
	ErrNotFullySigned = errors.New("transaction is not fully signed")

	// ErrInvalidSignature 附加的签名无法通过槽位公钥验证
	ErrInvalidSignature = errors.New("signature verification failed")

	// ErrInvalidCoin 金额格式无效
	ErrInvalidCoin = errors.New("invalid coin")
)
