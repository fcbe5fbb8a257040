package transport

import "errors"

// 账本服务交互错误定义
var (
	// ErrLedgerUnavailable 网络或传输层故障，未得到链上判定
	ErrLedgerUnavailable = errors.New("ledger service unavailable")

	// ErrLedgerRejected 链上拒绝（响应 code 非零）
	// code 与 raw_log 原样透传给调用方，签名核心不负责解释
	ErrLedgerRejected = errors.New("transaction rejected by ledger")

	// ErrAccountNotFound 账户在链上不存在
	ErrAccountNotFound = errors.New("account not found")
)
