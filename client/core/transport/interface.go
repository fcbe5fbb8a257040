// Package transport provides the ledger service interface and clients for the Terra blockchain.
package transport

import (
	"context"

	"github.com/weisyn/terra-go/client/core/tx"
)

// BroadcastMode 广播模式
type BroadcastMode string

const (
	// BroadcastModeBlock 等待交易进块后返回
	BroadcastModeBlock BroadcastMode = "block"
	// BroadcastModeSync 等待 CheckTx 通过后返回
	BroadcastModeSync BroadcastMode = "sync"
	// BroadcastModeAsync 提交即返回
	BroadcastModeAsync BroadcastMode = "async"
)

// AccountInfo 账户认证信息
// 每次签名前重新获取：序列号每笔广播交易恰好前进一次，
// 跨交易缓存会制造陈旧序列号竞态
type AccountInfo struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

// BroadcastResult 广播结果
// Code 非零表示链上拒绝，原样透传
type BroadcastResult struct {
	TxHash string `json:"txhash"`
	Height string `json:"height,omitempty"`
	Code   uint32 `json:"code,omitempty"`
	RawLog string `json:"raw_log,omitempty"`
}

// LedgerService 账本服务接口 - 签名流程消费的唯一外部协作方
// 由 LCD REST 客户端实现；测试中用内存实现替代
type LedgerService interface {
	// Account 查询账户的 {account_number, sequence}
	Account(ctx context.Context, address string) (*AccountInfo, error)

	// Broadcast 提交已签名交易
	Broadcast(ctx context.Context, stdTx *tx.StdTx, mode BroadcastMode) (*BroadcastResult, error)
}

// FeeEstimator 费用估算接口
type FeeEstimator interface {
	// EstimateFee 请求节点估算交易费用
	EstimateFee(ctx context.Context, req *EstimateFeeRequest) (*tx.StdFee, error)
}

// EstimateFeeRequest 费用估算请求
type EstimateFeeRequest struct {
	ChainID       string
	From          string
	Memo          string
	GasPrices     tx.Coins
	GasAdjustment float64
	Msgs          []tx.Msg
}
