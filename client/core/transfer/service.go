// Package transfer orchestrates transaction building, signing and broadcast for the Terra blockchain.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/weisyn/terra-go/client/core/transport"
	"github.com/weisyn/terra-go/client/core/tx"
	"github.com/weisyn/terra-go/client/core/wallet"
)

// GasOptions 费用与 gas 偏好
// 要么硬编码费用，要么请求节点估算后乘以调整系数
type GasOptions struct {
	// Fees 固定费用（设置后不再估算）
	Fees tx.Coins
	// Gas 固定 gas 上限（与 Fees 配合使用）
	Gas uint64
	// EstimateGas 是否请求节点估算
	EstimateGas bool
	// GasPrices 估算时使用的 gas 单价
	GasPrices tx.Coins
	// GasAdjustment 估算结果的调整系数（如 1.4）
	GasAdjustment float64
}

// FixedGasOptions 硬编码费用
func FixedGasOptions(fees string, gas uint64) (*GasOptions, error) {
	coins, err := tx.ParseCoins(fees)
	if err != nil {
		return nil, err
	}
	return &GasOptions{Fees: coins, Gas: gas}, nil
}

// EstimateGasOptions 节点估算
func EstimateGasOptions(gasPrices string, gasAdjustment float64) (*GasOptions, error) {
	coins, err := tx.ParseCoins(gasPrices)
	if err != nil {
		return nil, err
	}
	return &GasOptions{
		EstimateGas:   true,
		GasPrices:     coins,
		GasAdjustment: gasAdjustment,
	}, nil
}

// Service 交易编排服务
// 串联账本服务与签名核心：取上下文 → 定费用 → 建文档 → 签名 → 广播
type Service struct {
	ledger    transport.LedgerService
	estimator transport.FeeEstimator // 可为 nil（仅固定费用模式）
	codec     *wallet.AddressCodec
	chainID   string
	gas       *GasOptions
	logger    *zap.Logger
}

// NewService 创建编排服务
func NewService(ledger transport.LedgerService, estimator transport.FeeEstimator,
	codec *wallet.AddressCodec, chainID string, gas *GasOptions, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:    ledger,
		estimator: estimator,
		codec:     codec,
		chainID:   chainID,
		gas:       gas,
		logger:    logger,
	}
}

// SendOptions 单次提交的选项
type SendOptions struct {
	Memo string
	Mode transport.BroadcastMode
	// VerifySequence 广播前二次校验序列号
	// 签名耗时较长（如人工确认）时开启，命中则返回 ErrSequenceStale
	VerifySequence bool
}

// Send 构建、签名并广播一笔交易
//
// 每次调用都重新向账本服务获取 {account_number, sequence}，
// 不跨调用缓存——背靠背提交时陈旧序列号会造成双花竞态。
// 返回 tx.ErrSequenceStale 时调用方应整体重试（文档会重建）。
func (s *Service) Send(ctx context.Context, key *wallet.PrivateKey, msgs []tx.Msg, opts SendOptions) (*transport.BroadcastResult, error) {
	if len(msgs) == 0 {
		return nil, tx.ErrEmptyTransaction
	}

	address, err := s.codec.AccAddress(key.PublicKey())
	if err != nil {
		return nil, fmt.Errorf("derive address: %w", err)
	}

	// 签名前的新鲜查询
	account, err := s.ledger.Account(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}

	fee, err := s.resolveFee(ctx, address, opts.Memo, msgs)
	if err != nil {
		return nil, err
	}

	chainCtx := tx.ChainContext{
		ChainID:       s.chainID,
		AccountNumber: account.AccountNumber,
		Sequence:      account.Sequence,
	}
	doc, err := tx.BuildSignDoc(chainCtx, *fee, msgs, opts.Memo)
	if err != nil {
		return nil, err
	}

	session, err := tx.NewSigningSession(doc, []wallet.PublicKey{key.PublicKey()})
	if err != nil {
		return nil, err
	}
	if err := session.Sign(key); err != nil {
		return nil, err
	}

	if opts.VerifySequence {
		fresh, err := s.ledger.Account(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("verify sequence: %w", err)
		}
		freshCtx := tx.ChainContext{
			ChainID:       s.chainID,
			AccountNumber: fresh.AccountNumber,
			Sequence:      fresh.Sequence,
		}
		if err := session.CheckSequence(freshCtx); err != nil {
			return nil, err
		}
	}

	stdTx, err := session.CompleteTx()
	if err != nil {
		return nil, err
	}

	s.logger.Debug("broadcasting transaction",
		zap.String("address", address),
		zap.Uint64("sequence", account.Sequence),
		zap.Int("msgs", len(msgs)))

	return s.ledger.Broadcast(ctx, stdTx, opts.Mode)
}

// resolveFee 按 GasOptions 确定费用
func (s *Service) resolveFee(ctx context.Context, from, memo string, msgs []tx.Msg) (*tx.StdFee, error) {
	if s.gas == nil {
		return nil, errors.New("gas options are required")
	}

	if !s.gas.EstimateGas {
		fee := tx.NewStdFee(s.gas.Gas, s.gas.Fees)
		return &fee, nil
	}

	if s.estimator == nil {
		return nil, errors.New("fee estimation requested but no estimator configured")
	}
	fee, err := s.estimator.EstimateFee(ctx, &transport.EstimateFeeRequest{
		ChainID:       s.chainID,
		From:          from,
		Memo:          memo,
		GasPrices:     s.gas.GasPrices,
		GasAdjustment: s.gas.GasAdjustment,
		Msgs:          msgs,
	})
	if err != nil {
		return nil, fmt.Errorf("estimate fee: %w", err)
	}
	return fee, nil
}
