// Package client provides the unified entry point for Terra blockchain interaction.
package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/weisyn/terra-go/client/core/transfer"
	"github.com/weisyn/terra-go/client/core/transport"
	"github.com/weisyn/terra-go/client/core/tx"
	"github.com/weisyn/terra-go/client/core/wallet"
)

// Client Terra 区块链客户端 - 统一的客户端入口
// 提供账户查询、交易签名与广播能力
type Client struct {
	lcd     *transport.LCDClient
	codec   *wallet.AddressCodec
	chainID string
	logger  *zap.Logger
}

// New 创建新的客户端实例
// lcdURL: LCD 端点，如 "https://lcd.terra.dev"
// chainID: 链 ID，如 "columbus-5"
// prefix: 账户地址前缀，如 "terra"
func New(lcdURL, chainID, prefix string) *Client {
	return NewWithOptions(lcdURL, chainID, prefix, 30*time.Second, nil)
}

// NewWithOptions 创建带自定义超时与日志的客户端实例
func NewWithOptions(lcdURL, chainID, prefix string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		lcd:     transport.NewLCDClient(lcdURL, timeout, logger),
		codec:   wallet.NewAddressCodec(prefix),
		chainID: chainID,
		logger:  logger,
	}
}

// ChainID 客户端绑定的链 ID
func (c *Client) ChainID() string {
	return c.chainID
}

// AddressCodec 地址编解码器
func (c *Client) AddressCodec() *wallet.AddressCodec {
	return c.codec
}

// Ledger 底层账本服务客户端
func (c *Client) Ledger() *transport.LCDClient {
	return c.lcd
}

// === 便捷方法：账户查询 ===

// Account 查询账户认证信息（每次签名前重新调用，不缓存）
func (c *Client) Account(ctx context.Context, address string) (*transport.AccountInfo, error) {
	return c.lcd.Account(ctx, address)
}

// Balances 查询账户余额
func (c *Client) Balances(ctx context.Context, address string) (tx.Coins, error) {
	return c.lcd.Balances(ctx, address)
}

// === 便捷方法：交易操作 ===

// Broadcast 提交已签名交易
func (c *Client) Broadcast(ctx context.Context, stdTx *tx.StdTx, mode transport.BroadcastMode) (*transport.BroadcastResult, error) {
	return c.lcd.Broadcast(ctx, stdTx, mode)
}

// Transfer 创建交易编排服务
func (c *Client) Transfer(gas *transfer.GasOptions) *transfer.Service {
	return transfer.NewService(c.lcd, c.lcd, c.codec, c.chainID, gas, c.logger)
}
