package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/weisyn/terra-go/client/core/tx"
)

// FCDClient FCD (全节点缓存守护进程) 客户端
// 仅用于获取推荐 gas 单价
type FCDClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFCDClient 创建 FCD 客户端
func NewFCDClient(baseURL string, timeout time.Duration) *FCDClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &FCDClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GasPrices 获取各面额的推荐 gas 单价
func (c *FCDClient) GasPrices(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/txs/gas_prices", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrLedgerUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: http %d: %s", ErrLedgerUnavailable, resp.StatusCode, string(body))
	}

	var prices map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, fmt.Errorf("%w: decode gas prices: %v", ErrLedgerUnavailable, err)
	}
	return prices, nil
}

// GasPriceFor 获取指定面额的 gas 单价
func (c *FCDClient) GasPriceFor(ctx context.Context, denom string) (tx.Coin, error) {
	prices, err := c.GasPrices(ctx)
	if err != nil {
		return tx.Coin{}, err
	}
	price, ok := prices[denom]
	if !ok {
		return tx.Coin{}, fmt.Errorf("no gas price for denom %q", denom)
	}
	return tx.NewDecCoin(denom, price), nil
}
