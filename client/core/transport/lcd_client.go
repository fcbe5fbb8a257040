package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/weisyn/terra-go/client/core/tx"
)

// userAgent 请求标识，便于节点侧排查
const userAgent = "terra-go/1.0"

// LCDClient LCD (轻客户端守护进程) REST 客户端
// 实现 LedgerService 与 FeeEstimator
type LCDClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewLCDClient 创建 LCD 客户端
// logger 传 nil 时不输出日志
func NewLCDClient(baseURL string, timeout time.Duration, logger *zap.Logger) *LCDClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LCDClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// lcdResult LCD 标准响应包装 {height, result}
type lcdResult struct {
	Height string          `json:"height"`
	Result json.RawMessage `json:"result"`
}

// authAccountValue /auth/accounts 响应中的账户载荷
type authAccountValue struct {
	Address       string `json:"address"`
	AccountNumber string `json:"account_number"`
	Sequence      string `json:"sequence"`
}

// Account 查询账户认证信息
func (c *LCDClient) Account(ctx context.Context, address string) (*AccountInfo, error) {
	var wrapper lcdResult
	if err := c.get(ctx, "/auth/accounts/"+address, &wrapper); err != nil {
		return nil, err
	}

	// result 是 {type, value} 信封
	var envelope struct {
		Type  string           `json:"type"`
		Value authAccountValue `json:"value"`
	}
	if err := json.Unmarshal(wrapper.Result, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode account: %v", ErrLedgerUnavailable, err)
	}
	if envelope.Value.Address == "" {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}

	accountNumber, err := strconv.ParseUint(envelope.Value.AccountNumber, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: parse account_number: %v", ErrLedgerUnavailable, err)
	}
	sequence := uint64(0)
	if envelope.Value.Sequence != "" {
		sequence, err = strconv.ParseUint(envelope.Value.Sequence, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parse sequence: %v", ErrLedgerUnavailable, err)
		}
	}

	return &AccountInfo{
		Address:       envelope.Value.Address,
		AccountNumber: accountNumber,
		Sequence:      sequence,
	}, nil
}

// broadcastRequest POST /txs 请求体
type broadcastRequest struct {
	Tx   *tx.StdTx `json:"tx"`
	Mode string    `json:"mode"`
}

// Broadcast 提交已签名交易
// 链上拒绝（code 非零）返回 ErrLedgerRejected，结果仍然返回，
// code 与 raw_log 原样透传
func (c *LCDClient) Broadcast(ctx context.Context, stdTx *tx.StdTx, mode BroadcastMode) (*BroadcastResult, error) {
	if mode == "" {
		mode = BroadcastModeSync
	}

	var result BroadcastResult
	if err := c.post(ctx, "/txs", broadcastRequest{Tx: stdTx, Mode: string(mode)}, &result); err != nil {
		return nil, err
	}

	c.logger.Debug("broadcast complete",
		zap.String("txhash", result.TxHash),
		zap.Uint32("code", result.Code))

	if result.Code != 0 {
		return &result, fmt.Errorf("%w: code %d: %s", ErrLedgerRejected, result.Code, result.RawLog)
	}
	return &result, nil
}

// Balances 查询账户各面额余额
func (c *LCDClient) Balances(ctx context.Context, address string) (tx.Coins, error) {
	var wrapper lcdResult
	if err := c.get(ctx, "/bank/balances/"+address, &wrapper); err != nil {
		return nil, err
	}

	var coins tx.Coins
	if err := json.Unmarshal(wrapper.Result, &coins); err != nil {
		return nil, fmt.Errorf("%w: decode balances: %v", ErrLedgerUnavailable, err)
	}
	return coins, nil
}

// estimateFeeRequest POST /txs/estimate_fee 请求体
type estimateFeeRequest struct {
	BaseReq struct {
		From          string   `json:"from"`
		ChainID       string   `json:"chain_id"`
		Memo          string   `json:"memo,omitempty"`
		GasPrices     tx.Coins `json:"gas_prices,omitempty"`
		GasAdjustment string   `json:"gas_adjustment,omitempty"`
	} `json:"base_req"`
	Msgs []json.RawMessage `json:"msgs"`
}

// EstimateFee 请求节点估算费用
func (c *LCDClient) EstimateFee(ctx context.Context, req *EstimateFeeRequest) (*tx.StdFee, error) {
	var body estimateFeeRequest
	body.BaseReq.From = req.From
	body.BaseReq.ChainID = req.ChainID
	body.BaseReq.Memo = req.Memo
	body.BaseReq.GasPrices = req.GasPrices
	if req.GasAdjustment > 0 {
		body.BaseReq.GasAdjustment = strconv.FormatFloat(req.GasAdjustment, 'f', -1, 64)
	}
	for _, m := range req.Msgs {
		raw, err := json.Marshal(struct {
			Type  string      `json:"type"`
			Value interface{} `json:"value"`
		}{m.Type(), m.Value()})
		if err != nil {
			return nil, fmt.Errorf("marshal msg: %w", err)
		}
		body.Msgs = append(body.Msgs, raw)
	}

	var wrapper lcdResult
	if err := c.post(ctx, "/txs/estimate_fee", body, &wrapper); err != nil {
		return nil, err
	}

	var result struct {
		Fee tx.StdFee `json:"fee"`
	}
	if err := json.Unmarshal(wrapper.Result, &result); err != nil {
		return nil, fmt.Errorf("%w: decode fee estimate: %v", ErrLedgerUnavailable, err)
	}
	return &result.Fee, nil
}

// NodeInfo 节点信息（用于发现链 ID）
type NodeInfo struct {
	Network string `json:"network"`
	Moniker string `json:"moniker"`
}

// GetNodeInfo 查询节点信息
func (c *LCDClient) GetNodeInfo(ctx context.Context) (*NodeInfo, error) {
	var result struct {
		NodeInfo NodeInfo `json:"node_info"`
	}
	if err := c.get(ctx, "/node_info", &result); err != nil {
		return nil, err
	}
	return &result.NodeInfo, nil
}

// get 发送 GET 请求
func (c *LCDClient) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrLedgerUnavailable, err)
	}
	return c.do(req, result)
}

// post 发送带 JSON 请求体的 POST 请求
func (c *LCDClient) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrLedgerUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, result)
}

func (c *LCDClient) do(req *http.Request, result interface{}) error {
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, req.URL.Path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: http %d: %s", ErrLedgerUnavailable, resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrLedgerUnavailable, err)
		}
	}
	return nil
}
