package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// TxListener Tendermint RPC WebSocket 客户端（用于订阅交易进块事件）
// 多签名流程中可用于等待广播结果最终落块
type TxListener struct {
	endpoint  string
	conn      *websocket.Conn
	logger    *zap.Logger
	mu        sync.RWMutex
	subs      map[string]*txSubscription // 键为 JSONRPC 请求 id
	closeCh   chan struct{}
	closeOnce sync.Once
}

// TxEvent 交易进块事件
type TxEvent struct {
	TxHash string
	Height string
	Code   uint32
	RawLog string
}

// TxSubscription 订阅句柄
type TxSubscription interface {
	// Events 事件通道，连接关闭时通道关闭
	Events() <-chan *TxEvent
	// Err 错误通道
	Err() <-chan error
	// Unsubscribe 取消订阅
	Unsubscribe()
}

// NewTxListener 连接 Tendermint WebSocket 端点（如 ws://host:26657/websocket）
func NewTxListener(endpoint string, logger *zap.Logger) (*TxListener, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, resp, err := dialer.Dial(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial websocket: %v", ErrLedgerUnavailable, err)
	}
	if resp != nil && resp.Body != nil {
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("close websocket handshake body", zap.Error(err))
			}
		}()
	}

	listener := &TxListener{
		endpoint: endpoint,
		conn:     conn,
		logger:   logger,
		subs:     make(map[string]*txSubscription),
		closeCh:  make(chan struct{}),
	}

	go listener.readLoop()

	return listener, nil
}

// wsRequest Tendermint JSONRPC 请求
type wsRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	ID      string      `json:"id"`
	Params  interface{} `json:"params,omitempty"`
}

// wsResponse Tendermint JSONRPC 响应/事件
type wsResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *wsError        `json:"error,omitempty"`
}

type wsError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *wsError) String() string {
	return fmt.Sprintf("jsonrpc error %d: %s %s", e.Code, e.Message, e.Data)
}

// txSubscription 单个订阅
type txSubscription struct {
	id      string
	txHash  string
	eventCh chan *TxEvent
	errCh   chan error
	cancel  func()
}

func (s *txSubscription) Events() <-chan *TxEvent { return s.eventCh }
func (s *txSubscription) Err() <-chan error       { return s.errCh }
func (s *txSubscription) Unsubscribe()            { s.cancel() }

// SubscribeTx 订阅指定交易哈希的进块事件
func (l *TxListener) SubscribeTx(txHash string) (TxSubscription, error) {
	id := uuid.NewString()
	query := fmt.Sprintf("tm.event='Tx' AND tx.hash='%s'", txHash)

	sub := &txSubscription{
		id:      id,
		txHash:  txHash,
		eventCh: make(chan *TxEvent, 1),
		errCh:   make(chan error, 1),
	}
	sub.cancel = func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}

	l.mu.Lock()
	l.subs[id] = sub
	l.mu.Unlock()

	req := wsRequest{
		JSONRPC: "2.0",
		Method:  "subscribe",
		ID:      id,
		Params:  map[string]string{"query": query},
	}
	if err := l.conn.WriteJSON(req); err != nil {
		sub.cancel()
		return nil, fmt.Errorf("%w: subscribe: %v", ErrLedgerUnavailable, err)
	}

	return sub, nil
}

// WaitForTx 等待交易进块或上下文取消
func (l *TxListener) WaitForTx(ctx context.Context, txHash string) (*TxEvent, error) {
	sub, err := l.SubscribeTx(txHash)
	if err != nil {
		return nil, err
	}
	defer sub.Unsubscribe()

	select {
	case event, ok := <-sub.Events():
		if !ok {
			return nil, fmt.Errorf("%w: connection closed", ErrLedgerUnavailable)
		}
		return event, nil
	case err := <-sub.Err():
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close 关闭连接
func (l *TxListener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.closeCh)
		err = l.conn.Close()
	})
	return err
}

// readLoop 消息读取循环
func (l *TxListener) readLoop() {
	defer func() {
		l.mu.Lock()
		for _, sub := range l.subs {
			close(sub.eventCh)
			close(sub.errCh)
		}
		l.subs = make(map[string]*txSubscription)
		l.mu.Unlock()
	}()

	for {
		select {
		case <-l.closeCh:
			return
		default:
		}

		var msg wsResponse
		if err := l.conn.ReadJSON(&msg); err != nil {
			l.mu.RLock()
			for _, sub := range l.subs {
				select {
				case sub.errCh <- fmt.Errorf("%w: websocket read: %v", ErrLedgerUnavailable, err):
				default:
				}
			}
			l.mu.RUnlock()
			return
		}

		l.dispatch(&msg)
	}
}

// eventPayload Tendermint Tx 事件载荷
type eventPayload struct {
	Query string `json:"query"`
	Data  struct {
		Type  string `json:"type"`
		Value struct {
			TxResult struct {
				Height string `json:"height"`
				Result struct {
					Code uint32 `json:"code,omitempty"`
					Log  string `json:"log,omitempty"`
				} `json:"result"`
			} `json:"TxResult"`
		} `json:"value"`
	} `json:"data"`
}

// dispatch 将事件派发给对应订阅
func (l *TxListener) dispatch(msg *wsResponse) {
	l.mu.RLock()
	sub, ok := l.subs[msg.ID]
	l.mu.RUnlock()
	if !ok {
		return
	}

	if msg.Error != nil {
		select {
		case sub.errCh <- fmt.Errorf("%w: %s", ErrLedgerUnavailable, msg.Error.String()):
		default:
		}
		return
	}

	// 订阅确认的 result 为空对象，跳过
	var payload eventPayload
	if err := json.Unmarshal(msg.Result, &payload); err != nil || payload.Data.Type == "" {
		return
	}

	event := &TxEvent{
		TxHash: sub.txHash,
		Height: payload.Data.Value.TxResult.Height,
		Code:   payload.Data.Value.TxResult.Result.Code,
		RawLog: payload.Data.Value.TxResult.Result.Log,
	}
	select {
	case sub.eventCh <- event:
	default:
		l.logger.Warn("dropping tx event, channel full", zap.String("txhash", sub.txHash))
	}
}
