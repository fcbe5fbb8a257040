package tx

import (
	"encoding/json"
	"fmt"
)

// Msg 链上动作消息
// 签名核心只要求消息能产出规范化的 {type, value} 序列化，
// 消息在交易内的顺序具有语义，按调用方提供的顺序原样保留
type Msg interface {
	// Type 消息的 amino 路由类型，如 "bank/MsgSend"
	Type() string

	// Value 消息载荷
	// 返回值的结构体字段声明顺序必须与链的规范 JSON 键序一致
	Value() interface{}
}

// msgEnvelope {type, value} 线格式信封
type msgEnvelope struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// marshalMsg 将消息序列化为规范字节
// 禁用 HTML 转义以保持与其它语言实现的字节级一致
func marshalMsg(m Msg) (json.RawMessage, error) {
	raw, err := canonicalJSON(msgEnvelope{Type: m.Type(), Value: m.Value()})
	if err != nil {
		return nil, fmt.Errorf("marshal msg %s: %w", m.Type(), err)
	}
	return raw, nil
}

// MsgSend 银行转账消息 (bank/MsgSend)
type MsgSend struct {
	Amount      Coins  `json:"amount"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
}

// NewMsgSend 创建转账消息
func NewMsgSend(fromAddress, toAddress string, amount Coins) MsgSend {
	return MsgSend{
		Amount:      amount,
		FromAddress: fromAddress,
		ToAddress:   toAddress,
	}
}

// Type 实现 Msg
func (m MsgSend) Type() string { return "bank/MsgSend" }

// Value 实现 Msg
func (m MsgSend) Value() interface{} { return m }

// MsgDelegate 质押委托消息 (staking/MsgDelegate)
type MsgDelegate struct {
	Amount           Coin   `json:"amount"`
	DelegatorAddress string `json:"delegator_address"`
	ValidatorAddress string `json:"validator_address"`
}

// NewMsgDelegate 创建委托消息
func NewMsgDelegate(delegatorAddress, validatorAddress string, amount Coin) MsgDelegate {
	return MsgDelegate{
		Amount:           amount,
		DelegatorAddress: delegatorAddress,
		ValidatorAddress: validatorAddress,
	}
}

// Type 实现 Msg
func (m MsgDelegate) Type() string { return "staking/MsgDelegate" }

// Value 实现 Msg
func (m MsgDelegate) Value() interface{} { return m }

// MsgSwap 市场兑换消息 (market/MsgSwap)
type MsgSwap struct {
	AskDenom  string `json:"ask_denom"`
	OfferCoin Coin   `json:"offer_coin"`
	Trader    string `json:"trader"`
}

// NewMsgSwap 创建兑换消息
func NewMsgSwap(trader string, offerCoin Coin, askDenom string) MsgSwap {
	return MsgSwap{
		AskDenom:  askDenom,
		OfferCoin: offerCoin,
		Trader:    trader,
	}
}

// Type 实现 Msg
func (m MsgSwap) Type() string { return "market/MsgSwap" }

// Value 实现 Msg
func (m MsgSwap) Value() interface{} { return m }

// RawMessage 任意链上消息的逃生通道
// 调用方自行保证 value 字节已按链的规范键序排列
type RawMessage struct {
	MsgType  string
	MsgValue json.RawMessage
}

// Type 实现 Msg
func (m RawMessage) Type() string { return m.MsgType }

// Value 实现 Msg
func (m RawMessage) Value() interface{} { return m.MsgValue }
