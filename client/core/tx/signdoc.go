package tx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ChainContext 签名前从账本服务获取的链上上下文
// 序列号每笔广播交易必须恰好前进一次，因此不允许跨签名调用缓存，
// 每次构建文档前重新获取
type ChainContext struct {
	ChainID       string `json:"chain_id"`
	AccountNumber uint64 `json:"account_number"`
	Sequence      uint64 `json:"sequence"`
}

// stdSignDocWire 签名文档的线格式
//
// 字段声明顺序即字节序：account_number, chain_id, fee, memo, msgs, sequence
// 这是链规定的规范 JSON 键序，签名方与验证方必须字节一致，
// 不是字母序的巧合实现，也不是插入序——顺序在此处定格
type stdSignDocWire struct {
	AccountNumber string            `json:"account_number"`
	ChainID       string            `json:"chain_id"`
	Fee           json.RawMessage   `json:"fee"`
	Memo          string            `json:"memo"`
	Msgs          []json.RawMessage `json:"msgs"`
	Sequence      string            `json:"sequence"`
}

// SignDoc 规范化签名文档
// 构建后不可变；任何字段变化（包括序列号刷新）都要求构建新文档
type SignDoc struct {
	chainID       string
	accountNumber uint64
	sequence      uint64
	memo          string
	feeRaw        json.RawMessage
	msgsRaw       []json.RawMessage
	signBytes     []byte
}

// BuildSignDoc 组装规范化签名文档
//
// 确定性：相同输入总是产出相同字节，多方签名场景中每个签名人
// 都能独立验证自己签的是同一份文档
func BuildSignDoc(chainCtx ChainContext, fee StdFee, msgs []Msg, memo string) (*SignDoc, error) {
	if len(msgs) == 0 {
		return nil, ErrEmptyTransaction
	}

	feeRaw, err := canonicalJSON(fee)
	if err != nil {
		return nil, fmt.Errorf("marshal fee: %w", err)
	}

	msgsRaw := make([]json.RawMessage, len(msgs))
	for i, m := range msgs {
		raw, err := marshalMsg(m)
		if err != nil {
			return nil, err
		}
		msgsRaw[i] = raw
	}

	wire := stdSignDocWire{
		AccountNumber: strconv.FormatUint(chainCtx.AccountNumber, 10),
		ChainID:       chainCtx.ChainID,
		Fee:           feeRaw,
		Memo:          memo,
		Msgs:          msgsRaw,
		Sequence:      strconv.FormatUint(chainCtx.Sequence, 10),
	}
	signBytes, err := canonicalJSON(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal sign doc: %w", err)
	}

	return &SignDoc{
		chainID:       chainCtx.ChainID,
		accountNumber: chainCtx.AccountNumber,
		sequence:      chainCtx.Sequence,
		memo:          memo,
		feeRaw:        feeRaw,
		msgsRaw:       msgsRaw,
		signBytes:     signBytes,
	}, nil
}

// Bytes 返回待签名字节序列的副本
func (d *SignDoc) Bytes() []byte {
	out := make([]byte, len(d.signBytes))
	copy(out, d.signBytes)
	return out
}

// ChainID 文档绑定的链 ID
func (d *SignDoc) ChainID() string { return d.chainID }

// AccountNumber 文档绑定的账户号
func (d *SignDoc) AccountNumber() uint64 { return d.accountNumber }

// Sequence 文档绑定的序列号
func (d *SignDoc) Sequence() uint64 { return d.sequence }

// Memo 文档备注
func (d *SignDoc) Memo() string { return d.memo }

// canonicalJSON 规范化 JSON 序列化
// 关闭 HTML 转义，保持与其它语言的签名实现字节级一致
func canonicalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encoder 会追加换行符
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
