package tx

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/weisyn/terra-go/client/core/wallet"
)

// tendermint amino 公钥类型名
const (
	pubKeyTypeSecp256k1 = "tendermint/PubKeySecp256k1"
	pubKeyTypeEd25519   = "tendermint/PubKeyEd25519"
)

// PubKeyJSON 线格式公钥（{type, value} 信封，value 为 base64 压缩公钥）
type PubKeyJSON struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// StdSignature 签名与配套公钥
// 一个签名只附着于一份签名文档
type StdSignature struct {
	PubKey    PubKeyJSON `json:"pub_key"`
	Signature string     `json:"signature"`
}

// NewStdSignature 由 64 字节签名与公钥构造线格式签名
func NewStdSignature(signature []byte, pk wallet.PublicKey) StdSignature {
	typeName := pubKeyTypeSecp256k1
	if pk.Algo == wallet.AlgoEd25519 {
		typeName = pubKeyTypeEd25519
	}
	return StdSignature{
		PubKey: PubKeyJSON{
			Type:  typeName,
			Value: base64.StdEncoding.EncodeToString(pk.Bytes),
		},
		Signature: base64.StdEncoding.EncodeToString(signature),
	}
}

// StdTx 最终广播产物：消息体 + 费用 + 签名列表
// 组装完成后不可变，交付账本服务后即弃用，不跨序列号复用
type StdTx struct {
	Msg        []json.RawMessage `json:"msg"`
	Fee        json.RawMessage   `json:"fee"`
	Signatures []StdSignature    `json:"signatures"`
	Memo       string            `json:"memo"`
}

// SignTx 单签名人流程：对文档签名并组装可广播交易
func SignTx(doc *SignDoc, key *wallet.PrivateKey) (*StdTx, error) {
	session, err := NewSigningSession(doc, []wallet.PublicKey{key.PublicKey()})
	if err != nil {
		return nil, err
	}
	if err := session.Sign(key); err != nil {
		return nil, err
	}
	return session.CompleteTx()
}

// SessionState 签名会话状态
type SessionState string

const (
	// StateDraft 文档已构建，尚无签名
	StateDraft SessionState = "draft"
	// StatePartiallySigned 至少一个但未满额的槽位已填充
	StatePartiallySigned SessionState = "partially_signed"
	// StateFullySigned 所有声明槽位都持有有效签名
	// 只有此状态允许产出可广播交易
	StateFullySigned SessionState = "fully_signed"
)

// SigningSession 多签名人累积会话
//
// 槽位按声明顺序排列并保持位置完整：未填充的槽位保留为空而不是移除，
// 验证方依赖签名与 signer 声明的位置对应关系。
// 各槽位独立填充，互相之间无顺序约束，全部非空即完成。
type SigningSession struct {
	doc     *SignDoc
	signers []wallet.PublicKey
	sigs    []*StdSignature // 与 signers 槽位对齐，nil 表示空槽位
}

// NewSigningSession 创建签名会话
// signers 的顺序即签名列表在交易中的顺序
func NewSigningSession(doc *SignDoc, signers []wallet.PublicKey) (*SigningSession, error) {
	if doc == nil {
		return nil, fmt.Errorf("sign doc is required")
	}
	if len(signers) == 0 {
		return nil, fmt.Errorf("at least one signer is required")
	}
	return &SigningSession{
		doc:     doc,
		signers: signers,
		sigs:    make([]*StdSignature, len(signers)),
	}, nil
}

// State 返回当前状态
func (s *SigningSession) State() SessionState {
	filled := s.filledCount()
	switch {
	case filled == 0:
		return StateDraft
	case filled < len(s.signers):
		return StatePartiallySigned
	default:
		return StateFullySigned
	}
}

// Progress 返回已填充槽位数与声明槽位总数 (k, n)
func (s *SigningSession) Progress() (int, int) {
	return s.filledCount(), len(s.signers)
}

// Sign 使用私钥对文档签名并填充到对应槽位
// 密钥的公钥必须匹配某个声明槽位，否则返回 ErrSignerMismatch
func (s *SigningSession) Sign(key *wallet.PrivateKey) error {
	pk := key.PublicKey()
	slot := s.slotFor(pk)
	if slot < 0 {
		return fmt.Errorf("%w: public key not declared", ErrSignerMismatch)
	}

	sig, err := key.Sign(s.doc.Bytes())
	if err != nil {
		return fmt.Errorf("sign document: %w", err)
	}

	stdSig := NewStdSignature(sig, pk)
	s.sigs[slot] = &stdSig
	return nil
}

// Attach 附加外部产生的签名（多签名人带外交换场景）
// slot 必须对应声明顺序中的位置；签名在接受前先用槽位公钥验证
func (s *SigningSession) Attach(slot int, sig StdSignature) error {
	if slot < 0 || slot >= len(s.signers) {
		return fmt.Errorf("%w: slot %d out of range", ErrSignerMismatch, slot)
	}

	declared := s.signers[slot]
	pkBytes, err := base64.StdEncoding.DecodeString(sig.PubKey.Value)
	if err != nil {
		return fmt.Errorf("%w: decode public key: %v", ErrInvalidSignature, err)
	}
	if !declared.Equal(wallet.PublicKey{Algo: declared.Algo, Bytes: pkBytes}) {
		return fmt.Errorf("%w: public key does not match slot %d", ErrSignerMismatch, slot)
	}

	sigBytes, err := base64.StdEncoding.DecodeString(sig.Signature)
	if err != nil {
		return fmt.Errorf("%w: decode signature: %v", ErrInvalidSignature, err)
	}
	if !declared.Verify(s.doc.Bytes(), sigBytes) {
		return fmt.Errorf("%w: slot %d", ErrInvalidSignature, slot)
	}

	s.sigs[slot] = &sig
	return nil
}

// CheckSequence 校验文档绑定的序列号仍然新鲜
// 账本服务二次查询返回的序列号与文档不一致时返回 ErrSequenceStale，
// 此时必须用新上下文重建文档重新收集签名
func (s *SigningSession) CheckSequence(fresh ChainContext) error {
	if fresh.ChainID != s.doc.ChainID() ||
		fresh.AccountNumber != s.doc.AccountNumber() ||
		fresh.Sequence != s.doc.Sequence() {
		return fmt.Errorf("%w: document sequence %d, current %d",
			ErrSequenceStale, s.doc.Sequence(), fresh.Sequence)
	}
	return nil
}

// CompleteTx 产出可广播交易
// 仅 FullySigned 状态允许；签名列表顺序与声明顺序一致
func (s *SigningSession) CompleteTx() (*StdTx, error) {
	if s.State() != StateFullySigned {
		k, n := s.Progress()
		return nil, fmt.Errorf("%w: %d of %d slots filled", ErrNotFullySigned, k, n)
	}

	sigs := make([]StdSignature, len(s.sigs))
	for i, sig := range s.sigs {
		sigs[i] = *sig
	}
	return &StdTx{
		Msg:        s.doc.msgsRaw,
		Fee:        s.doc.feeRaw,
		Signatures: sigs,
		Memo:       s.doc.Memo(),
	}, nil
}

func (s *SigningSession) filledCount() int {
	count := 0
	for _, sig := range s.sigs {
		if sig != nil {
			count++
		}
	}
	return count
}

// slotFor 查找公钥对应的第一个未填充槽位，找不到返回 -1
func (s *SigningSession) slotFor(pk wallet.PublicKey) int {
	for i, declared := range s.signers {
		if declared.Equal(pk) && s.sigs[i] == nil {
			return i
		}
	}
	// 允许重复签名覆盖自己的槽位
	for i, declared := range s.signers {
		if declared.Equal(pk) {
			return i
		}
	}
	return -1
}
