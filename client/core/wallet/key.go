package wallet

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Algorithm 签名算法标签
// 封闭的枚举：签名器只可能收到这两种算法之一，
// 不支持的算法在构造阶段就被拒绝，不会到达签名调用点
type Algorithm string

const (
	// AlgoSecp256k1 账户密钥算法（ECDSA over secp256k1）
	AlgoSecp256k1 Algorithm = "secp256k1"
	// AlgoEd25519 共识/验证人身份密钥算法
	AlgoEd25519 Algorithm = "ed25519"
)

// 各算法的密钥与签名长度
const (
	// PrivateKeySize 私钥标量长度（两种算法一致，ed25519 存储 32 字节种子）
	PrivateKeySize = 32
	// CompressedPubKeySize secp256k1 压缩公钥长度
	CompressedPubKeySize = 33
	// Ed25519PubKeySize ed25519 公钥长度
	Ed25519PubKeySize = ed25519.PublicKeySize
	// SignatureSize 签名长度（secp256k1 紧凑 r‖s / ed25519 标准签名）
	SignatureSize = 64
)

// PublicKey 公钥（可自由复制和共享）
type PublicKey struct {
	Algo  Algorithm `json:"algo"`
	Bytes []byte    `json:"bytes"` // secp256k1: 33字节压缩形式; ed25519: 32字节
}

// Equal 比较两个公钥是否相同
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.Algo == other.Algo && bytes.Equal(pk.Bytes, other.Bytes)
}

// Verify 使用标准验证算法校验签名
// secp256k1: 对消息的 SHA-256 摘要验证 64 字节紧凑签名
// ed25519: 直接对消息本体验证
func (pk PublicKey) Verify(message, signature []byte) bool {
	if len(signature) != SignatureSize {
		return false
	}

	switch pk.Algo {
	case AlgoSecp256k1:
		pub, err := btcec.ParsePubKey(pk.Bytes)
		if err != nil {
			return false
		}
		var r, s btcec.ModNScalar
		if overflow := r.SetByteSlice(signature[:32]); overflow {
			return false
		}
		if overflow := s.SetByteSlice(signature[32:]); overflow {
			return false
		}
		hash := sha256.Sum256(message)
		return ecdsa.NewSignature(&r, &s).Verify(hash[:], pub)

	case AlgoEd25519:
		if len(pk.Bytes) != Ed25519PubKeySize {
			return false
		}
		return ed25519.Verify(ed25519.PublicKey(pk.Bytes), message, signature)

	default:
		return false
	}
}

// PrivateKey 私钥
// 严格单一持有：不可打印、不可序列化进日志或错误信息，
// 用完后调用 Zero 清除
type PrivateKey struct {
	algo Algorithm
	d    SecureBytes
}

// NewPrivateKeyFromBytes 从原始 32 字节构造私钥
// secp256k1 私钥必须落在曲线标量有效范围 (0, n) 内
func NewPrivateKeyFromBytes(algo Algorithm, raw []byte) (*PrivateKey, error) {
	if len(raw) != PrivateKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPrivateKey, PrivateKeySize, len(raw))
	}

	switch algo {
	case AlgoSecp256k1:
		var scalar btcec.ModNScalar
		if overflow := scalar.SetByteSlice(raw); overflow {
			return nil, fmt.Errorf("%w: scalar exceeds curve order", ErrInvalidPrivateKey)
		}
		if scalar.IsZero() {
			return nil, fmt.Errorf("%w: zero scalar", ErrInvalidPrivateKey)
		}
		scalar.Zero()
	case AlgoEd25519:
		// ed25519 种子无范围约束
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidPrivateKey, algo)
	}

	return &PrivateKey{
		algo: algo,
		d:    SecureBytes(raw).Clone(),
	}, nil
}

// Algorithm 返回密钥算法
func (sk *PrivateKey) Algorithm() Algorithm {
	return sk.algo
}

// PublicKey 计算对应的公钥（纯函数，总是成功）
func (sk *PrivateKey) PublicKey() PublicKey {
	switch sk.algo {
	case AlgoSecp256k1:
		priv, _ := btcec.PrivKeyFromBytes(sk.d)
		return PublicKey{
			Algo:  AlgoSecp256k1,
			Bytes: priv.PubKey().SerializeCompressed(),
		}
	default:
		pub := ed25519.NewKeyFromSeed(sk.d).Public().(ed25519.PublicKey)
		return PublicKey{
			Algo:  AlgoEd25519,
			Bytes: []byte(pub),
		}
	}
}

// Sign 对消息产生 64 字节签名
//
// secp256k1: 确定性 ECDSA (RFC6979)，对消息的 SHA-256 摘要签名，
// 输出紧凑 r‖s 形式并做 low-S 规范化——许多链的验证方会以
// 可延展性为由拒绝 high-S 签名
//
// ed25519: 直接对消息本体产生标准 64 字节签名（算法内部自带哈希）
//
// message 必须是规范化签名文档的字节序列，拒绝空消息
func (sk *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(message) == 0 {
		return nil, ErrEmptySignBytes
	}

	switch sk.algo {
	case AlgoSecp256k1:
		priv, _ := btcec.PrivKeyFromBytes(sk.d)
		defer priv.Zero()
		hash := sha256.Sum256(message)
		// SignCompact 输出 [恢复码 1字节 | R 32字节 | S 32字节]，
		// 内部已做 RFC6979 确定性 nonce 与 low-S 规范化
		compact := ecdsa.SignCompact(priv, hash[:], true)
		return compact[1:], nil

	case AlgoEd25519:
		key := ed25519.NewKeyFromSeed(sk.d)
		sig := ed25519.Sign(key, message)
		for i := range key {
			key[i] = 0
		}
		return sig, nil

	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidPrivateKey, sk.algo)
	}
}

// Zero 清除私钥材料
func (sk *PrivateKey) Zero() {
	sk.d.Zero()
}

// String 实现 fmt.Stringer，永不输出密钥内容
func (sk *PrivateKey) String() string {
	return fmt.Sprintf("wallet.PrivateKey(%s, redacted)", sk.algo)
}

// GoString 防止 %#v 泄露密钥内容
func (sk *PrivateKey) GoString() string {
	return sk.String()
}
