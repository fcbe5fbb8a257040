package wallet

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // 链地址格式固定使用 RIPEMD160
)

// 地址摘要长度（20 字节）
const AddressDigestSize = 20

// amino 公钥类型前缀（注册式编码：4 字节类型 + 1 字节长度）
var (
	aminoSecp256k1PubKeyPrefix = []byte{0xEB, 0x5A, 0xE9, 0x87, 0x21}
	aminoEd25519PubKeyPrefix   = []byte{0x16, 0x24, 0xDE, 0x64, 0x20}
)

// AddressCodec 公钥到 bech32 地址的编解码器
// 前缀由链配置提供（如 "terra"），核心不硬编码具体链
type AddressCodec struct {
	prefix string // 账户地址前缀
}

// NewAddressCodec 创建地址编解码器
func NewAddressCodec(prefix string) *AddressCodec {
	return &AddressCodec{prefix: prefix}
}

// Prefix 返回账户地址前缀
func (c *AddressCodec) Prefix() string {
	return c.prefix
}

// PubKeyDigest 计算公钥的 20 字节地址摘要
// secp256k1: ripemd160(sha256(压缩公钥))
// ed25519: sha256(公钥) 前 20 字节（共识地址约定）
func PubKeyDigest(pk PublicKey) ([]byte, error) {
	switch pk.Algo {
	case AlgoSecp256k1:
		if len(pk.Bytes) != CompressedPubKeySize {
			return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, CompressedPubKeySize, len(pk.Bytes))
		}
		shaDigest := sha256.Sum256(pk.Bytes)
		hasher := ripemd160.New()
		hasher.Write(shaDigest[:])
		return hasher.Sum(nil), nil

	case AlgoEd25519:
		if len(pk.Bytes) != Ed25519PubKeySize {
			return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, Ed25519PubKeySize, len(pk.Bytes))
		}
		shaDigest := sha256.Sum256(pk.Bytes)
		return shaDigest[:AddressDigestSize], nil

	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidPublicKey, pk.Algo)
	}
}

// AccAddress 账户地址，如 terra1...
func (c *AddressCodec) AccAddress(pk PublicKey) (string, error) {
	digest, err := PubKeyDigest(pk)
	if err != nil {
		return "", err
	}
	return encodeBech32(c.prefix, digest)
}

// ValOperAddress 验证人运营地址，如 terravaloper1...
// 与账户地址共用同一个公钥摘要，仅前缀不同
func (c *AddressCodec) ValOperAddress(pk PublicKey) (string, error) {
	digest, err := PubKeyDigest(pk)
	if err != nil {
		return "", err
	}
	return encodeBech32(c.prefix+"valoper", digest)
}

// ConsAddress 共识地址（ed25519 验证人身份），如 terravalcons1...
func (c *AddressCodec) ConsAddress(pk PublicKey) (string, error) {
	if pk.Algo != AlgoEd25519 {
		return "", fmt.Errorf("%w: consensus address requires ed25519 key", ErrInvalidPublicKey)
	}
	digest, err := PubKeyDigest(pk)
	if err != nil {
		return "", err
	}
	return encodeBech32(c.prefix+"valcons", digest)
}

// AccPubKey 账户公钥的 bech32 表示（amino 前缀 + 压缩公钥），如 terrapub1...
func (c *AddressCodec) AccPubKey(pk PublicKey) (string, error) {
	raw, err := aminoPubKeyBytes(pk)
	if err != nil {
		return "", err
	}
	return encodeBech32(c.prefix+"pub", raw)
}

// ValOperPubKey 验证人公钥的 bech32 表示，如 terravaloperpub1...
func (c *AddressCodec) ValOperPubKey(pk PublicKey) (string, error) {
	raw, err := aminoPubKeyBytes(pk)
	if err != nil {
		return "", err
	}
	return encodeBech32(c.prefix+"valoperpub", raw)
}

// DecodeAcc 解码账户地址并校验前缀，返回 20 字节摘要
func (c *AddressCodec) DecodeAcc(address string) ([]byte, error) {
	prefix, digest, err := DecodeAddress(address)
	if err != nil {
		return nil, err
	}
	if prefix != c.prefix {
		return nil, fmt.Errorf("%w: expected %q, got %q", ErrUnknownPrefix, c.prefix, prefix)
	}
	if len(digest) != AddressDigestSize {
		return nil, fmt.Errorf("%w: digest length %d", ErrChecksumMismatch, len(digest))
	}
	return digest, nil
}

// DecodeAddress 解码任意 bech32 地址，返回前缀与原始字节
// 校验和不匹配返回 ErrChecksumMismatch
func DecodeAddress(address string) (string, []byte, error) {
	prefix, data, err := bech32.Decode(address)
	if err != nil {
		// 框架错误与校验和错误统一归为校验失败
		return "", nil, fmt.Errorf("%w: %v", ErrChecksumMismatch, err)
	}

	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrChecksumMismatch, err)
	}
	return prefix, raw, nil
}

// encodeBech32 将原始字节按 5-bit 分组编码为 bech32
func encodeBech32(prefix string, raw []byte) (string, error) {
	converted, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert bits: %w", err)
	}
	encoded, err := bech32.Encode(prefix, converted)
	if err != nil {
		return "", fmt.Errorf("bech32 encode: %w", err)
	}
	return encoded, nil
}

// aminoPubKeyBytes 公钥的 amino 注册式字节（类型前缀 + 原始公钥）
func aminoPubKeyBytes(pk PublicKey) ([]byte, error) {
	switch pk.Algo {
	case AlgoSecp256k1:
		if len(pk.Bytes) != CompressedPubKeySize {
			return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, CompressedPubKeySize, len(pk.Bytes))
		}
		return append(append([]byte{}, aminoSecp256k1PubKeyPrefix...), pk.Bytes...), nil
	case AlgoEd25519:
		if len(pk.Bytes) != Ed25519PubKeySize {
			return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, Ed25519PubKeySize, len(pk.Bytes))
		}
		return append(append([]byte{}, aminoEd25519PubKeyPrefix...), pk.Bytes...), nil
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidPublicKey, pk.Algo)
	}
}
