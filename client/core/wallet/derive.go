package wallet

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// maxDeriveRetries DeriveWithRetry 的最大索引递增次数
// BIP32 规定无效子密钥的概率低于 2^-127，实际不会连续命中
const maxDeriveRetries = 3

// DeriveKey 从助记词沿 BIP44 路径派生 secp256k1 私钥
//
// 确定性：相同的 (mnemonic, passphrase, path) 总是产生相同的私钥，
// 这是从备份短语恢复资金的基础，也是测试必须覆盖的性质
//
// 派生过程中的种子与各层扩展密钥在返回前全部清除
func DeriveKey(mnemonic, passphrase string, path *DerivationPath) (*PrivateKey, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}

	mm := NewMnemonicManager()
	seed, err := mm.MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer seed.Zero()

	// 主密钥使用 Bitcoin mainnet 参数
	// 只用于 HD 派生层，不影响地址格式
	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("%w: create master key: %v", ErrDerivationFailure, err)
	}
	defer masterKey.Zero()

	key := masterKey
	for depth, childIndex := range path.ToUint32Array() {
		child, err := key.Derive(childIndex)
		if err != nil {
			// 中间层也释放
			if key != masterKey {
				key.Zero()
			}
			if errors.Is(err, hdkeychain.ErrInvalidChild) {
				// 标准的恢复规则是该层索引 +1 重试，交由调用方决定
				return nil, fmt.Errorf("%w: invalid child at depth %d", ErrDerivationFailure, depth)
			}
			return nil, fmt.Errorf("%w: depth %d: %v", ErrDerivationFailure, depth, err)
		}
		if key != masterKey {
			key.Zero()
		}
		key = child
	}
	defer key.Zero()

	ecPriv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: extract private key: %v", ErrDerivationFailure, err)
	}
	defer ecPriv.Zero()

	return NewPrivateKeyFromBytes(AlgoSecp256k1, ecPriv.Serialize())
}

// DeriveKeyWithRetry 带 BIP32 恢复规则的派生
// 命中极小概率的无效子密钥时，按标准规则将地址索引 +1 后重试，
// 这是唯一内建的重试；其它派生错误原样上抛
func DeriveKeyWithRetry(mnemonic, passphrase string, path *DerivationPath) (*PrivateKey, *DerivationPath, error) {
	current := path
	for attempt := 0; ; attempt++ {
		key, err := DeriveKey(mnemonic, passphrase, current)
		if err == nil {
			return key, current, nil
		}
		if !errors.Is(err, ErrDerivationFailure) || attempt >= maxDeriveRetries {
			return nil, nil, err
		}
		current = current.NextAddress()
	}
}

// DeriveEd25519Key 从助记词派生 ed25519 身份密钥（验证人/共识身份）
// ed25519 不使用 BIP32 曲线运算，直接取 SLIP-0010 风格的种子切片：
// 对种子做一次 HMAC 展开后取前 32 字节作为签名种子
func DeriveEd25519Key(mnemonic, passphrase string) (*PrivateKey, error) {
	mm := NewMnemonicManager()
	seed, err := mm.MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer seed.Zero()

	return NewPrivateKeyFromBytes(AlgoEd25519, seed[:PrivateKeySize])
}

// MasterKeyString 返回主扩展私钥的 xprv 表示（调试/恢复校验用）
// 调用方不应持久化该值
func MasterKeyString(mnemonic, passphrase string) (string, error) {
	mm := NewMnemonicManager()
	seed, err := mm.MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return "", err
	}
	defer seed.Zero()

	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("%w: create master key: %v", ErrDerivationFailure, err)
	}
	defer masterKey.Zero()

	return masterKey.String(), nil
}
