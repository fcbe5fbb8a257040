package wallet

import (
	"fmt"
	"strconv"
	"strings"
)

// BIP44 相关常量
const (
	// LunaCoinType Terra 链的 BIP44 Coin Type（SLIP-0044 注册值 330）
	// 参考: https://github.com/satoshilabs/slips/blob/master/slip-0044.md
	LunaCoinType uint32 = 330

	// BIP44Purpose BIP44 标准的 purpose 值
	BIP44Purpose uint32 = 44

	// HardenedOffset 硬化派生偏移量（保留高位，硬化索引不会与普通索引冲突）
	HardenedOffset uint32 = 0x80000000

	// DefaultAccount 默认账户索引
	DefaultAccount uint32 = 0

	// ExternalChain 外部链（用于接收地址）
	ExternalChain uint32 = 0

	// InternalChain 内部链（用于找零地址）
	InternalChain uint32 = 1

	// DefaultAddressIndex 默认地址索引
	DefaultAddressIndex uint32 = 0
)

// DerivationPath BIP32/BIP44 派生路径
// 路径只作为派生输入使用，不随密钥存储
type DerivationPath struct {
	Purpose      uint32 `json:"purpose"`       // 目的（通常为 44'）
	CoinType     uint32 `json:"coin_type"`     // 币种类型（Terra 为 330'）
	Account      uint32 `json:"account"`       // 账户
	Change       uint32 `json:"change"`        // 变化链（0=外部，1=内部）
	AddressIndex uint32 `json:"address_index"` // 地址索引
}

// DefaultDerivationPath 返回 Terra 默认派生路径
// m/44'/330'/0'/0/0
func DefaultDerivationPath() *DerivationPath {
	return &DerivationPath{
		Purpose:      BIP44Purpose,
		CoinType:     LunaCoinType,
		Account:      DefaultAccount,
		Change:       ExternalChain,
		AddressIndex: DefaultAddressIndex,
	}
}

// NewDerivationPath 创建新的派生路径（Terra coin type）
func NewDerivationPath(account, change, addressIndex uint32) *DerivationPath {
	return &DerivationPath{
		Purpose:      BIP44Purpose,
		CoinType:     LunaCoinType,
		Account:      account,
		Change:       change,
		AddressIndex: addressIndex,
	}
}

// ParseDerivationPath 解析派生路径字符串
// 支持格式: m/44'/330'/0'/0/0 或 44'/330'/0'/0/0
func ParseDerivationPath(path string) (*DerivationPath, error) {
	path = strings.TrimPrefix(path, "m/")
	path = strings.TrimPrefix(path, "M/")

	parts := strings.Split(path, "/")
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: expected 5 components, got %d", ErrInvalidPath, len(parts))
	}

	dp := &DerivationPath{}
	var err error

	// purpose / coin type / account 必须硬化
	dp.Purpose, err = parsePathComponent(parts[0], true)
	if err != nil {
		return nil, fmt.Errorf("%w: purpose: %v", ErrInvalidPath, err)
	}
	if dp.Purpose != BIP44Purpose {
		return nil, fmt.Errorf("%w: purpose: expected %d (BIP44), got %d", ErrInvalidPath, BIP44Purpose, dp.Purpose)
	}

	dp.CoinType, err = parsePathComponent(parts[1], true)
	if err != nil {
		return nil, fmt.Errorf("%w: coin type: %v", ErrInvalidPath, err)
	}

	dp.Account, err = parsePathComponent(parts[2], true)
	if err != nil {
		return nil, fmt.Errorf("%w: account: %v", ErrInvalidPath, err)
	}

	dp.Change, err = parsePathComponent(parts[3], false)
	if err != nil {
		return nil, fmt.Errorf("%w: change: %v", ErrInvalidPath, err)
	}
	if dp.Change > 1 {
		return nil, fmt.Errorf("%w: change: expected 0 or 1, got %d", ErrInvalidPath, dp.Change)
	}

	dp.AddressIndex, err = parsePathComponent(parts[4], false)
	if err != nil {
		return nil, fmt.Errorf("%w: address index: %v", ErrInvalidPath, err)
	}

	return dp, nil
}

// parsePathComponent 解析路径组件
// requireHardened: 是否要求硬化派生
func parsePathComponent(component string, requireHardened bool) (uint32, error) {
	isHardened := strings.HasSuffix(component, "'") || strings.HasSuffix(component, "H") || strings.HasSuffix(component, "h")

	if requireHardened && !isHardened {
		return 0, fmt.Errorf("hardened derivation required for %s", component)
	}
	if !requireHardened && isHardened {
		return 0, fmt.Errorf("hardened derivation not allowed for %s", component)
	}

	component = strings.TrimSuffix(component, "'")
	component = strings.TrimSuffix(component, "H")
	component = strings.TrimSuffix(component, "h")

	value, err := strconv.ParseUint(component, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", component)
	}
	// 索引值空间为 31 位，高位保留给硬化标记
	if value >= uint64(HardenedOffset) {
		return 0, fmt.Errorf("index %d exceeds value space", value)
	}

	return uint32(value), nil
}

// String 返回路径字符串表示
func (dp *DerivationPath) String() string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d",
		dp.Purpose,
		dp.CoinType,
		dp.Account,
		dp.Change,
		dp.AddressIndex,
	)
}

// ToUint32Array 转换为 uint32 数组（用于 hdkeychain 逐层派生）
// 返回包含硬化标记的完整路径
func (dp *DerivationPath) ToUint32Array() []uint32 {
	return []uint32{
		dp.Purpose + HardenedOffset,  // 硬化
		dp.CoinType + HardenedOffset, // 硬化
		dp.Account + HardenedOffset,  // 硬化
		dp.Change,                    // 非硬化
		dp.AddressIndex,              // 非硬化
	}
}

// WithAccount 返回使用指定账户的新路径
func (dp *DerivationPath) WithAccount(account uint32) *DerivationPath {
	newPath := *dp
	newPath.Account = account
	return &newPath
}

// WithAddressIndex 返回使用指定地址索引的新路径
func (dp *DerivationPath) WithAddressIndex(index uint32) *DerivationPath {
	newPath := *dp
	newPath.AddressIndex = index
	return &newPath
}

// NextAddress 返回下一个地址的路径
// 也是 BIP32 派生失败时标准规定的重试路径
func (dp *DerivationPath) NextAddress() *DerivationPath {
	return dp.WithAddressIndex(dp.AddressIndex + 1)
}

// Validate 验证路径是否有效
func (dp *DerivationPath) Validate() error {
	if dp.Purpose != BIP44Purpose {
		return fmt.Errorf("%w: purpose: expected %d, got %d", ErrInvalidPath, BIP44Purpose, dp.Purpose)
	}
	if dp.Change > 1 {
		return fmt.Errorf("%w: change: expected 0 or 1, got %d", ErrInvalidPath, dp.Change)
	}
	if dp.CoinType >= HardenedOffset || dp.Account >= HardenedOffset || dp.AddressIndex >= HardenedOffset {
		return fmt.Errorf("%w: index exceeds value space", ErrInvalidPath)
	}
	return nil
}

// TerraPathForAccount 返回指定账户的路径字符串
// m/44'/330'/{account}'/0/0
func TerraPathForAccount(account uint32) string {
	return NewDerivationPath(account, ExternalChain, DefaultAddressIndex).String()
}

// TerraPathForIndex 返回指定地址索引的路径字符串
func TerraPathForIndex(account, index uint32) string {
	return NewDerivationPath(account, ExternalChain, index).String()
}
