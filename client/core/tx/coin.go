// Package tx provides canonical transaction construction and signing for the Terra blockchain.
package tx

import (
	"fmt"
	"strconv"
	"strings"
)

// Coin 单一面额的金额
// 金额序列化为十进制字符串而非二进制整数，遵循链的 JSON 规范签名约定：
// 无前导零、整数金额无小数点，避免端序与位宽歧义
//
// 注意：字段声明顺序即序列化顺序，是链上验证方比对字节的线格式约定
type Coin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

// NewInt64Coin 创建整数金额的 Coin
func NewInt64Coin(denom string, amount uint64) Coin {
	return Coin{
		Amount: strconv.FormatUint(amount, 10),
		Denom:  denom,
	}
}

// NewDecCoin 创建带小数的 Coin（gas 单价等场景）
func NewDecCoin(denom string, amount string) Coin {
	return Coin{
		Amount: amount,
		Denom:  denom,
	}
}

// ParseCoin 解析 "698uluna" 形式的金额字符串
// 支持小数数字部分（用于 gas 单价），面额部分为小写字母
func ParseCoin(s string) (Coin, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coin{}, fmt.Errorf("%w: empty string", ErrInvalidCoin)
	}

	split := len(s)
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			split = i
			break
		}
	}
	amount, denom := s[:split], s[split:]
	if amount == "" || denom == "" {
		return Coin{}, fmt.Errorf("%w: %q", ErrInvalidCoin, s)
	}
	if _, err := strconv.ParseFloat(amount, 64); err != nil {
		return Coin{}, fmt.Errorf("%w: amount %q", ErrInvalidCoin, amount)
	}

	return Coin{Amount: amount, Denom: denom}, nil
}

// ParseCoins 解析逗号分隔的金额列表，如 "698uluna,20ukrw"
func ParseCoins(s string) (Coins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	coins := make(Coins, 0, len(parts))
	for _, part := range parts {
		coin, err := ParseCoin(part)
		if err != nil {
			return nil, err
		}
		coins = append(coins, coin)
	}
	return coins, nil
}

// String 返回 "698uluna" 形式
func (c Coin) String() string {
	return c.Amount + c.Denom
}

// Coins 金额列表，顺序按调用方提供的顺序保留
type Coins []Coin

// String 返回逗号分隔表示
func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
