package tx

import "strconv"

// StdFee 交易费用：各面额的费用金额 + gas 上限
// 附加到签名文档后不可变更
type StdFee struct {
	Amount Coins  `json:"amount"`
	Gas    string `json:"gas"`
}

// NewStdFee 创建费用结构
func NewStdFee(gas uint64, amount Coins) StdFee {
	if amount == nil {
		amount = Coins{}
	}
	return StdFee{
		Amount: amount,
		Gas:    strconv.FormatUint(gas, 10),
	}
}

// GasLimit 解析 gas 上限
func (f StdFee) GasLimit() uint64 {
	gas, _ := strconv.ParseUint(f.Gas, 10, 64)
	return gas
}
