package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/terra-go/client"
	"github.com/weisyn/terra-go/client/core/transfer"
	"github.com/weisyn/terra-go/client/core/transport"
	"github.com/weisyn/terra-go/client/core/tx"
	"github.com/weisyn/terra-go/client/core/wallet"
)

var (
	sendMemo    string
	sendFees    string
	sendGas     uint64
	sendAccount uint32
	sendIndex   uint32
	sendMode    string
	sendWait    bool
)

// sendCmd 转账命令
var sendCmd = &cobra.Command{
	Use:   "send <接收地址> <金额>",
	Short: "签名并广播转账交易",
	Long: `从助记词派生密钥，构建并签名 bank/MsgSend 交易后广播。

金额格式为 "<数量><面额>"，如 1000000uluna。
未指定 --fees 时向节点请求费用估算。

示例：
  terra-cli send terra1... 1000000uluna
  terra-cli send terra1... 1000000uluna --fees 200000uluna --gas 100000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		toAddress, amountStr := args[0], args[1]

		codec := wallet.NewAddressCodec(cfg.AccountPrefix)
		if _, err := codec.DecodeAcc(toAddress); err != nil {
			return fmt.Errorf("接收地址无效: %w", err)
		}

		amount, err := tx.ParseCoins(amountStr)
		if err != nil {
			return fmt.Errorf("金额无效: %w", err)
		}

		mnemonic, err := promptPassword("请输入助记词")
		if err != nil {
			return err
		}
		passphrase, err := promptPassword("请输入 BIP39 密码（无则直接回车）")
		if err != nil {
			return err
		}

		path := wallet.NewDerivationPath(sendAccount, wallet.ExternalChain, sendIndex)
		key, err := wallet.DeriveKey(mnemonic, passphrase, path)
		if err != nil {
			return fmt.Errorf("派生密钥: %w", err)
		}
		defer key.Zero()

		fromAddress, err := codec.AccAddress(key.PublicKey())
		if err != nil {
			return fmt.Errorf("编码地址: %w", err)
		}

		gas, err := resolveGasOptions()
		if err != nil {
			return err
		}

		c := client.New(cfg.LCDURL, cfg.ChainID, cfg.AccountPrefix)
		service := c.Transfer(gas)

		msg := tx.NewMsgSend(fromAddress, toAddress, amount)

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		spinner, _ := pterm.DefaultSpinner.Start("广播交易中...")
		result, err := service.Send(ctx, key, []tx.Msg{msg}, transfer.SendOptions{
			Memo: sendMemo,
			Mode: transport.BroadcastMode(sendMode),
		})
		if err != nil {
			if errors.Is(err, transport.ErrLedgerRejected) && result != nil {
				spinner.Fail("链上拒绝")
				pterm.Error.Printfln("code: %d", result.Code)
				pterm.Error.Printfln("raw_log: %s", result.RawLog)
				return err
			}
			spinner.Fail("广播失败")
			return err
		}
		spinner.Success("广播成功")

		pterm.Info.Printfln("txhash: %s", result.TxHash)

		if sendWait && cfg.WSURL != "" {
			return waitForInclusion(ctx, result.TxHash)
		}
		return nil
	},
}

// waitForInclusion 等待交易进块
func waitForInclusion(ctx context.Context, txHash string) error {
	listener, err := transport.NewTxListener(cfg.WSURL, nil)
	if err != nil {
		return err
	}
	defer listener.Close() //nolint:errcheck

	spinner, _ := pterm.DefaultSpinner.Start("等待进块...")
	event, err := listener.WaitForTx(ctx, txHash)
	if err != nil {
		spinner.Fail("等待超时")
		return err
	}
	spinner.Success(fmt.Sprintf("已进块，高度 %s", event.Height))
	return nil
}

// resolveGasOptions 根据命令行与配置确定 gas 偏好
func resolveGasOptions() (*transfer.GasOptions, error) {
	if sendFees != "" {
		return transfer.FixedGasOptions(sendFees, sendGas)
	}
	return transfer.EstimateGasOptions(cfg.GasPrices, cfg.GasAdjustment)
}

func init() {
	sendCmd.Flags().StringVar(&sendMemo, "memo", "", "交易备注")
	sendCmd.Flags().StringVar(&sendFees, "fees", "", "固定费用，如 200000uluna（为空时估算）")
	sendCmd.Flags().Uint64Var(&sendGas, "gas", 200000, "gas 上限（与 --fees 配合）")
	sendCmd.Flags().Uint32Var(&sendAccount, "account", 0, "BIP44 账户索引")
	sendCmd.Flags().Uint32Var(&sendIndex, "index", 0, "BIP44 地址索引")
	sendCmd.Flags().StringVar(&sendMode, "mode", "sync", "广播模式（block/sync/async）")
	sendCmd.Flags().BoolVar(&sendWait, "wait", false, "广播后等待进块（需配置 ws_url）")
}
