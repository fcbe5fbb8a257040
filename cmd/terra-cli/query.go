package main

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/terra-go/client"
)

// queryCmd 查询命令
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "链上查询",
	Long:  "查询账户认证信息与余额",
}

// queryAccountCmd 查询账户
var queryAccountCmd = &cobra.Command{
	Use:   "account <地址>",
	Short: "查询账户的 account_number 与 sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(cfg.LCDURL, cfg.ChainID, cfg.AccountPrefix)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		account, err := c.Account(ctx, args[0])
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("账户认证信息")
		pterm.Info.Printfln("地址:           %s", account.Address)
		pterm.Info.Printfln("account_number: %d", account.AccountNumber)
		pterm.Info.Printfln("sequence:       %d", account.Sequence)
		return nil
	},
}

// queryBalanceCmd 查询余额
var queryBalanceCmd = &cobra.Command{
	Use:   "balance <地址>",
	Short: "查询账户各面额余额",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(cfg.LCDURL, cfg.ChainID, cfg.AccountPrefix)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		coins, err := c.Balances(ctx, args[0])
		if err != nil {
			return err
		}

		if len(coins) == 0 {
			pterm.Info.Println("余额为空")
			return nil
		}

		data := [][]string{{"面额", "数量"}}
		for _, coin := range coins {
			data = append(data, []string{coin.Denom, coin.Amount})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	queryCmd.AddCommand(queryAccountCmd)
	queryCmd.AddCommand(queryBalanceCmd)
}
