package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/weisyn/terra-go/client/pkg/config"
)

var cfg *config.Config

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "terra-cli",
	Short: "Terra 链命令行客户端",
	Long:  "密钥管理、交易签名与广播的命令行工具",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("加载配置: %w", err)
		}
		return nil
	},
}

func main() {
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(queryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// promptPassword 隐藏回显读取密码/助记词
func promptPassword(prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("读取输入: %w", err)
	}
	return string(raw), nil
}
