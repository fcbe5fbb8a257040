package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/terra-go/client/core/wallet"
)

var (
	keysWords   int
	keysAccount uint32
	keysIndex   uint32
)

// keysCmd 密钥相关命令
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "密钥管理",
	Long:  "生成助记词、从助记词恢复地址",
}

// keysNewCmd 生成新助记词
var keysNewCmd = &cobra.Command{
	Use:   "new",
	Short: "生成新助记词并显示地址",
	Long: `生成 BIP39 助记词并派生默认路径地址。

助记词只显示一次，不会写入磁盘，请立即抄写备份。

示例：
  terra-cli keys new              # 24词助记词
  terra-cli keys new --words 12   # 12词助记词`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var strength wallet.MnemonicStrength
		switch keysWords {
		case 12:
			strength = wallet.Mnemonic12Words
		case 24:
			strength = wallet.Mnemonic24Words
		default:
			return fmt.Errorf("不支持的助记词长度: %d（支持 12 或 24）", keysWords)
		}

		mm := wallet.NewMnemonicManager()
		mnemonic, err := mm.GenerateMnemonic(strength)
		if err != nil {
			return fmt.Errorf("生成助记词: %w", err)
		}

		pterm.DefaultSection.Println("助记词（只显示一次，请立即备份）")
		pterm.Warning.Println(mnemonic)

		return showAddress(mnemonic, "")
	},
}

// keysRecoverCmd 从助记词恢复
var keysRecoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "从助记词恢复地址",
	Long: `从已有助记词恢复账户地址。

助记词通过隐藏输入读取，不会出现在命令行历史中。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mnemonic, err := promptPassword("请输入助记词")
		if err != nil {
			return err
		}

		mm := wallet.NewMnemonicManager()
		if ok, reason := mm.ValidateMnemonicWithDetails(mnemonic); !ok {
			return fmt.Errorf("助记词无效: %s", reason)
		}

		passphrase, err := promptPassword("请输入 BIP39 密码（无则直接回车）")
		if err != nil {
			return err
		}

		return showAddress(mnemonic, passphrase)
	},
}

// showAddress 派生并展示地址信息
func showAddress(mnemonic, passphrase string) error {
	path := wallet.NewDerivationPath(keysAccount, wallet.ExternalChain, keysIndex)
	key, err := wallet.DeriveKey(mnemonic, passphrase, path)
	if err != nil {
		return fmt.Errorf("派生密钥: %w", err)
	}
	defer key.Zero()

	codec := wallet.NewAddressCodec(cfg.AccountPrefix)
	pub := key.PublicKey()

	address, err := codec.AccAddress(pub)
	if err != nil {
		return fmt.Errorf("编码地址: %w", err)
	}
	valoper, err := codec.ValOperAddress(pub)
	if err != nil {
		return fmt.Errorf("编码验证人地址: %w", err)
	}
	pubStr, err := codec.AccPubKey(pub)
	if err != nil {
		return fmt.Errorf("编码公钥: %w", err)
	}

	pterm.DefaultSection.Println("账户信息")
	pterm.Info.Printfln("派生路径:   %s", path.String())
	pterm.Info.Printfln("账户地址:   %s", address)
	pterm.Info.Printfln("验证人地址: %s", valoper)
	pterm.Info.Printfln("公钥:       %s", pubStr)
	return nil
}

func init() {
	keysCmd.AddCommand(keysNewCmd)
	keysCmd.AddCommand(keysRecoverCmd)

	keysCmd.PersistentFlags().IntVar(&keysWords, "words", 24, "助记词单词数（12 或 24）")
	keysCmd.PersistentFlags().Uint32Var(&keysAccount, "account", 0, "BIP44 账户索引")
	keysCmd.PersistentFlags().Uint32Var(&keysIndex, "index", 0, "BIP44 地址索引")
}
