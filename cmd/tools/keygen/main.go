package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/weisyn/terra-go/client/core/wallet"
)

const defaultPrefix = "terra"

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Terra密钥生成工具")
		fmt.Println("用法:")
		fmt.Println("  terra-keygen generate <count>  - 生成指定数量的助记词与地址")
		fmt.Println("  terra-keygen validator         - 生成验证人身份密钥文件")
		fmt.Println("")
		fmt.Println("示例:")
		fmt.Println("  terra-keygen generate 5")
		fmt.Println("  terra-keygen validator")
		return
	}

	switch os.Args[1] {
	case "generate":
		count := 1
		if len(os.Args) >= 3 {
			fmt.Sscanf(os.Args[2], "%d", &count)
		}
		generateKeys(count)
	case "validator":
		generateValidatorKey()
	default:
		fmt.Printf("未知命令: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func generateKeys(count int) {
	fmt.Printf("🔑 生成 %d 个账户\n", count)
	fmt.Println("====================")

	mm := wallet.NewMnemonicManager()
	codec := wallet.NewAddressCodec(defaultPrefix)

	for i := 0; i < count; i++ {
		mnemonic, err := mm.GenerateMnemonic(wallet.Mnemonic24Words)
		if err != nil {
			log.Fatalf("生成助记词失败: %v", err)
		}

		key, err := wallet.DeriveKey(mnemonic, "", wallet.DefaultDerivationPath())
		if err != nil {
			log.Fatalf("派生密钥失败: %v", err)
		}

		address, err := codec.AccAddress(key.PublicKey())
		if err != nil {
			log.Fatalf("编码地址失败: %v", err)
		}
		key.Zero()

		fmt.Printf("账户 %d:\n", i+1)
		fmt.Printf("  助记词: %s\n", mnemonic)
		fmt.Printf("  地址:   %s\n", address)
		fmt.Println()
	}
}

func generateValidatorKey() {
	fmt.Println("🌱 生成验证人身份密钥文件")
	fmt.Println("======================")

	mm := wallet.NewMnemonicManager()
	codec := wallet.NewAddressCodec(defaultPrefix)

	mnemonic, err := mm.GenerateMnemonic(wallet.Mnemonic24Words)
	if err != nil {
		log.Fatalf("生成助记词失败: %v", err)
	}

	// 账户密钥 (secp256k1) 与共识身份密钥 (ed25519)
	accountKey, err := wallet.DeriveKey(mnemonic, "", wallet.DefaultDerivationPath())
	if err != nil {
		log.Fatalf("派生账户密钥失败: %v", err)
	}
	defer accountKey.Zero()

	consensusKey, err := wallet.DeriveEd25519Key(mnemonic, "")
	if err != nil {
		log.Fatalf("派生共识密钥失败: %v", err)
	}
	defer consensusKey.Zero()

	accountAddress, err := codec.AccAddress(accountKey.PublicKey())
	if err != nil {
		log.Fatalf("编码账户地址失败: %v", err)
	}
	valoperAddress, err := codec.ValOperAddress(accountKey.PublicKey())
	if err != nil {
		log.Fatalf("编码验证人地址失败: %v", err)
	}
	consAddress, err := codec.ConsAddress(consensusKey.PublicKey())
	if err != nil {
		log.Fatalf("编码共识地址失败: %v", err)
	}

	// 只输出地址，助记词单独打印，不落盘
	keys := map[string]string{
		"account_address":   accountAddress,
		"validator_address": valoperAddress,
		"consensus_address": consAddress,
	}

	jsonData, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		log.Fatalf("JSON编码失败: %v", err)
	}

	filename := "validator_keys.json"
	if err := os.WriteFile(filename, jsonData, 0o600); err != nil {
		log.Fatalf("写入文件失败: %v", err)
	}

	fmt.Printf("✅ 验证人地址已保存到: %s\n", filename)
	fmt.Println("\n助记词（只显示一次，请立即备份）:")
	fmt.Println(mnemonic)
}
