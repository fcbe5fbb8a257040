// Package wallet provides key management functionality for the Terra blockchain.
package wallet

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicStrength 助记词强度
type MnemonicStrength int

const (
	// Mnemonic12Words 12个助记词 (128 bits 熵)
	Mnemonic12Words MnemonicStrength = 128
	// Mnemonic15Words 15个助记词 (160 bits 熵)
	Mnemonic15Words MnemonicStrength = 160
	// Mnemonic18Words 18个助记词 (192 bits 熵)
	Mnemonic18Words MnemonicStrength = 192
	// Mnemonic21Words 21个助记词 (224 bits 熵)
	Mnemonic21Words MnemonicStrength = 224
	// Mnemonic24Words 24个助记词 (256 bits 熵)
	// Terra 生态默认使用 24 词助记词
	Mnemonic24Words MnemonicStrength = 256
)

// MnemonicManager 助记词管理器
type MnemonicManager struct {
	// wordList BIP39 固定 2048 词表（只读）
	wordList []string
}

// NewMnemonicManager 创建新的助记词管理器
func NewMnemonicManager() *MnemonicManager {
	return &MnemonicManager{
		wordList: bip39.GetWordList(),
	}
}

// GenerateMnemonic 生成助记词
// strength: 熵的位数，支持 128(12词), 160(15词), 192(18词), 224(21词), 256(24词)
func (m *MnemonicManager) GenerateMnemonic(strength MnemonicStrength) (string, error) {
	switch strength {
	case Mnemonic12Words, Mnemonic15Words, Mnemonic18Words, Mnemonic21Words, Mnemonic24Words:
		// 有效强度
	default:
		return "", fmt.Errorf("invalid mnemonic strength: %d, must be 128, 160, 192, 224, or 256", strength)
	}

	entropy := make([]byte, int(strength)/8)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}

	return mnemonic, nil
}

// ValidateMnemonic 验证助记词是否有效（词表 + 校验和）
func (m *MnemonicManager) ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalizeSpaces(mnemonic))
}

// ValidateMnemonicWithDetails 验证助记词并返回失败原因
func (m *MnemonicManager) ValidateMnemonicWithDetails(mnemonic string) (bool, string) {
	mnemonic = normalizeSpaces(strings.TrimSpace(mnemonic))

	if mnemonic == "" {
		return false, "mnemonic is empty"
	}

	words := strings.Split(mnemonic, " ")
	switch len(words) {
	case 12, 15, 18, 21, 24:
		// 有效词数
	default:
		return false, fmt.Sprintf("invalid word count: %d, expected 12, 15, 18, 21 or 24", len(words))
	}

	wordSet := make(map[string]bool, len(m.wordList))
	for _, word := range m.wordList {
		wordSet[word] = true
	}
	for i, word := range words {
		if !wordSet[word] {
			return false, fmt.Sprintf("word %d is not in the BIP39 wordlist", i+1)
		}
	}

	if !bip39.IsMnemonicValid(mnemonic) {
		return false, "checksum verification failed"
	}

	return true, ""
}

// MnemonicToSeed 将助记词转换为 64 字节种子
// passphrase 是可选的 BIP39 密码
// 返回的种子属于敏感材料，用完后调用方应使用 Zero 清除
func (m *MnemonicManager) MnemonicToSeed(mnemonic, passphrase string) (SecureBytes, error) {
	mnemonic = normalizeSpaces(strings.TrimSpace(mnemonic))
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	// PBKDF2 with HMAC-SHA512, 2048 轮
	seed := bip39.NewSeed(mnemonic, passphrase)
	return SecureBytes(seed), nil
}

// GetWordCount 获取助记词单词数量
func (m *MnemonicManager) GetWordCount(mnemonic string) int {
	mnemonic = strings.TrimSpace(mnemonic)
	if mnemonic == "" {
		return 0
	}
	return len(strings.Split(normalizeSpaces(mnemonic), " "))
}

// GetWordList 获取 BIP39 词表
func (m *MnemonicManager) GetWordList() []string {
	return m.wordList
}

// normalizeSpaces 规范化空格（将多个连续空格替换为单个空格）
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
