package wallet

import (
	"encoding/hex"
	"strings"
	"testing"
)

// 24词恢复测试向量（与其它语言实现交叉验证）
const (
	vectorMnemonic = "notice oak worry limit wrap speak medal online prefer cluster roof addict wrist behave treat actual wasp year salad speed social layer crew genius"
	vectorSeedHex  = "a2ae8846397b55d266af35acdbb18ba1d005f7ddbdd4ca7a804df83352eaf373f274ba0dc8ac1b2b25f19dfcb7fa8b30a240d2c6039d88963defc2f626003b2f"

	// 12词规范测试向量
	abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	abandonSeedHex  = "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
)

func TestGenerateMnemonic(t *testing.T) {
	mm := NewMnemonicManager()

	tests := []struct {
		name      string
		strength  MnemonicStrength
		wantWords int
		wantErr   bool
	}{
		{"12 words", Mnemonic12Words, 12, false},
		{"15 words", Mnemonic15Words, 15, false},
		{"18 words", Mnemonic18Words, 18, false},
		{"21 words", Mnemonic21Words, 21, false},
		{"24 words", Mnemonic24Words, 24, false},
		{"invalid strength", MnemonicStrength(100), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mnemonic, err := mm.GenerateMnemonic(tt.strength)
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateMnemonic() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got := mm.GetWordCount(mnemonic); got != tt.wantWords {
				t.Errorf("word count = %d, want %d", got, tt.wantWords)
			}
			if !mm.ValidateMnemonic(mnemonic) {
				t.Errorf("generated mnemonic failed validation")
			}
		})
	}
}

func TestValidateMnemonic(t *testing.T) {
	mm := NewMnemonicManager()

	tests := []struct {
		name     string
		mnemonic string
		want     bool
	}{
		{"valid 24 words", vectorMnemonic, true},
		{"valid 12 words", abandonMnemonic, true},
		{"empty", "", false},
		{"wrong word count", "abandon abandon abandon", false},
		{"word not in list", strings.Replace(abandonMnemonic, "about", "aboot", 1), false},
		// 词全部有效但校验和错误
		{"bad checksum", strings.Replace(abandonMnemonic, "about", "abandon", 1), false},
		{"extra spaces tolerated", "abandon  abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon  about", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mm.ValidateMnemonic(tt.mnemonic); got != tt.want {
				t.Errorf("ValidateMnemonic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateMnemonicWithDetails(t *testing.T) {
	mm := NewMnemonicManager()

	ok, reason := mm.ValidateMnemonicWithDetails("")
	if ok || reason == "" {
		t.Errorf("empty mnemonic should fail with a reason")
	}

	ok, reason = mm.ValidateMnemonicWithDetails(strings.Replace(abandonMnemonic, "about", "zzzz", 1))
	if ok || !strings.Contains(reason, "wordlist") {
		t.Errorf("unknown word should fail with wordlist reason, got %q", reason)
	}

	ok, reason = mm.ValidateMnemonicWithDetails(vectorMnemonic)
	if !ok || reason != "" {
		t.Errorf("valid mnemonic rejected: %q", reason)
	}
}

func TestMnemonicToSeed(t *testing.T) {
	mm := NewMnemonicManager()

	tests := []struct {
		name       string
		mnemonic   string
		passphrase string
		wantSeed   string
		wantErr    bool
	}{
		{"24 word vector", vectorMnemonic, "", vectorSeedHex, false},
		{"12 word canonical vector", abandonMnemonic, "TREZOR", "", false},
		{"abandon empty passphrase", abandonMnemonic, "", abandonSeedHex, false},
		{"invalid mnemonic", "not a mnemonic", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := mm.MnemonicToSeed(tt.mnemonic, tt.passphrase)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MnemonicToSeed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(seed) != 64 {
				t.Errorf("seed length = %d, want 64", len(seed))
			}
			if tt.wantSeed != "" && hex.EncodeToString(seed) != tt.wantSeed {
				t.Errorf("seed = %s, want %s", hex.EncodeToString(seed), tt.wantSeed)
			}
		})
	}
}

func TestSecureBytesZero(t *testing.T) {
	buf := SecureBytes{1, 2, 3, 4}
	buf.Zero()
	for i, b := range buf {
		if b != 0 {
			t.Errorf("byte %d not zeroed: %d", i, b)
		}
	}

	if got := buf.String(); strings.Contains(got, "1") {
		t.Errorf("String() leaked content: %q", got)
	}
}
