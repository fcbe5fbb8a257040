package wallet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// 跨实现地址向量（与其它语言的 SDK 测试一致）
const (
	goldenAccount     = "terra1jnzv225hwl3uxc5wtnlgr8mwy6nlt0vztv3qqm"
	goldenValOperPub  = "terravaloperpub1addwnpepqt8ha594svjn3nvfk4ggfn5n8xd3sm3cz6ztxyugwcuqzsuuhhfq5y7accr"
	goldenAccPub      = "terrapub1addwnpepqt8ha594svjn3nvfk4ggfn5n8xd3sm3cz6ztxyugwcuqzsuuhhfq5nwzrf9"
	secondaryMnemonic = "island relax shop such yellow opinion find know caught erode blue dolphin behind coach tattoo light focus snake common size analyst imitate employ walnut"
	secondaryAccount  = "terra1n3g37dsdlv7ryqftlkef8mhgqj4ny7p8v78lg7"
)

func goldenPubKey(t *testing.T) PublicKey {
	t.Helper()
	key, err := DeriveKey(rootKeyMnemonic, "", DefaultDerivationPath())
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	defer key.Zero()
	return key.PublicKey()
}

func TestAccAddressGoldenVectors(t *testing.T) {
	codec := NewAddressCodec("terra")

	addr, err := codec.AccAddress(goldenPubKey(t))
	if err != nil {
		t.Fatalf("AccAddress() error = %v", err)
	}
	if addr != goldenAccount {
		t.Errorf("account address = %s, want %s", addr, goldenAccount)
	}

	key2, err := DeriveKey(secondaryMnemonic, "", DefaultDerivationPath())
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	defer key2.Zero()
	addr2, err := codec.AccAddress(key2.PublicKey())
	if err != nil {
		t.Fatalf("AccAddress() error = %v", err)
	}
	if addr2 != secondaryAccount {
		t.Errorf("account address = %s, want %s", addr2, secondaryAccount)
	}
}

func TestPubKeyBech32GoldenVectors(t *testing.T) {
	codec := NewAddressCodec("terra")
	pub := goldenPubKey(t)

	valoperPub, err := codec.ValOperPubKey(pub)
	if err != nil {
		t.Fatalf("ValOperPubKey() error = %v", err)
	}
	if valoperPub != goldenValOperPub {
		t.Errorf("valoper pubkey = %s, want %s", valoperPub, goldenValOperPub)
	}

	accPub, err := codec.AccPubKey(pub)
	if err != nil {
		t.Fatalf("AccPubKey() error = %v", err)
	}
	if accPub != goldenAccPub {
		t.Errorf("account pubkey = %s, want %s", accPub, goldenAccPub)
	}
}

func TestValOperAddressSharesDigest(t *testing.T) {
	codec := NewAddressCodec("terra")
	pub := goldenPubKey(t)

	acc, err := codec.AccAddress(pub)
	if err != nil {
		t.Fatalf("AccAddress() error = %v", err)
	}
	valoper, err := codec.ValOperAddress(pub)
	if err != nil {
		t.Fatalf("ValOperAddress() error = %v", err)
	}
	if !strings.HasPrefix(valoper, "terravaloper1") {
		t.Errorf("valoper address = %s", valoper)
	}

	// 两个地址解码后摘要一致
	_, accDigest, err := DecodeAddress(acc)
	if err != nil {
		t.Fatalf("decode account: %v", err)
	}
	prefix, valDigest, err := DecodeAddress(valoper)
	if err != nil {
		t.Fatalf("decode valoper: %v", err)
	}
	if prefix != "terravaloper" {
		t.Errorf("valoper prefix = %s", prefix)
	}
	if !bytes.Equal(accDigest, valDigest) {
		t.Errorf("account and valoper digests differ")
	}
}

func TestConsAddress(t *testing.T) {
	codec := NewAddressCodec("terra")

	ed, err := DeriveEd25519Key(abandonMnemonic, "")
	if err != nil {
		t.Fatalf("DeriveEd25519Key() error = %v", err)
	}
	defer ed.Zero()

	cons, err := codec.ConsAddress(ed.PublicKey())
	if err != nil {
		t.Fatalf("ConsAddress() error = %v", err)
	}
	if !strings.HasPrefix(cons, "terravalcons1") {
		t.Errorf("consensus address = %s", cons)
	}

	_, digest, err := DecodeAddress(cons)
	if err != nil {
		t.Fatalf("decode consensus address: %v", err)
	}
	if len(digest) != AddressDigestSize {
		t.Errorf("digest length = %d, want %d", len(digest), AddressDigestSize)
	}

	// 共识地址只接受 ed25519 公钥
	if _, err := codec.ConsAddress(goldenPubKey(t)); !errors.Is(err, ErrInvalidPublicKey) {
		t.Errorf("secp256k1 consensus address: error = %v, want ErrInvalidPublicKey", err)
	}
}

func TestDecodeAcc(t *testing.T) {
	codec := NewAddressCodec("terra")

	digest, err := codec.DecodeAcc(goldenAccount)
	if err != nil {
		t.Fatalf("DecodeAcc() error = %v", err)
	}
	if len(digest) != AddressDigestSize {
		t.Errorf("digest length = %d, want %d", len(digest), AddressDigestSize)
	}

	// 往返一致
	reencoded, err := encodeBech32("terra", digest)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if reencoded != goldenAccount {
		t.Errorf("round trip = %s, want %s", reencoded, goldenAccount)
	}

	// 前缀不匹配
	if _, err := codec.DecodeAcc("cosmos1550dq7uuxsrtdtzdzn3fgkjkkzx6d0c2f0zmsg"); !errors.Is(err, ErrUnknownPrefix) && !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("foreign prefix: error = %v", err)
	}

	otherCodec := NewAddressCodec("cosmos")
	if _, err := otherCodec.DecodeAcc(goldenAccount); !errors.Is(err, ErrUnknownPrefix) {
		t.Errorf("prefix mismatch: error = %v, want ErrUnknownPrefix", err)
	}
}

func TestDecodeAddressChecksum(t *testing.T) {
	// 翻转数据部分的一个字符必须导致校验失败
	corrupted := []byte(goldenAccount)
	pos := len(corrupted) - 5
	if corrupted[pos] == 'q' {
		corrupted[pos] = 'p'
	} else {
		corrupted[pos] = 'q'
	}

	if _, _, err := DecodeAddress(string(corrupted)); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("corrupted address: error = %v, want ErrChecksumMismatch", err)
	}

	if _, _, err := DecodeAddress("not-bech32-at-all"); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("malformed address: error = %v, want ErrChecksumMismatch", err)
	}
}

func TestPubKeyDigestValidation(t *testing.T) {
	tests := []struct {
		name string
		pk   PublicKey
	}{
		{"secp wrong length", PublicKey{Algo: AlgoSecp256k1, Bytes: make([]byte, 32)}},
		{"ed25519 wrong length", PublicKey{Algo: AlgoEd25519, Bytes: make([]byte, 33)}},
		{"unknown algo", PublicKey{Algo: Algorithm("sr25519"), Bytes: make([]byte, 32)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PubKeyDigest(tt.pk); !errors.Is(err, ErrInvalidPublicKey) {
				t.Errorf("error = %v, want ErrInvalidPublicKey", err)
			}
		})
	}
}
