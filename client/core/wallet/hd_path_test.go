package wallet

import (
	"errors"
	"testing"
)

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    *DerivationPath
		wantErr bool
	}{
		{
			name: "default terra path",
			path: "m/44'/330'/0'/0/0",
			want: &DerivationPath{Purpose: 44, CoinType: 330, Account: 0, Change: 0, AddressIndex: 0},
		},
		{
			name: "no m prefix",
			path: "44'/330'/2'/0/7",
			want: &DerivationPath{Purpose: 44, CoinType: 330, Account: 2, Change: 0, AddressIndex: 7},
		},
		{
			name: "h suffix accepted",
			path: "m/44h/330h/0h/1/3",
			want: &DerivationPath{Purpose: 44, CoinType: 330, Account: 0, Change: 1, AddressIndex: 3},
		},
		{name: "too few components", path: "m/44'/330'/0'", wantErr: true},
		{name: "too many components", path: "m/44'/330'/0'/0/0/0", wantErr: true},
		{name: "purpose not hardened", path: "m/44/330'/0'/0/0", wantErr: true},
		{name: "coin type not hardened", path: "m/44'/330/0'/0/0", wantErr: true},
		{name: "account not hardened", path: "m/44'/330'/0/0/0", wantErr: true},
		{name: "change hardened", path: "m/44'/330'/0'/0'/0", wantErr: true},
		{name: "index hardened", path: "m/44'/330'/0'/0/0'", wantErr: true},
		{name: "wrong purpose", path: "m/49'/330'/0'/0/0", wantErr: true},
		{name: "change out of range", path: "m/44'/330'/0'/2/0", wantErr: true},
		{name: "index exceeds 31 bits", path: "m/44'/330'/0'/0/2147483648", wantErr: true},
		{name: "not a number", path: "m/44'/330'/x'/0/0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDerivationPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDerivationPath(%q) expected error", tt.path)
				}
				if !errors.Is(err, ErrInvalidPath) {
					t.Errorf("error = %v, want ErrInvalidPath", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDerivationPath(%q) error = %v", tt.path, err)
			}
			if *got != *tt.want {
				t.Errorf("ParseDerivationPath(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDerivationPathString(t *testing.T) {
	dp := DefaultDerivationPath()
	if got := dp.String(); got != "m/44'/330'/0'/0/0" {
		t.Errorf("String() = %q", got)
	}

	if got := TerraPathForAccount(3); got != "m/44'/330'/3'/0/0" {
		t.Errorf("TerraPathForAccount(3) = %q", got)
	}
	if got := TerraPathForIndex(1, 9); got != "m/44'/330'/1'/0/9" {
		t.Errorf("TerraPathForIndex(1, 9) = %q", got)
	}

	// String 和 Parse 互逆
	parsed, err := ParseDerivationPath(dp.String())
	if err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}
	if *parsed != *dp {
		t.Errorf("round trip mismatch: %+v != %+v", parsed, dp)
	}
}

func TestToUint32Array(t *testing.T) {
	dp := NewDerivationPath(1, 0, 5)
	got := dp.ToUint32Array()
	want := []uint32{
		44 + HardenedOffset,
		330 + HardenedOffset,
		1 + HardenedOffset,
		0,
		5,
	}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestPathModifiers(t *testing.T) {
	dp := DefaultDerivationPath()

	acct := dp.WithAccount(4)
	if acct.Account != 4 || dp.Account != 0 {
		t.Errorf("WithAccount should not mutate original")
	}

	next := dp.NextAddress()
	if next.AddressIndex != 1 || dp.AddressIndex != 0 {
		t.Errorf("NextAddress should return index+1 copy")
	}
}

func TestPathValidate(t *testing.T) {
	if err := DefaultDerivationPath().Validate(); err != nil {
		t.Errorf("default path should validate: %v", err)
	}

	bad := &DerivationPath{Purpose: 44, CoinType: 330, Account: 0, Change: 5, AddressIndex: 0}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("invalid change should fail with ErrInvalidPath, got %v", err)
	}

	overflow := &DerivationPath{Purpose: 44, CoinType: 330, Account: HardenedOffset, Change: 0, AddressIndex: 0}
	if err := overflow.Validate(); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("overflow account should fail with ErrInvalidPath, got %v", err)
	}
}
