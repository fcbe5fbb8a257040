package tx

import (
	"errors"
	"testing"
)

func TestParseCoin(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Coin
		wantErr bool
	}{
		{"integer amount", "698uluna", Coin{Amount: "698", Denom: "uluna"}, false},
		{"decimal amount", "0.015uluna", Coin{Amount: "0.015", Denom: "uluna"}, false},
		{"large amount", "100000000uluna", Coin{Amount: "100000000", Denom: "uluna"}, false},
		{"surrounding spaces", "  20ukrw ", Coin{Amount: "20", Denom: "ukrw"}, false},
		{"empty", "", Coin{}, true},
		{"no denom", "698", Coin{}, true},
		{"no amount", "uluna", Coin{}, true},
		{"double dot", "1.2.3uluna", Coin{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoin(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoin(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCoin) {
					t.Errorf("error = %v, want ErrInvalidCoin", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseCoin(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCoins(t *testing.T) {
	coins, err := ParseCoins("698uluna,20ukrw")
	if err != nil {
		t.Fatalf("ParseCoins() error = %v", err)
	}
	if len(coins) != 2 {
		t.Fatalf("len = %d, want 2", len(coins))
	}
	// 顺序按输入保留
	if coins[0].Denom != "uluna" || coins[1].Denom != "ukrw" {
		t.Errorf("order not preserved: %v", coins)
	}
	if coins.String() != "698uluna,20ukrw" {
		t.Errorf("String() = %q", coins.String())
	}

	empty, err := ParseCoins("")
	if err != nil || empty != nil {
		t.Errorf("empty input: coins = %v, err = %v", empty, err)
	}

	if _, err := ParseCoins("698uluna,bogus"); !errors.Is(err, ErrInvalidCoin) {
		t.Errorf("invalid element: error = %v, want ErrInvalidCoin", err)
	}
}

func TestNewInt64Coin(t *testing.T) {
	c := NewInt64Coin("uluna", 698)
	if c.Amount != "698" || c.Denom != "uluna" {
		t.Errorf("NewInt64Coin() = %+v", c)
	}
	if c.String() != "698uluna" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestNewStdFee(t *testing.T) {
	fee := NewStdFee(46467, Coins{NewInt64Coin("uluna", 698)})
	if fee.Gas != "46467" {
		t.Errorf("Gas = %q, want 46467", fee.Gas)
	}
	if got := fee.GasLimit(); got != 46467 {
		t.Errorf("GasLimit() = %d, want 46467", got)
	}
}
