package money_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/money"
	"github.com/shopspring/decimal"
)

func TestParseAmount_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10", "10"},
		{"10.50", "10.5"},
		{" 0.01 ", "0.01"},
		{"1234.56", "1234.56"},
	}
	for _, c := range cases {
		got, err := money.ParseAmount(c.in)
		if err != nil {
			t.Errorf("ParseAmount(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got.String() != c.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "", "  ", "10.5.5", "$10"} {
		if _, err := money.ParseAmount(in); !errors.Is(err, money.ErrInvalidAmount) {
			t.Errorf("ParseAmount(%q): got %v, want ErrInvalidAmount", in, err)
		}
	}
}

func TestParseAmount_NonPositive(t *testing.T) {
	for _, in := range []string{"0", "-5", "-0.01", "0.00"} {
		if _, err := money.ParseAmount(in); !errors.Is(err, money.ErrNonPositiveAmount) {
			t.Errorf("ParseAmount(%q): got %v, want ErrNonPositiveAmount", in, err)
		}
	}
}

func TestDecimal128RoundTrip(t *testing.T) {
	for _, s := range []string{"10", "10.50", "0.01", "99999.99"} {
		d := decimal.RequireFromString(s)
		stored := money.MustDecimal128(d)
		back, err := money.FromDecimal128(stored)
		if err != nil {
			t.Fatalf("FromDecimal128(%s): %v", s, err)
		}
		if !back.Equal(d) {
			t.Errorf("round trip %s: got %s", s, back)
		}
	}
}

func TestValidCurrency(t *testing.T) {
	for _, ok := range []string{"USD", "eur", "Gbp"} {
		if !money.ValidCurrency(ok) {
			t.Errorf("ValidCurrency(%q) = false, want true", ok)
		}
	}
	for _, bad := range []string{"", "US", "USDT", "U$D", "123"} {
		if money.ValidCurrency(bad) {
			t.Errorf("ValidCurrency(%q) = true, want false", bad)
		}
	}
}
