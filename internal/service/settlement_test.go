package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettlementAmounts(t *testing.T) {
	// entryFee 40, pool 80, 10% fee: winner takes 72, platform keeps 8.
	payout, fee := SettlementAmounts(decimal.NewFromInt(40), 10)
	if !payout.Equal(decimal.NewFromInt(72)) {
		t.Errorf("payout = %s, want 72", payout)
	}
	if !fee.Equal(decimal.NewFromInt(8)) {
		t.Errorf("fee = %s, want 8", fee)
	}
}

func TestSettlementAmountsFractionalFee(t *testing.T) {
	payout, fee := SettlementAmounts(decimal.RequireFromString("12.50"), 10)
	if !payout.Equal(decimal.RequireFromString("22.50")) {
		t.Errorf("payout = %s, want 22.50", payout)
	}
	if !fee.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("fee = %s, want 2.50", fee)
	}
}

// The escrowed pool is always fully accounted for: payout plus retained
// fee equals both entry fees, with nothing lost to rounding.
func TestSettlementConservesPool(t *testing.T) {
	fees := []string{"1", "40", "12.50", "0.01", "99999.99", "33.33"}
	for _, f := range fees {
		entryFee := decimal.RequireFromString(f)
		payout, fee := SettlementAmounts(entryFee, 10)
		pool := entryFee.Mul(decimal.NewFromInt(2))
		if !payout.Add(fee).Equal(pool) {
			t.Errorf("entryFee %s: payout %s + fee %s != pool %s", entryFee, payout, fee, pool)
		}
	}
}

func TestSettlementZeroFeePercent(t *testing.T) {
	payout, fee := SettlementAmounts(decimal.NewFromInt(40), 0)
	if !payout.Equal(decimal.NewFromInt(80)) {
		t.Errorf("payout = %s, want full pool 80", payout)
	}
	if !fee.IsZero() {
		t.Errorf("fee = %s, want 0", fee)
	}
}
