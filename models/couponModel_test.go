package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestCoupon_IsValid(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	base := Coupon{
		Code:            "FESTIVE10",
		DiscountPercent: decimal.NewFromInt(10),
		ValidFrom:       now.Add(-24 * time.Hour),
		ValidTill:       timePtr(now.Add(24 * time.Hour)),
		UsageLimit:      intPtr(5),
		UsedCount:       1,
		IsActive:        true,
	}

	tests := []struct {
		name   string
		mutate func(c *Coupon)
		at     time.Time
		want   bool
	}{
		{name: "inside window", mutate: func(c *Coupon) {}, at: now, want: true},
		{name: "inactive", mutate: func(c *Coupon) { c.IsActive = false }, at: now, want: false},
		{name: "before valid from", mutate: func(c *Coupon) {}, at: now.Add(-48 * time.Hour), want: false},
		{name: "exactly at valid from", mutate: func(c *Coupon) {}, at: now.Add(-24 * time.Hour), want: true},
		{name: "exactly at valid till", mutate: func(c *Coupon) {}, at: now.Add(24 * time.Hour), want: false},
		{name: "after valid till", mutate: func(c *Coupon) {}, at: now.Add(72 * time.Hour), want: false},
		{name: "no end date", mutate: func(c *Coupon) { c.ValidTill = nil }, at: now.Add(1000 * time.Hour), want: true},
		{name: "usage exhausted", mutate: func(c *Coupon) { c.UsedCount = 5 }, at: now, want: false},
		{name: "usage over limit", mutate: func(c *Coupon) { c.UsedCount = 9 }, at: now, want: false},
		{name: "no usage limit", mutate: func(c *Coupon) { c.UsageLimit = nil; c.UsedCount = 1000 }, at: now, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := base
			tt.mutate(&coupon)
			if got := coupon.IsValid(tt.at); got != tt.want {
				t.Errorf("expected IsValid %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCoupon_CalculateDiscount(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	capped := Coupon{
		Code:              "SILK10",
		DiscountPercent:   decimal.NewFromInt(10),
		MinOrderAmount:    decimal.NewNullDecimal(decimal.NewFromInt(500)),
		MaxDiscountAmount: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		ValidFrom:         now.Add(-time.Hour),
		IsActive:          true,
	}

	t.Run("caps at max discount", func(t *testing.T) {
		got := capped.CalculateDiscount(decimal.NewFromInt(2000), now)
		if !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected discount 100, got %s", got)
		}
	})

	t.Run("below cap returns percentage", func(t *testing.T) {
		got := capped.CalculateDiscount(decimal.NewFromInt(800), now)
		if !got.Equal(decimal.NewFromInt(80)) {
			t.Errorf("expected discount 80, got %s", got)
		}
	})

	t.Run("below minimum order amount", func(t *testing.T) {
		got := capped.CalculateDiscount(decimal.NewFromInt(499), now)
		if !got.IsZero() {
			t.Errorf("expected zero discount, got %s", got)
		}
	})

	t.Run("exactly minimum order amount", func(t *testing.T) {
		got := capped.CalculateDiscount(decimal.NewFromInt(500), now)
		if !got.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected discount 50, got %s", got)
		}
	})

	t.Run("uncapped", func(t *testing.T) {
		coupon := capped
		coupon.MaxDiscountAmount = decimal.NullDecimal{}
		got := coupon.CalculateDiscount(decimal.NewFromInt(2000), now)
		if !got.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected discount 200, got %s", got)
		}
	})

	t.Run("fractional amounts round to paise", func(t *testing.T) {
		coupon := Coupon{DiscountPercent: decimal.RequireFromString("12.5"), ValidFrom: now.Add(-time.Hour), IsActive: true}
		got := coupon.CalculateDiscount(decimal.RequireFromString("999.99"), now)
		if !got.Equal(decimal.RequireFromString("125")) {
			t.Errorf("expected discount 125, got %s", got)
		}
	})

	t.Run("zero outside window or past usage limit", func(t *testing.T) {
		expired := capped
		expired.ValidTill = timePtr(now.Add(-time.Minute))

		notStarted := capped
		notStarted.ValidFrom = now.Add(time.Minute)

		exhausted := capped
		exhausted.UsageLimit = intPtr(3)
		exhausted.UsedCount = 3

		for name, coupon := range map[string]Coupon{"expired": expired, "not started": notStarted, "exhausted": exhausted} {
			for _, amount := range []int64{0, 500, 2000, 1000000} {
				if got := coupon.CalculateDiscount(decimal.NewFromInt(amount), now); !got.IsZero() {
					t.Errorf("%s: expected zero discount for %d, got %s", name, amount, got)
				}
			}
		}
	})

	t.Run("never exceeds max discount", func(t *testing.T) {
		for _, percent := range []int64{0, 1, 10, 50, 99, 100} {
			coupon := capped
			coupon.DiscountPercent = decimal.NewFromInt(percent)
			for _, amount := range []int64{500, 999, 1000, 5000, 123456} {
				got := coupon.CalculateDiscount(decimal.NewFromInt(amount), now)
				if got.GreaterThan(coupon.MaxDiscountAmount.Decimal) {
					t.Errorf("percent %d amount %d: discount %s exceeds cap", percent, amount, got)
				}
			}
		}
	})
}

func TestCoupon_Validate(t *testing.T) {
	for _, tc := range []struct {
		percent string
		wantErr bool
	}{
		{"0", false},
		{"100", false},
		{"37.5", false},
		{"-1", true},
		{"100.01", true},
	} {
		coupon := Coupon{Code: "X", DiscountPercent: decimal.RequireFromString(tc.percent)}
		err := coupon.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("percent %s: expected error %v, got %v", tc.percent, tc.wantErr, err)
		}
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		mutate func(c *Coupon)
		want   error
	}{
		{name: "limits set", mutate: func(c *Coupon) {
			c.MinOrderAmount = decimal.NewNullDecimal(decimal.NewFromInt(500))
			c.MaxDiscountAmount = decimal.NewNullDecimal(decimal.NewFromInt(100))
		}},
		{name: "zero cap", mutate: func(c *Coupon) { c.MaxDiscountAmount = decimal.NewNullDecimal(decimal.Zero) }},
		{name: "negative cap", mutate: func(c *Coupon) {
			c.MaxDiscountAmount = decimal.NewNullDecimal(decimal.NewFromInt(-500))
		}, want: ErrNegativeCouponLimit},
		{name: "negative minimum", mutate: func(c *Coupon) {
			c.MinOrderAmount = decimal.NewNullDecimal(decimal.NewFromInt(-1))
		}, want: ErrNegativeCouponLimit},
		{name: "ends after start", mutate: func(c *Coupon) { c.ValidTill = timePtr(start.Add(time.Hour)) }},
		{name: "ends at start", mutate: func(c *Coupon) { c.ValidTill = timePtr(start) }, want: ErrInvalidCouponWindow},
		{name: "ends before start", mutate: func(c *Coupon) { c.ValidTill = timePtr(start.Add(-time.Hour)) }, want: ErrInvalidCouponWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := Coupon{Code: "X", DiscountPercent: decimal.NewFromInt(10), ValidFrom: start}
			tt.mutate(&coupon)
			if err := coupon.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCouponInput_Apply(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	active := true
	in := CouponInput{Code: "  DIWALI  ", DiscountPercent: decimal.NewFromInt(15), IsActive: &active}

	var coupon Coupon
	if err := in.Apply(&coupon, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coupon.Code != "DIWALI" {
		t.Errorf("expected trimmed code, got %q", coupon.Code)
	}
	if !coupon.ValidFrom.Equal(now) {
		t.Errorf("expected valid from to default to now, got %v", coupon.ValidFrom)
	}
	if !coupon.IsActive {
		t.Error("expected coupon to be active")
	}
}
