package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestReconcileCartQuantity(t *testing.T) {
	product := Product{ID: 1, Price: decimal.NewFromInt(1500), Stock: 5, IsActive: true}

	t.Run("new row within stock", func(t *testing.T) {
		got, err := ReconcileCartQuantity(product, 0, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 3 {
			t.Errorf("expected quantity 3, got %d", got)
		}
	})

	t.Run("second addition over stock is rejected wholesale", func(t *testing.T) {
		got, err := ReconcileCartQuantity(product, 3, 3)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if got != 3 {
			t.Errorf("expected quantity to stay 3, got %d", got)
		}
	})

	t.Run("fills stock exactly", func(t *testing.T) {
		got, err := ReconcileCartQuantity(product, 3, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 5 {
			t.Errorf("expected quantity 5, got %d", got)
		}
	})

	t.Run("single request larger than stock", func(t *testing.T) {
		if _, err := ReconcileCartQuantity(product, 0, 6); !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("expected ErrInsufficientStock, got %v", err)
		}
	})

	t.Run("inactive product", func(t *testing.T) {
		inactive := product
		inactive.IsActive = false
		if _, err := ReconcileCartQuantity(inactive, 0, 1); !errors.Is(err, ErrProductUnavailable) {
			t.Errorf("expected ErrProductUnavailable, got %v", err)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		for _, q := range []int{0, -2} {
			if _, err := ReconcileCartQuantity(product, 1, q); !errors.Is(err, ErrInvalidQuantity) {
				t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", q, err)
			}
		}
	})
}

func TestCheckCartQuantity(t *testing.T) {
	product := Product{Stock: 4, IsActive: true}

	if err := CheckCartQuantity(product, 4); err != nil {
		t.Errorf("expected quantity 4 to fit, got %v", err)
	}
	if err := CheckCartQuantity(product, 5); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if err := CheckCartQuantity(product, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}

	delisted := Product{Stock: 4, IsActive: false}
	if err := CheckCartQuantity(delisted, 2); !errors.Is(err, ErrProductUnavailable) {
		t.Errorf("expected ErrProductUnavailable for an inactive product, got %v", err)
	}
}

func TestCartItem_Subtotal(t *testing.T) {
	item := CartItem{Quantity: 3, Product: Product{Price: decimal.RequireFromString("1249.50")}}
	if got := item.Subtotal(); !got.Equal(decimal.RequireFromString("3748.50")) {
		t.Errorf("expected subtotal 3748.50, got %s", got)
	}
}
