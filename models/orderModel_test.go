package models

import (
	"errors"
	"testing"
)

func TestParseOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses {
		got, err := ParseOrderStatus(string(status))
		if err != nil {
			t.Errorf("expected %s to parse, got %v", status, err)
		}
		if got != status {
			t.Errorf("expected %s, got %s", status, got)
		}
	}

	for _, value := range []string{"", "pending", "Shipped", "RETURNED", "PAID"} {
		if _, err := ParseOrderStatus(value); !errors.Is(err, ErrInvalidOrderStatus) {
			t.Errorf("expected %q to be rejected, got %v", value, err)
		}
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for _, status := range PaymentStatuses {
		if got, err := ParsePaymentStatus(string(status)); err != nil || got != status {
			t.Errorf("expected %s to parse, got %s, %v", status, got, err)
		}
	}

	for _, value := range []string{"", "success", "PAID", "DELIVERED"} {
		if _, err := ParsePaymentStatus(value); !errors.Is(err, ErrInvalidPaymentState) {
			t.Errorf("expected %q to be rejected, got %v", value, err)
		}
	}
}

func TestParseRole(t *testing.T) {
	if role, err := ParseRole(" admin "); err != nil || role != RoleAdmin {
		t.Errorf("expected ADMIN, got %s, %v", role, err)
	}
	if _, err := ParseRole("superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}
