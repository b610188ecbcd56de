package utils

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hsz/sarees-api/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	user := models.User{ID: 9, Name: "Meera", Email: "meera@example.com", Role: models.RoleAdmin}

	token, claims, err := GenerateToken(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.ID == "" {
		t.Error("expected token id to be set")
	}

	parsed, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.UserID != 9 || parsed.Email != user.Email || !parsed.IsAdmin() {
		t.Errorf("unexpected claims: %+v", parsed)
	}
	if parsed.ID != claims.ID {
		t.Errorf("expected jti %s, got %s", claims.ID, parsed.ID)
	}

	t.Run("wrong secret", func(t *testing.T) {
		if _, err := ParseToken(token, "other"); err == nil {
			t.Error("expected signature error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired, _, err := GenerateToken(user, "secret", -time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := ParseToken(expired, "secret"); !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("missing secret", func(t *testing.T) {
		if _, _, err := GenerateToken(user, "", time.Hour); !errors.Is(err, ErrMissingSecret) {
			t.Errorf("expected ErrMissingSecret, got %v", err)
		}
	})
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret!" {
		t.Error("expected password to be hashed")
	}
	if err := ComparePasswords(hash, "s3cret!"); err != nil {
		t.Errorf("expected password to match, got %v", err)
	}
	if err := ComparePasswords(hash, "wrong"); err == nil {
		t.Error("expected mismatch")
	}
}

func TestMemoryRevocationStore(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()

	if err := store.Revoke(ctx, "live", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Revoke(ctx, "stale", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if revoked, _ := store.IsRevoked(ctx, "live"); !revoked {
		t.Error("expected live token to be revoked")
	}
	if revoked, _ := store.IsRevoked(ctx, "stale"); revoked {
		t.Error("expected already-expired token to be ignored")
	}
	if revoked, _ := store.IsRevoked(ctx, "other"); revoked {
		t.Error("expected unknown token to be accepted")
	}
}

func TestRazorpayClient(t *testing.T) {
	var gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		user, pass, _ := r.BasicAuth()
		gotAuth = user + ":" + pass
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, r.Body)
		gotBody = buf.String()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_abc","amount":190000,"currency":"INR","receipt":"order-1","status":"created"}`))
	}))
	defer server.Close()

	client := NewRazorpayClient(server.URL, "rzp_key", "rzp_secret")
	order, err := client.CreateOrder(context.Background(), 190000, "INR", "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "order_abc" || order.Amount != 190000 {
		t.Errorf("unexpected order: %+v", order)
	}
	if gotAuth != "rzp_key:rzp_secret" {
		t.Errorf("expected basic auth credentials, got %q", gotAuth)
	}
	if !strings.Contains(gotBody, `"amount":190000`) {
		t.Errorf("expected amount in body, got %s", gotBody)
	}

	t.Run("gateway error", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
		}))
		defer failing.Close()

		_, err := NewRazorpayClient(failing.URL, "k", "s").CreateOrder(context.Background(), 1, "INR", "r")
		if err == nil || !strings.Contains(err.Error(), "amount too small") {
			t.Errorf("expected gateway error description, got %v", err)
		}
	})

	t.Run("signature", func(t *testing.T) {
		signature := PaymentSignature("rzp_secret", "order_abc", "pay_1")
		if !client.VerifySignature("order_abc", "pay_1", signature) {
			t.Error("expected signature to verify")
		}
		if client.VerifySignature("order_abc", "pay_2", signature) {
			t.Error("expected signature for another payment to fail")
		}
	})
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("products", `C:\uploads\saree.jpg`)
	if !strings.HasPrefix(key, "products/") || !strings.HasSuffix(key, "-saree.jpg") {
		t.Errorf("unexpected key %q", key)
	}
	if ObjectKey("products", "a.jpg") == ObjectKey("products", "a.jpg") {
		t.Error("expected keys to be unique")
	}
}

func TestRenderTemplate(t *testing.T) {
	body, err := RenderTemplate("../templates/order_confirmation.html", OrderConfirmationData{
		Name:     "Meera",
		OrderID:  12,
		Items:    []OrderLineData{{Name: "Kanjivaram", Quantity: 1, Price: "8999", Subtotal: "8999"}},
		Subtotal: "8999",
		Total:    "8999",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "#12") || !strings.Contains(body, "Kanjivaram") {
		t.Errorf("unexpected body: %s", body)
	}
	if strings.Contains(body, "Discount:") {
		t.Error("expected discount line to be omitted")
	}
}
