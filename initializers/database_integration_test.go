//go:build integration

package initializers

import (
	"context"
	"sync"
	"testing"

	"github.com/hsz/sarees-api/models"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func setupMySQL(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := mysql.Run(ctx,
		"mysql:8.0.36",
		mysql.WithDatabase("sarees"),
		mysql.WithUsername("sarees"),
		mysql.WithPassword("sarees"),
	)
	if err != nil {
		t.Fatalf("failed to start mysql container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate mysql container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true", "loc=UTC")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	return dsn
}

func TestMySQLSchema(t *testing.T) {
	ctx := context.Background()
	db, err := Open("mysql", setupMySQL(ctx, t))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Run("seed admin is idempotent", func(t *testing.T) {
		for range 2 {
			if err := SeedAdmin(db, "admin@example.com", "admin-pass"); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}
		var count int64
		db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
		if count != 1 {
			t.Errorf("expected one admin, got %d", count)
		}
	})

	t.Run("prices and image lists round trip", func(t *testing.T) {
		product := models.Product{
			Name:       "Kanjivaram",
			Category:   "Silk",
			Price:      decimal.RequireFromString("12499.99"),
			Stock:      3,
			ImagePaths: models.ImagePaths{"a.jpg", "b.jpg"},
			IsActive:   true,
		}
		if err := db.Create(&product).Error; err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		var loaded models.Product
		if err := db.First(&loaded, product.ID).Error; err != nil {
			t.Fatalf("failed to load product: %v", err)
		}
		if !loaded.Price.Equal(product.Price) {
			t.Errorf("expected price %s, got %s", product.Price, loaded.Price)
		}
		if len(loaded.ImagePaths) != 2 || loaded.ImagePaths.Primary() != "a.jpg" {
			t.Errorf("unexpected image paths %v", loaded.ImagePaths)
		}
	})

	t.Run("row locks serialise stock decrements", func(t *testing.T) {
		product := models.Product{Name: "Chanderi", Category: "Cotton", Price: decimal.NewFromInt(900), Stock: 5, ImagePaths: models.ImagePaths{}, IsActive: true}
		if err := db.Create(&product).Error; err != nil {
			t.Fatalf("failed to create product: %v", err)
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		sold := 0
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := db.Transaction(func(tx *gorm.DB) error {
					var locked models.Product
					if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, product.ID).Error; err != nil {
						return err
					}
					if locked.Stock < 1 {
						return models.ErrInsufficientStock
					}
					return tx.Model(&locked).Update("stock", gorm.Expr("stock - ?", 1)).Error
				})
				if err == nil {
					mu.Lock()
					sold++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		var loaded models.Product
		db.First(&loaded, product.ID)
		if sold != 5 || loaded.Stock != 0 {
			t.Errorf("expected 5 sales leaving 0 stock, got %d sales and stock %d", sold, loaded.Stock)
		}
	})
}
