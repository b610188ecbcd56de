package initializers

import (
	"errors"
	"os"
	"strings"

	"github.com/hsz/sarees-api/models"
	"github.com/hsz/sarees-api/utils"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.WishlistItem{},
		&models.Review{},
		&models.Banner{},
	)
}

func SyncDatabase() {
	if err := Migrate(DB); err != nil {
		Logger.Error("failed to sync database", "error", err)
		os.Exit(1)
	}
	Logger.Info("database synced successfully")

	if err := SeedAdmin(DB, Config.AdminEmail, Config.AdminPassword); err != nil {
		Logger.Error("failed to seed admin account", "error", err)
	}
}

// SeedAdmin creates the bootstrap ADMIN account when both credentials are
// set and no user owns the email yet.
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{Name: "Administrator", Email: email, Password: hash, Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	Logger.Info("seeded admin account", "email", email)
	return nil
}
