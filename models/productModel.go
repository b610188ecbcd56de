package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Category    string          `gorm:"size:100;not null;index" json:"category"`
	Description string          `gorm:"size:1000" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null" json:"stock"`
	ImagePaths  ImagePaths      `json:"imagePaths"`
	Color       string          `gorm:"size:50" json:"color"`
	Fabric      string          `gorm:"size:50" json:"fabric"`
	Size        string          `gorm:"size:50" json:"size"`
	IsFeatured  bool            `gorm:"not null" json:"isFeatured"`
	IsActive    bool            `gorm:"not null;index" json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (p Product) Validate() error {
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// ProductInput is the admin payload for creating and replacing a product.
type ProductInput struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Category    string          `json:"category" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	Stock       *int            `json:"stock" binding:"required"`
	Color       string          `json:"color" binding:"max=50"`
	Fabric      string          `json:"fabric" binding:"max=50"`
	Size        string          `json:"size" binding:"max=50"`
	IsFeatured  *bool           `json:"isFeatured"`
	IsActive    *bool           `json:"isActive"`
	ImagePaths  []string        `json:"imagePaths"`
	ImagePath   string          `json:"imagePath"`
}

// Apply copies the input onto p. Flags and images are left untouched when the
// input omits them.
func (in ProductInput) Apply(p *Product) error {
	p.Name = strings.TrimSpace(in.Name)
	p.Category = strings.TrimSpace(in.Category)
	p.Description = in.Description
	p.Price = in.Price
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	p.Color = strings.TrimSpace(in.Color)
	p.Fabric = strings.TrimSpace(in.Fabric)
	p.Size = strings.TrimSpace(in.Size)
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	switch {
	case len(in.ImagePaths) > 0:
		p.ImagePaths = ImagePaths(in.ImagePaths)
	case in.ImagePath != "":
		p.ImagePaths = ImagePaths{in.ImagePath}
	}
	if p.ImagePaths == nil {
		p.ImagePaths = ImagePaths{}
	}

	return p.Validate()
}
