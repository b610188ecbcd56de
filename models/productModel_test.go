package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestImagePaths_RoundTrip(t *testing.T) {
	paths := ImagePaths{"uploads/a.jpg", `uploads/quote"d.png`, "uploads/b,c.jpg"}

	value, err := paths.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var scanned ImagePaths
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(scanned, paths) {
		t.Errorf("expected %v, got %v", paths, scanned)
	}
}

func TestImagePaths_ScanLegacy(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want ImagePaths
	}{
		{name: "json array", raw: `["a.jpg","b.jpg"]`, want: ImagePaths{"a.jpg", "b.jpg"}},
		{name: "bytes", raw: []byte(`["a.jpg"]`), want: ImagePaths{"a.jpg"}},
		{name: "empty array", raw: "[]", want: ImagePaths{}},
		{name: "unquoted entries", raw: "[a.jpg, b.jpg]", want: ImagePaths{"a.jpg", "b.jpg"}},
		{name: "bare single path", raw: "uploads/single.jpg", want: ImagePaths{"uploads/single.jpg"}},
		{name: "nil", raw: nil, want: ImagePaths{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ImagePaths
			if err := got.Scan(tt.raw); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseImagePathsCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ImagePaths
	}{
		{name: "json keeps commas in names", raw: `["uploads/1f2e-red,gold.jpg","uploads/back.jpg"]`, want: ImagePaths{"uploads/1f2e-red,gold.jpg", "uploads/back.jpg"}},
		{name: "json empty", raw: "[]", want: ImagePaths{}},
		{name: "blank", raw: "  ", want: ImagePaths{}},
		{name: "comma separated", raw: "a.jpg, b.jpg,", want: ImagePaths{"a.jpg", "b.jpg"}},
		{name: "single path", raw: "uploads/single.jpg", want: ImagePaths{"uploads/single.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseImagePathsCell(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestImagePaths_JSON(t *testing.T) {
	data, err := json.Marshal(Product{Price: decimal.NewFromInt(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := decoded["imagePaths"].([]any); !ok {
		t.Errorf("expected imagePaths to be an array, got %v", decoded["imagePaths"])
	}
	if decoded["price"] != float64(10) {
		t.Errorf("expected price as a JSON number, got %v", decoded["price"])
	}
}

func TestProductInput_Apply(t *testing.T) {
	stock := 7
	featured := true

	t.Run("single image path", func(t *testing.T) {
		var product Product
		in := ProductInput{Name: "Kanjivaram Silk", Category: "Silk", Price: decimal.NewFromInt(8999), Stock: &stock, ImagePath: "k.jpg"}
		if err := in.Apply(&product); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(product.ImagePaths, ImagePaths{"k.jpg"}) {
			t.Errorf("expected single image, got %v", product.ImagePaths)
		}
		if product.Stock != 7 {
			t.Errorf("expected stock 7, got %d", product.Stock)
		}
	})

	t.Run("keeps flags and images when omitted", func(t *testing.T) {
		product := Product{IsActive: true, ImagePaths: ImagePaths{"old.jpg"}}
		in := ProductInput{Name: "Chanderi", Category: "Cotton", Price: decimal.NewFromInt(2100), Stock: &stock, IsFeatured: &featured}
		if err := in.Apply(&product); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !product.IsActive || !product.IsFeatured {
			t.Errorf("expected active featured product, got active=%v featured=%v", product.IsActive, product.IsFeatured)
		}
		if product.ImagePaths.Primary() != "old.jpg" {
			t.Errorf("expected images to be kept, got %v", product.ImagePaths)
		}
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		var product Product
		in := ProductInput{Name: "Free", Category: "Silk", Price: decimal.Zero, Stock: &stock}
		if err := in.Apply(&product); !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("expected ErrInvalidPrice, got %v", err)
		}
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		negative := -1
		var product Product
		in := ProductInput{Name: "Georgette", Category: "Georgette", Price: decimal.NewFromInt(10), Stock: &negative}
		if err := in.Apply(&product); !errors.Is(err, ErrNegativeStock) {
			t.Errorf("expected ErrNegativeStock, got %v", err)
		}
	})
}
