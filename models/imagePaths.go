package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ImagePaths is the ordered list of image locations of a product, stored as a
// JSON array column.
type ImagePaths []string

func (p ImagePaths) Value() (driver.Value, error) {
	if p == nil {
		p = ImagePaths{}
	}
	return datatypes.NewJSONSlice([]string(p)).Value()
}

// Scan reads JSON arrays and falls back to the bracketed, comma-joined text
// written by older releases of the storefront.
func (p *ImagePaths) Scan(value any) error {
	if value == nil {
		*p = ImagePaths{}
		return nil
	}

	var slice datatypes.JSONSlice[string]
	if err := slice.Scan(value); err == nil {
		*p = ImagePaths(slice)
		if *p == nil {
			*p = ImagePaths{}
		}
		return nil
	}

	switch raw := value.(type) {
	case []byte:
		*p = ParseLegacyImagePaths(string(raw))
	case string:
		*p = ParseLegacyImagePaths(raw)
	default:
		*p = ImagePaths{}
	}
	return nil
}

func (p ImagePaths) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(p))
}

func (ImagePaths) GormDataType() string {
	return "json"
}

func (ImagePaths) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return datatypes.JSONSlice[string]{}.GormDBDataType(db, field)
}

// Primary returns the first image, or "" when there is none.
func (p ImagePaths) Primary() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// ParseLegacyImagePaths decodes `["a","b"]` style text. Paths are split on
// commas, so a path containing a comma cannot round-trip; a value without
// brackets is taken as a single path.
func ParseLegacyImagePaths(raw string) ImagePaths {
	paths := ImagePaths{}
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return paths
	}
	if !strings.HasPrefix(clean, "[") || !strings.HasSuffix(clean, "]") {
		return append(paths, clean)
	}

	clean = strings.TrimSpace(clean[1 : len(clean)-1])
	if clean == "" {
		return paths
	}
	for _, part := range strings.Split(clean, ",") {
		part = strings.TrimSpace(part)
		if len(part) >= 2 && strings.HasPrefix(part, `"`) && strings.HasSuffix(part, `"`) {
			part = part[1 : len(part)-1]
		}
		part = strings.ReplaceAll(part, `\"`, `"`)
		if part != "" {
			paths = append(paths, part)
		}
	}
	return paths
}

// ParseImagePathsCell reads a spreadsheet cell holding a JSON array of
// paths. Cells that are not JSON are split on commas, the layout of
// workbooks exported before the column became JSON.
func ParseImagePathsCell(raw string) ImagePaths {
	paths := ImagePaths{}
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return paths
	}

	var decoded []string
	if err := json.Unmarshal([]byte(clean), &decoded); err == nil {
		for _, path := range decoded {
			if path = strings.TrimSpace(path); path != "" {
				paths = append(paths, path)
			}
		}
		return paths
	}

	for _, path := range strings.Split(clean, ",") {
		if path = strings.TrimSpace(path); path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}
