package model

import "time"

// SizeStock is one stock bucket: the quantity on hand for a single size.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Color is a color option offered by a product.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hexCode"`
}

// Image is a product photo. At most one image is marked primary.
type Image struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
}

// Product is a catalog entry. Stock lives in per-size buckets;
// TotalStock is derived and recomputed on every stock mutation.
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory"`
	Brand       string      `json:"brand"`
	Sizes       []SizeStock `json:"sizes"`
	Colors      []Color     `json:"colors"`
	Images      []Image     `json:"images"`
	IsActive    bool        `json:"isActive"`
	IsFeatured  bool        `json:"isFeatured"`
	TotalStock  int         `json:"totalStock"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// SizeInfo returns the stock bucket for the given size label.
func (p *Product) SizeInfo(size string) (SizeStock, bool) {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s, true
		}
	}
	return SizeStock{}, false
}

// HasColor reports whether the product offers the named color.
func (p *Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}

// PrimaryImage returns the primary image URL, falling back to the
// first image, or empty when the product has none.
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// ComputeTotalStock sums stock across all size buckets.
func (p *Product) ComputeTotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Stock
	}
	return total
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category    string
	Subcategory string
	Brand       string
	MinPrice    *float64
	MaxPrice    *float64
	Search      string
	Featured    *bool
	SortBy      string
	Page        int
	Limit       int
}
