package models

import (
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/datatypes"
)

type Brand struct {
	Model
	Name        string `json:"name" gorm:"size:191;uniqueIndex;not null"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
}

func (b Brand) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Name, validation.Required, validation.Length(1, 191)),
	)
}

type Product struct {
	Model
	Name          string                      `json:"name" gorm:"size:255;not null"`
	Description   string                      `json:"description"`
	Photos        datatypes.JSONSlice[string] `json:"photos"`
	SubProductIDs datatypes.JSONSlice[uint]   `json:"subProductIds"`
	BrandID       *uint                       `json:"brandId" gorm:"index"`
}

func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Photos, validation.Each(validation.Required)),
		validation.Field(&p.SubProductIDs, validation.Each(validation.Required)),
	)
}

// Prepare drops duplicate sub-product references, keeping first positions.
func (p *Product) Prepare() {
	if p.SubProductIDs == nil {
		return
	}
	seen := make(map[uint]bool, len(p.SubProductIDs))
	ids := make(datatypes.JSONSlice[uint], 0, len(p.SubProductIDs))
	for _, id := range p.SubProductIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	p.SubProductIDs = ids
}

// WithoutSubProduct removes id from the sub-product list and reports
// whether the list changed.
func (p *Product) WithoutSubProduct(id uint) bool {
	if !slices.Contains(p.SubProductIDs, id) {
		return false
	}
	p.SubProductIDs = slices.DeleteFunc(slices.Clone(p.SubProductIDs), func(v uint) bool { return v == id })
	return true
}

// ProductDetail is the public product view with its sub-products resolved
// in subProductIds order.
type ProductDetail struct {
	Product
	Brand       *Brand           `json:"brand,omitempty"`
	SubProducts []SubProductCard `json:"subProducts"`
}
