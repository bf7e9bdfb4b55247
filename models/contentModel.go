package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/datatypes"

	"github.com/fireguard/cms-api/utils"
)

type Blog struct {
	Model
	Title   string `json:"title" gorm:"size:255;not null"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
	Image   string `json:"image"`
	Author  string `json:"author" gorm:"size:255"`
}

func (b Blog) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&b.Content, validation.Required),
	)
}

func (b *Blog) Prepare() {
	b.Content = utils.SanitizeRichText(b.Content)
}

type Gallery struct {
	Model
	Title    string `json:"title" gorm:"size:255"`
	Image    string `json:"image" gorm:"not null"`
	Category string `json:"category" gorm:"size:100"`
}

func (Gallery) TableName() string {
	return "gallery"
}

func (g Gallery) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Image, validation.Required),
	)
}

type Portfolio struct {
	Model
	Title       string                      `json:"title" gorm:"size:255;not null"`
	Client      string                      `json:"client" gorm:"size:255"`
	Location    string                      `json:"location" gorm:"size:255"`
	Description string                      `json:"description"`
	Images      datatypes.JSONSlice[string] `json:"images"`
}

func (Portfolio) TableName() string {
	return "portfolio"
}

func (p Portfolio) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 255)),
	)
}

type Customer struct {
	Model
	Name    string `json:"name" gorm:"size:255;not null"`
	Logo    string `json:"logo"`
	Website string `json:"website" gorm:"size:255"`
}

func (c Customer) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Website, is.URL),
	)
}

type ContactInfo struct {
	Model
	Phone        string `json:"phone" gorm:"size:64"`
	Email        string `json:"email" gorm:"size:255"`
	Address      string `json:"address"`
	MapURL       string `json:"mapUrl"`
	WorkingHours string `json:"workingHours" gorm:"size:255"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}

func (c ContactInfo) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, is.EmailFormat),
		validation.Field(&c.MapURL, is.URL),
	)
}

type AboutStats struct {
	Model
	Label     string `json:"label" gorm:"size:255;not null"`
	Value     string `json:"value" gorm:"size:64;not null"`
	Icon      string `json:"icon" gorm:"size:64"`
	SortOrder int    `json:"sortOrder"`
}

func (AboutStats) TableName() string {
	return "about_stats"
}

func (a AboutStats) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Label, validation.Required),
		validation.Field(&a.Value, validation.Required),
	)
}
