package models

import (
	"bytes"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/datatypes"

	"github.com/fireguard/cms-api/utils"
)

// Page is a free-form page authored in the page builder. Data is the
// editor's own project JSON; HTMLContent and CSSContent are its exported
// markup and are always written together with Data.
type Page struct {
	Model
	Slug        string         `json:"slug" gorm:"size:191;uniqueIndex;not null"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Data        datatypes.JSON `json:"data"`
	HTMLContent string         `json:"htmlContent"`
	CSSContent  string         `json:"cssContent"`
}

var slugRule = validation.By(func(value interface{}) error {
	slug, _ := value.(string)
	if slug != "" && !utils.IsSlug(slug) {
		return validation.NewError("validation_is_slug", "must contain only lowercase letters, digits and single hyphens")
	}
	return nil
})

func (p Page) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Slug, validation.Required, validation.Length(1, 191), slugRule),
		validation.Field(&p.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.HTMLContent, validation.When(p.HasData(), validation.Required.Error("is required alongside data"))),
	)
}

func (p *Page) HasData() bool {
	return len(p.Data) > 0 && !bytes.Equal(p.Data, []byte("null"))
}

func (p *Page) HasContent() bool {
	return p.HTMLContent != ""
}
