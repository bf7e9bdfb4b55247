package models

import (
	"bytes"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/datatypes"

	"github.com/fireguard/cms-api/utils"
)

const (
	ContentTypeManual   = "manual"
	ContentTypeExternal = "external"
)

type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s Specification) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Key, validation.Required),
	)
}

type SubProduct struct {
	Model
	Name           string                             `json:"name" gorm:"size:191;uniqueIndex;not null"`
	ModelNumber    *string                            `json:"modelNumber"`
	Photo          string                             `json:"photo"`
	ContentType    string                             `json:"contentType" gorm:"size:16;not null"`
	Content        *string                            `json:"content"`
	ExternalURL    *string                            `json:"externalUrl"`
	Specifications datatypes.JSONSlice[Specification] `json:"specifications"`
	Features       datatypes.JSONSlice[string]        `json:"features"`
	PageData       datatypes.JSON                     `json:"pageData"`
	HTMLContent    *string                            `json:"htmlContent"`
	CSSContent     *string                            `json:"cssContent"`
}

func (s SubProduct) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 191)),
		validation.Field(&s.ContentType, validation.Required, validation.In(ContentTypeManual, ContentTypeExternal)),
		validation.Field(&s.ExternalURL, is.URL),
		validation.Field(&s.Specifications),
		validation.Field(&s.Features, validation.Each(validation.Required)),
	)
}

// Prepare applies the content type switch and sanitizes rich text.
func (s *SubProduct) Prepare() {
	s.ApplyContentType()
	s.Content = utils.SanitizeRichTextPtr(s.Content)
}

// ApplyContentType nulls every field that belongs to the inactive content
// type, so a record never carries both manual content and an external URL.
func (s *SubProduct) ApplyContentType() {
	if s.ContentType == "" {
		s.ContentType = ContentTypeManual
	}

	switch s.ContentType {
	case ContentTypeExternal:
		if s.ExternalURL != nil && strings.TrimSpace(*s.ExternalURL) == "" {
			s.ExternalURL = nil
		}
		s.Content = nil
		s.Specifications = nil
		s.Features = nil
		s.PageData = nil
		s.HTMLContent = nil
		s.CSSContent = nil
	case ContentTypeManual:
		s.ExternalURL = nil
	}
}

func (s *SubProduct) IsExternal() bool {
	return s.ContentType == ContentTypeExternal
}

// HasPage reports whether builder output has been stored for this record.
func (s *SubProduct) HasPage() bool {
	return len(s.PageData) > 0 && !bytes.Equal(s.PageData, []byte("null"))
}

type SubProductLink struct {
	Href     string `json:"href"`
	Target   string `json:"target"`
	External bool   `json:"external"`
}

// Link is where a sub-product card leads on the product detail page:
// external records open their URL in a new tab, manual ones route in-app.
func (s *SubProduct) Link() SubProductLink {
	if s.IsExternal() {
		href := ""
		if s.ExternalURL != nil {
			href = *s.ExternalURL
		}
		return SubProductLink{Href: href, Target: "_blank", External: true}
	}
	return SubProductLink{Href: fmt.Sprintf("/sub-products/%d", s.ID), Target: "_self"}
}

// SubProductCard is the listing form used inside a product detail.
type SubProductCard struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	ModelNumber *string        `json:"modelNumber"`
	Photo       string         `json:"photo"`
	ContentType string         `json:"contentType"`
	Link        SubProductLink `json:"link"`
}

func (s *SubProduct) Card() SubProductCard {
	return SubProductCard{
		ID:          s.ID,
		Name:        s.Name,
		ModelNumber: s.ModelNumber,
		Photo:       s.Photo,
		ContentType: s.ContentType,
		Link:        s.Link(),
	}
}
