package models

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// singleLine keeps values that end up in mail headers to one line.
var singleLine = regexp.MustCompile(`^[^\r\n]*$`)

type Inquiry struct {
	Model
	Name    string `json:"name" gorm:"size:255;not null"`
	Email   string `json:"email" gorm:"size:255;not null"`
	Phone   string `json:"phone" gorm:"size:64"`
	Subject string `json:"subject" gorm:"size:255"`
	Message string `json:"message" gorm:"not null"`
}

func (i Inquiry) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.Email, validation.Required, is.EmailFormat, validation.Match(singleLine)),
		validation.Field(&i.Subject, validation.Length(0, 255), validation.Match(singleLine).Error("must be a single line")),
		validation.Field(&i.Message, validation.Required),
	)
}

// Analytics is one recorded page visit on the public site.
type Analytics struct {
	Model
	Path      string `json:"path" gorm:"size:512;index;not null"`
	Referrer  string `json:"referrer" gorm:"size:1024"`
	UserAgent string `json:"userAgent" gorm:"size:512"`
}

func (a Analytics) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Path, validation.Required, validation.Length(1, 512)),
	)
}

type PathVisits struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}
