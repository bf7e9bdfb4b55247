package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

type User struct {
	Model
	Username string `json:"username" gorm:"size:191;uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"size:32"`
}

type LoginData struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (l LoginData) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Username, validation.Required),
		validation.Field(&l.Password, validation.Required),
	)
}
