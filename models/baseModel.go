package models

import "time"

// Model replaces gorm.Model so records serialize with camelCase keys and
// deletes are permanent.
type Model struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preparer is implemented by records that normalize themselves before
// validation and persistence.
type Preparer interface {
	Prepare()
}

func (m *Model) Base() *Model {
	return m
}
