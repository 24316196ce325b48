package models

import "time"

// Organization представляет организацию-клиента
type Organization struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ShortName string `json:"short_name" gorm:"not null"`
	FullName  string `json:"full_name"`
}

// TableName задает имя таблицы для модели Organization
func (Organization) TableName() string {
	return "organizations"
}
