package models

import "time"

// Employee представляет сотрудника организации-клиента.
// Поле Fio используется как естественный ключ при сопоставлении
// телефонных консультаций с организациями.
type Employee struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Fio         string `json:"fio" gorm:"not null;index"`
	PhoneNumber string `json:"phone_number"`
	Position    string `json:"position"`
	Notes       string `json:"notes"`

	OrganizationID *uint         `json:"organization_id" gorm:"index"`
	Organization   *Organization `json:"-" gorm:"foreignKey:OrganizationID"`

	// Краткое название организации, заполняется при чтении
	OrganizationName string `json:"organization_name" gorm:"-"`
}

// TableName задает имя таблицы для модели Employee
func (Employee) TableName() string {
	return "employees"
}
