package models

import (
	"time"

	"github.com/lib/pq"
)

// User представляет учетную запись пользователя системы
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Основные поля
	Login    string `json:"login" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // Хранится bcrypt-хеш, в JSON не возвращается
	Role     string `json:"role" gorm:"default:'user'"`

	// Приложения, к которым у пользователя есть доступ: "admin", "timesheet"
	Applications pq.StringArray `json:"applications" gorm:"type:text[]"`
}

// TableName задает имя таблицы для модели User
func (User) TableName() string {
	return "users"
}

// HasApplication проверяет, есть ли у пользователя доступ к приложению
func (u *User) HasApplication(application string) bool {
	for _, app := range u.Applications {
		if app == application {
			return true
		}
	}
	return false
}
