package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Типы рабочих активностей
const (
	ActivityTypeConsultation = "Consultation"
	ActivityTypeSetup        = "Setup"
)

// WorkActivity представляет рабочую активность пользователя.
// Активности с HasSignedTimesheet = true уже учтены в подписанном
// бумажном табеле и исключаются из отчетов по клиентам.
type WorkActivity struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Date               time.Time       `json:"date" gorm:"not null;index"`
	WorkTime           decimal.Decimal `json:"work_time" gorm:"type:decimal(10,3);not null"`
	ActivityType       string          `json:"activity_type" gorm:"not null"`
	Description        string          `json:"description" gorm:"type:text"`
	HasSignedTimesheet bool            `json:"has_signed_timesheet" gorm:"default:false"`

	OrganizationID *uint         `json:"organization_id" gorm:"index"`
	Organization   *Organization `json:"-" gorm:"foreignKey:OrganizationID"`

	UserID uint `json:"user_id" gorm:"not null;index"`

	// Краткое название организации, заполняется при чтении
	OrganizationName string `json:"organization_name" gorm:"-"`
}

// TableName задает имя таблицы для модели WorkActivity
func (WorkActivity) TableName() string {
	return "work_activities"
}

// ResolveOrganizationName заполняет OrganizationName из загруженной связи
func (wa *WorkActivity) ResolveOrganizationName() {
	if wa.Organization != nil {
		wa.OrganizationName = wa.Organization.ShortName
	}
}
