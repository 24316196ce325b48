package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Шаг тарификации телефонных консультаций: время округляется
// вверх до кратного 0.125 часа (7.5 минут) при вводе
var BillingIncrementHours = decimal.RequireFromString("0.125")

// PhoneConsultation представляет телефонную консультацию клиента.
// Организация не хранится в записи, а определяется при чтении
// по совпадению ClientFio с ФИО сотрудника организации.
type PhoneConsultation struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Date        time.Time       `json:"date" gorm:"not null;index"`
	SpentTime   decimal.Decimal `json:"spent_time" gorm:"type:decimal(10,3);not null"` // В часах, уже округлено
	ClientFio   string          `json:"client_fio" gorm:"not null;index"`
	Description string          `json:"description" gorm:"type:text"`

	UserID uint `json:"user_id" gorm:"not null;index"`

	// Краткое название организации клиента, заполняется при чтении
	OrganizationName string `json:"organization_name" gorm:"-"`
}

// TableName задает имя таблицы для модели PhoneConsultation
func (PhoneConsultation) TableName() string {
	return "phone_consultations"
}

// ConvertMinutesToHours переводит минуты в часы с округлением вверх
// до ближайшего кратного 0.125 часа. Правило тарификации: даже одна
// минута разговора учитывается как 0.125 часа.
func ConvertMinutesToHours(minutes float64) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	hours := decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60))
	return hours.Div(BillingIncrementHours).Ceil().Mul(BillingIncrementHours)
}
