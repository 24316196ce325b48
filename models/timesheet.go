package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Timesheet представляет сформированный месячный табель пользователя.
// На пару (UserID, Month, Year) существует не более одного табеля.
type Timesheet struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_timesheets_period"`
	Month  int  `json:"month" gorm:"not null;uniqueIndex:idx_timesheets_period"`
	Year   int  `json:"year" gorm:"not null;uniqueIndex:idx_timesheets_period"`

	PeriodStart time.Time `json:"period_start" gorm:"not null"`
	PeriodEnd   time.Time `json:"period_end" gorm:"not null"`

	Entries []TimesheetEntry `json:"entries,omitempty" gorm:"foreignKey:TimesheetID"`
}

// TableName задает имя таблицы для модели Timesheet
func (Timesheet) TableName() string {
	return "timesheets"
}

// TimesheetEntry представляет одну строку табеля: суммарные часы и
// описание работ за один календарный день. Строки полностью
// перезаписываются при каждой регенерации табеля.
type TimesheetEntry struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TimesheetID uint            `json:"timesheet_id" gorm:"not null;index"`
	EntryDate   time.Time       `json:"entry_date" gorm:"not null"`
	WorkHours   decimal.Decimal `json:"work_hours" gorm:"type:decimal(10,3);not null"`
	Description string          `json:"description" gorm:"type:text"`
}

// TableName задает имя таблицы для модели TimesheetEntry
func (TimesheetEntry) TableName() string {
	return "timesheet_entries"
}
