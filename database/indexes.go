package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// DatabaseIndex представляет индекс базы данных
type DatabaseIndex struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
	Type    string // btree, gin
}

// PerformanceIndexes индексы для оптимизации производительности.
// Покрывают выборки по периоду и сопоставление клиентов по ФИО.
var PerformanceIndexes = []DatabaseIndex{
	// Выборка записей пользователя за календарный месяц
	{
		Name:    "idx_work_activities_user_date",
		Table:   "work_activities",
		Columns: []string{"user_id", "date"},
		Type:    "btree",
	},
	{
		Name:    "idx_phone_consultations_user_date",
		Table:   "phone_consultations",
		Columns: []string{"user_id", "date"},
		Type:    "btree",
	},
	// Отчеты по клиентам: активности организации за период
	{
		Name:    "idx_work_activities_org_date",
		Table:   "work_activities",
		Columns: []string{"organization_id", "date"},
		Type:    "btree",
	},
	// Сопоставление консультаций с сотрудниками по ФИО
	{
		Name:    "idx_employees_org_fio",
		Table:   "employees",
		Columns: []string{"organization_id", "fio"},
		Type:    "btree",
	},
	// Строки табеля в порядке дней
	{
		Name:    "idx_timesheet_entries_sheet_date",
		Table:   "timesheet_entries",
		Columns: []string{"timesheet_id", "entry_date"},
		Type:    "btree",
	},
	// Полнотекстовый поиск по описаниям работ
	{
		Name:    "idx_work_activities_description",
		Table:   "work_activities",
		Columns: []string{"description"},
		Type:    "gin",
	},
}

// CreatePerformanceIndexes создает все индексы производительности
func CreatePerformanceIndexes(db *gorm.DB) error {
	log.Printf("Creating performance indexes...")

	for _, index := range PerformanceIndexes {
		if err := CreateIndex(db, index); err != nil {
			log.Printf("Failed to create index %s: %v", index.Name, err)
			// Продолжаем создание других индексов даже если один упал
			continue
		}
		log.Printf("Created index: %s", index.Name)
	}

	log.Printf("Performance indexes creation completed")
	return nil
}

// CreateIndex создает отдельный индекс
func CreateIndex(db *gorm.DB, index DatabaseIndex) error {
	var sql string

	switch index.Type {
	case "gin":
		// Для полнотекстового поиска
		sql = fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON %s USING GIN (to_tsvector('russian', COALESCE(%s, '')))",
			index.Name, index.Table, index.Columns[0],
		)
	default:
		// Обычные B-tree индексы
		uniqueStr := ""
		if index.Unique {
			uniqueStr = "UNIQUE "
		}

		sql = fmt.Sprintf(
			"CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
			uniqueStr, index.Name, index.Table, strings.Join(index.Columns, ", "),
		)
	}

	return db.Exec(sql).Error
}

// DropIndex удаляет индекс
func DropIndex(db *gorm.DB, indexName string) error {
	sql := fmt.Sprintf("DROP INDEX IF EXISTS %s", indexName)
	return db.Exec(sql).Error
}
