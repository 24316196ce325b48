package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"backend_timesheet/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConsultationOverheadHours фиксированная надбавка к каждой телефонной
// консультации: помимо времени разговора тарифицируется время на
// обработку звонка. Константа тарифной политики, а не округления.
var ConsultationOverheadHours = decimal.RequireFromString("0.25")

// UnassignedClientsGroup группа для консультаций, клиент которых не
// сопоставлен ни с одной организацией
const UnassignedClientsGroup = "Clients (without organization)"

// Верхняя граница часов одной строки табеля, соответствует типу
// колонки decimal(10,3)
var maxEntryHours = decimal.New(1, 7)

// TimesheetService реализует формирование и чтение месячных табелей
type TimesheetService struct {
	db *gorm.DB

	// Сериализация одновременных генераций одного периода
	mu          sync.Mutex
	periodLocks map[string]*sync.Mutex
}

// NewTimesheetService создает новый экземпляр TimesheetService
func NewTimesheetService(db *gorm.DB) *TimesheetService {
	return &TimesheetService{
		db:          db,
		periodLocks: make(map[string]*sync.Mutex),
	}
}

// PeriodRange возвращает полуоткрытый диапазон дат [начало месяца,
// начало следующего месяца) для фильтрации записей по периоду
func PeriodRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// validatePeriod проверяет корректность месяца и года
func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: месяц должен быть в диапазоне 1-12, получено %d", ErrValidation, month)
	}
	if year <= 0 {
		return fmt.Errorf("%w: некорректный год %d", ErrValidation, year)
	}
	return nil
}

// periodRecords записи пользователя за один календарный месяц
type periodRecords struct {
	Activities    []models.WorkActivity
	Consultations []models.PhoneConsultation
}

// readPeriod загружает рабочие активности и телефонные консультации
// пользователя за период. Название организации активности берется из
// связанной организации, у консультации определяется по ФИО клиента.
func readPeriod(tx *gorm.DB, userID uint, month, year int) (*periodRecords, error) {
	start, next := PeriodRange(month, year)

	var activities []models.WorkActivity
	if err := tx.Preload("Organization").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, next).
		Order("date DESC, id").
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("не удалось загрузить рабочие активности за период: %w", err)
	}
	for i := range activities {
		activities[i].ResolveOrganizationName()
	}

	var consultations []models.PhoneConsultation
	if err := tx.Where("user_id = ? AND date >= ? AND date < ?", userID, start, next).
		Order("date DESC, id").
		Find(&consultations).Error; err != nil {
		return nil, fmt.Errorf("не удалось загрузить телефонные консультации за период: %w", err)
	}
	if err := ResolveClientOrganizations(tx, consultations); err != nil {
		return nil, err
	}

	return &periodRecords{Activities: activities, Consultations: consultations}, nil
}

// ResolveClientOrganizations определяет организацию каждой консультации
// по точному совпадению ClientFio с ФИО сотрудника. Единственная точка
// сопоставления по естественному ключу: несопоставленные имена молча
// остаются без организации.
func ResolveClientOrganizations(tx *gorm.DB, consultations []models.PhoneConsultation) error {
	if len(consultations) == 0 {
		return nil
	}

	names := make([]string, 0, len(consultations))
	seen := make(map[string]bool, len(consultations))
	for _, cons := range consultations {
		if !seen[cons.ClientFio] {
			seen[cons.ClientFio] = true
			names = append(names, cons.ClientFio)
		}
	}

	var employees []models.Employee
	if err := tx.Preload("Organization").
		Where("fio IN ?", names).
		Find(&employees).Error; err != nil {
		return fmt.Errorf("не удалось сопоставить клиентов с организациями: %w", err)
	}

	orgByFio := make(map[string]string, len(employees))
	for _, emp := range employees {
		if emp.Organization != nil {
			orgByFio[emp.Fio] = emp.Organization.ShortName
		}
	}

	for i := range consultations {
		consultations[i].OrganizationName = orgByFio[consultations[i].ClientFio]
	}
	return nil
}

// dayBucket записи одного календарного дня
type dayBucket struct {
	Date          time.Time
	Activities    []models.WorkActivity
	Consultations []models.PhoneConsultation
}

// groupByDate раскладывает записи по календарным дням независимо от
// времени суток. Дни идут в порядке первого появления во входных
// данных: сначала поток активностей, затем поток консультаций.
func groupByDate(activities []models.WorkActivity, consultations []models.PhoneConsultation) []*dayBucket {
	buckets := make(map[string]*dayBucket)
	order := make([]string, 0)

	bucketFor := func(date time.Time) *dayBucket {
		key := date.Format("2006-01-02")
		bucket, ok := buckets[key]
		if !ok {
			day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
			bucket = &dayBucket{Date: day}
			buckets[key] = bucket
			order = append(order, key)
		}
		return bucket
	}

	for _, act := range activities {
		bucket := bucketFor(act.Date)
		bucket.Activities = append(bucket.Activities, act)
	}
	for _, cons := range consultations {
		bucket := bucketFor(cons.Date)
		bucket.Consultations = append(bucket.Consultations, cons)
	}

	result := make([]*dayBucket, 0, len(order))
	for _, key := range order {
		result = append(result, buckets[key])
	}
	return result
}

// composeDayEntry собирает из записей одного дня строку табеля:
// суммарные часы и текстовое описание. Консультации группируются по
// организациям в порядке появления, активности с подписанным табелем
// идут в описании раньше остальных.
func composeDayEntry(bucket *dayBucket) models.TimesheetEntry {
	total := decimal.Zero
	parts := make([]string, 0)

	groups := make(map[string][]models.PhoneConsultation)
	groupOrder := make([]string, 0)
	for _, cons := range bucket.Consultations {
		orgName := cons.OrganizationName
		if orgName == "" {
			orgName = UnassignedClientsGroup
		}
		if _, ok := groups[orgName]; !ok {
			groupOrder = append(groupOrder, orgName)
		}
		groups[orgName] = append(groups[orgName], cons)
	}

	for _, orgName := range groupOrder {
		orgCons := groups[orgName]
		groupHours := decimal.Zero
		clientNames := make([]string, 0, len(orgCons))
		for _, cons := range orgCons {
			groupHours = groupHours.Add(cons.SpentTime)
			clientNames = append(clientNames, cons.ClientFio)
		}
		// Надбавка начисляется на каждую консультацию группы
		groupHours = groupHours.Add(ConsultationOverheadHours.Mul(decimal.NewFromInt(int64(len(orgCons)))))
		total = total.Add(groupHours)

		parts = append(parts, fmt.Sprintf("Phone consultations %s (%s h. - %s)",
			orgName, groupHours.StringFixed(3), strings.Join(clientNames, ", ")))
	}

	for _, act := range bucket.Activities {
		if !act.HasSignedTimesheet {
			continue
		}
		total = total.Add(act.WorkTime)
		parts = append(parts, fmt.Sprintf("Timesheet: %s %s h. (Description: %s %s)",
			act.OrganizationName, act.WorkTime.StringFixed(3), act.ActivityType, act.Description))
	}
	for _, act := range bucket.Activities {
		if act.HasSignedTimesheet {
			continue
		}
		total = total.Add(act.WorkTime)
		parts = append(parts, fmt.Sprintf("%s h. (%s %s %s)",
			act.WorkTime.StringFixed(3), act.OrganizationName, act.ActivityType, act.Description))
	}

	return models.TimesheetEntry{
		EntryDate:   bucket.Date,
		WorkHours:   total,
		Description: strings.Join(parts, ", "),
	}
}

// validateEntryHours проверяет, что вычисленные часы представимы в
// колонке табеля
func validateEntryHours(entry models.TimesheetEntry) error {
	if entry.WorkHours.IsNegative() || entry.WorkHours.GreaterThanOrEqual(maxEntryHours) {
		return fmt.Errorf("%w: %s за %s", ErrComputation,
			entry.WorkHours, entry.EntryDate.Format("2006-01-02"))
	}
	return nil
}

// GenerateAndSave формирует табель пользователя за период и сохраняет
// его, полностью заменяя ранее сформированные строки. Либо сохраняется
// весь период целиком, либо при любой ошибке не меняется ничего.
func (s *TimesheetService) GenerateAndSave(userID uint, month, year int) error {
	if err := validatePeriod(month, year); err != nil {
		return err
	}

	lock := s.periodLock(userID, month, year)
	lock.Lock()
	defer lock.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		timesheet, err := findOrCreateTimesheet(tx, userID, month, year)
		if err != nil {
			return err
		}

		if err := tx.Where("timesheet_id = ?", timesheet.ID).
			Delete(&models.TimesheetEntry{}).Error; err != nil {
			return fmt.Errorf("не удалось очистить строки табеля: %w", err)
		}

		records, err := readPeriod(tx, userID, month, year)
		if err != nil {
			return err
		}

		buckets := groupByDate(records.Activities, records.Consultations)
		entries := make([]models.TimesheetEntry, 0, len(buckets))
		for _, bucket := range buckets {
			entry := composeDayEntry(bucket)
			entry.TimesheetID = timesheet.ID
			entries = append(entries, entry)
		}

		// Все строки проверяются до первой вставки
		for _, entry := range entries {
			if err := validateEntryHours(entry); err != nil {
				return err
			}
		}

		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return fmt.Errorf("не удалось сохранить строки табеля: %w", err)
			}
		}
		return nil
	})
}

// GetEntries возвращает строки табеля за период, упорядоченные по
// дате. Если табель за период еще не формировался, возвращается пустой
// список: чтение никогда не вычисляет табель на лету.
func (s *TimesheetService) GetEntries(userID uint, month, year int) ([]models.TimesheetEntry, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	var timesheet models.Timesheet
	err := s.db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&timesheet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.TimesheetEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось найти табель за период: %w", err)
	}

	var entries []models.TimesheetEntry
	if err := s.db.Where("timesheet_id = ?", timesheet.ID).
		Order("entry_date").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("не удалось загрузить строки табеля: %w", err)
	}
	return entries, nil
}

// findOrCreateTimesheet находит табель за период или создает новый с
// границами периода по календарному месяцу
func findOrCreateTimesheet(tx *gorm.DB, userID uint, month, year int) (*models.Timesheet, error) {
	var timesheet models.Timesheet
	err := tx.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&timesheet).Error
	if err == nil {
		return &timesheet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("не удалось найти табель за период: %w", err)
	}

	start, _ := PeriodRange(month, year)
	timesheet = models.Timesheet{
		UserID:      userID,
		Month:       month,
		Year:        year,
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, 1, -1),
	}
	if err := tx.Create(&timesheet).Error; err != nil {
		return nil, fmt.Errorf("не удалось создать табель: %w", err)
	}
	return &timesheet, nil
}

// periodLock возвращает мьютекс, сериализующий генерацию табеля одного
// пользователя за один период
func (s *TimesheetService) periodLock(userID uint, month, year int) *sync.Mutex {
	key := fmt.Sprintf("%d-%02d-%d", userID, month, year)

	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.periodLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.periodLocks[key] = lock
	}
	return lock
}
