package services

import (
	"errors"
	"fmt"

	"backend_timesheet/models"

	"gorm.io/gorm"
)

// ClientReportService собирает данные отчета по одной организации:
// неподписанные активности и консультации ее сотрудников за период.
// Ничего не сохраняет и не суммирует, агрегация часов остается на
// слое представления.
type ClientReportService struct {
	db *gorm.DB
}

// NewClientReportService создает новый экземпляр ClientReportService
func NewClientReportService(db *gorm.DB) *ClientReportService {
	return &ClientReportService{db: db}
}

// ClientReportData данные отчета по клиентам за один период
type ClientReportData struct {
	OrganizationName   string                                `json:"organizationName"`
	Activities         []models.WorkActivity                 `json:"activities"`
	PhoneConsultations map[string][]models.PhoneConsultation `json:"phoneConsultations"`
}

// GetReportData возвращает данные отчета по организации за период.
// Активности с подписанным табелем исключаются: они уже предъявлены
// клиенту. Консультации группируются по дням (ключ YYYY-MM-DD).
func (s *ClientReportService) GetReportData(organizationID uint, month, year int) (*ClientReportData, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	var organization models.Organization
	err := s.db.First(&organization, organizationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: организация %d", ErrNotFound, organizationID)
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить организацию: %w", err)
	}

	start, next := PeriodRange(month, year)

	var activities []models.WorkActivity
	if err := s.db.Preload("Organization").
		Where("organization_id = ? AND date >= ? AND date < ? AND has_signed_timesheet = ?",
			organizationID, start, next, false).
		Order("date").
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("не удалось загрузить рабочие активности организации: %w", err)
	}
	for i := range activities {
		activities[i].ResolveOrganizationName()
	}

	report := &ClientReportData{
		OrganizationName:   organization.ShortName,
		Activities:         activities,
		PhoneConsultations: make(map[string][]models.PhoneConsultation),
	}

	var employees []models.Employee
	if err := s.db.Where("organization_id = ?", organizationID).
		Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("не удалось загрузить сотрудников организации: %w", err)
	}

	// Без сотрудников не может быть и консультаций, запрос не выполняется
	if len(employees) == 0 {
		return report, nil
	}

	names := make([]string, 0, len(employees))
	for _, emp := range employees {
		names = append(names, emp.Fio)
	}

	var consultations []models.PhoneConsultation
	if err := s.db.Where("client_fio IN ? AND date >= ? AND date < ?", names, start, next).
		Order("date, client_fio").
		Find(&consultations).Error; err != nil {
		return nil, fmt.Errorf("не удалось загрузить телефонные консультации организации: %w", err)
	}
	for i := range consultations {
		consultations[i].OrganizationName = organization.ShortName
	}

	for _, cons := range consultations {
		key := cons.Date.Format("2006-01-02")
		report.PhoneConsultations[key] = append(report.PhoneConsultations[key], cons)
	}

	return report, nil
}
