package services

import (
	"testing"

	"backend_timesheet/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// createClientReportTestData создает организацию с сотрудником и
// пользователя, от имени которого вносятся записи
func createClientReportTestData(t *testing.T, db *gorm.DB) (models.User, models.Organization) {
	user := models.User{Login: "reporter", Password: "hashedpassword", Role: "user"}
	require.NoError(t, db.Create(&user).Error)

	org := models.Organization{ShortName: "Alfa", FullName: "Alfa LLC"}
	require.NoError(t, db.Create(&org).Error)

	employee := models.Employee{Fio: "Ivanov", OrganizationID: &org.ID}
	require.NoError(t, db.Create(&employee).Error)

	return user, org
}

// Активности с подписанным табелем уже предъявлены клиенту и в отчет
// не попадают
func TestClientReportExcludesSignedActivities(t *testing.T) {
	db := setupTimesheetTestDB(t)
	user, org := createClientReportTestData(t, db)

	activities := []models.WorkActivity{
		{Date: day(2024, 6, 3, 10, 0), WorkTime: decimal.NewFromInt(2),
			ActivityType: models.ActivityTypeSetup, OrganizationID: &org.ID, UserID: user.ID},
		{Date: day(2024, 6, 4, 10, 0), WorkTime: decimal.NewFromInt(1),
			ActivityType: models.ActivityTypeConsultation, HasSignedTimesheet: true,
			OrganizationID: &org.ID, UserID: user.ID},
	}
	require.NoError(t, db.Create(&activities).Error)

	service := NewClientReportService(db)
	report, err := service.GetReportData(org.ID, 6, 2024)
	require.NoError(t, err)

	assert.Equal(t, "Alfa", report.OrganizationName)
	require.Len(t, report.Activities, 1)
	assert.False(t, report.Activities[0].HasSignedTimesheet)
	assert.Equal(t, "Alfa", report.Activities[0].OrganizationName)
}

func TestClientReportGroupsConsultationsByDay(t *testing.T) {
	db := setupTimesheetTestDB(t)
	user, org := createClientReportTestData(t, db)

	consultations := []models.PhoneConsultation{
		{Date: day(2024, 6, 3, 9, 0), SpentTime: decimal.RequireFromString("0.25"),
			ClientFio: "Ivanov", UserID: user.ID},
		{Date: day(2024, 6, 3, 17, 30), SpentTime: decimal.RequireFromString("0.125"),
			ClientFio: "Ivanov", UserID: user.ID},
		{Date: day(2024, 6, 5, 11, 0), SpentTime: decimal.RequireFromString("0.5"),
			ClientFio: "Ivanov", UserID: user.ID},
		// Клиент другой организации
		{Date: day(2024, 6, 3, 12, 0), SpentTime: decimal.RequireFromString("1"),
			ClientFio: "Chuzhoy", UserID: user.ID},
		// Другой период
		{Date: day(2024, 7, 1, 9, 0), SpentTime: decimal.RequireFromString("0.25"),
			ClientFio: "Ivanov", UserID: user.ID},
	}
	require.NoError(t, db.Create(&consultations).Error)

	service := NewClientReportService(db)
	report, err := service.GetReportData(org.ID, 6, 2024)
	require.NoError(t, err)

	require.Len(t, report.PhoneConsultations, 2)
	assert.Len(t, report.PhoneConsultations["2024-06-03"], 2)
	assert.Len(t, report.PhoneConsultations["2024-06-05"], 1)
	for _, dayConsultations := range report.PhoneConsultations {
		for _, cons := range dayConsultations {
			assert.Equal(t, "Alfa", cons.OrganizationName)
		}
	}
}

// У организации без сотрудников консультаций быть не может
func TestClientReportWithoutEmployees(t *testing.T) {
	db := setupTimesheetTestDB(t)
	user, _ := createClientReportTestData(t, db)

	emptyOrg := models.Organization{ShortName: "Beta", FullName: "Beta LLC"}
	require.NoError(t, db.Create(&emptyOrg).Error)

	consultation := models.PhoneConsultation{
		Date: day(2024, 6, 3, 9, 0), SpentTime: decimal.RequireFromString("0.25"),
		ClientFio: "Ivanov", UserID: user.ID,
	}
	require.NoError(t, db.Create(&consultation).Error)

	service := NewClientReportService(db)
	report, err := service.GetReportData(emptyOrg.ID, 6, 2024)
	require.NoError(t, err)

	assert.Equal(t, "Beta", report.OrganizationName)
	assert.Empty(t, report.Activities)
	assert.Empty(t, report.PhoneConsultations)
}

func TestClientReportUnknownOrganization(t *testing.T) {
	db := setupTimesheetTestDB(t)

	service := NewClientReportService(db)
	_, err := service.GetReportData(9999, 6, 2024)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientReportInvalidPeriod(t *testing.T) {
	db := setupTimesheetTestDB(t)
	_, org := createClientReportTestData(t, db)

	service := NewClientReportService(db)
	_, err := service.GetReportData(org.ID, 13, 2024)

	assert.ErrorIs(t, err, ErrValidation)
}
