package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend_timesheet/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Полный сценарий: справочники, записи за месяц, формирование табеля
// и его чтение через HTTP API
func TestTimesheetFlow(t *testing.T) {
	db := setupAPITest(t)
	router := setupTestRouter(db)

	user := createAPITestUser(t, db, "petrov", "secret123", "user", []string{"timesheet"})
	token := issueTestToken(t, &user, "timesheet")

	// Организация и ее сотрудник
	w := postJSON(router, "/api/timesheet/organizations", gin.H{
		"shortName": "A", "fullName": "Organization A",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var orgResponse struct {
		Data models.Organization `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orgResponse))
	orgID := orgResponse.Data.ID

	w = postJSON(router, "/api/timesheet/employees", gin.H{
		"fio": "Ivanov", "organizationId": orgID,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	// Рабочая активность и телефонная консультация за июнь
	w = postJSON(router, "/api/timesheet/work-activities", gin.H{
		"date": "2024-06-03", "workTime": 2.0, "activityType": "Setup",
		"organizationId": orgID,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	// 15 минут округляются до 0.25 часа при сохранении
	w = postJSON(router, "/api/timesheet/phone-consultations", gin.H{
		"date": "2024-06-03", "spentTimeMinutes": 15, "clientFio": "Ivanov",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var consResponse struct {
		Data models.PhoneConsultation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &consResponse))
	assert.Equal(t, "0.250", consResponse.Data.SpentTime.StringFixed(3))

	// Формирование табеля
	w = postJSON(router, "/api/timesheet/generate", gin.H{"month": 6, "year": 2024}, token)
	require.Equal(t, http.StatusOK, w.Code)

	// Чтение строк табеля
	w = getJSON(router, "/api/timesheet/entries?month=6&year=2024", token)
	require.Equal(t, http.StatusOK, w.Code)

	var entriesResponse struct {
		Data []models.TimesheetEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entriesResponse))
	require.Len(t, entriesResponse.Data, 1)
	assert.Equal(t, "2.500", entriesResponse.Data[0].WorkHours.StringFixed(3))
	assert.Equal(t,
		"Phone consultations A (0.500 h. - Ivanov), 2.000 h. (A Setup )",
		entriesResponse.Data[0].Description)

	// Данные для печатной формы
	w = getJSON(router, "/api/timesheet/report-data?month=6&year=2024", token)
	require.Equal(t, http.StatusOK, w.Code)

	var reportResponse struct {
		Data struct {
			Entries  []models.TimesheetEntry `json:"entries"`
			UserInfo struct {
				Login string `json:"login"`
			} `json:"userInfo"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reportResponse))
	assert.Len(t, reportResponse.Data.Entries, 1)
	assert.Equal(t, "petrov", reportResponse.Data.UserInfo.Login)

	// Отчет по клиентам за период
	w = getJSON(router,
		fmt.Sprintf("/api/timesheet/client-report-data?month=6&year=2024&organizationId=%d", orgID),
		token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateRequiresMonthAndYear(t *testing.T) {
	db := setupAPITest(t)
	router := setupTestRouter(db)

	user := createAPITestUser(t, db, "petrov", "secret123", "user", []string{"timesheet"})
	token := issueTestToken(t, &user, "timesheet")

	assert.Equal(t, http.StatusBadRequest,
		postJSON(router, "/api/timesheet/generate", gin.H{"month": 6}, token).Code)
	assert.Equal(t, http.StatusBadRequest,
		postJSON(router, "/api/timesheet/generate", nil, token).Code)
	assert.Equal(t, http.StatusBadRequest,
		postJSON(router, "/api/timesheet/generate", gin.H{"month": 13, "year": 2024}, token).Code)

	assert.Equal(t, http.StatusBadRequest,
		getJSON(router, "/api/timesheet/entries", token).Code)
	assert.Equal(t, http.StatusBadRequest,
		getJSON(router, "/api/timesheet/entries?month=6", token).Code)
}

func TestEntriesEmptyBeforeGeneration(t *testing.T) {
	db := setupAPITest(t)
	router := setupTestRouter(db)

	user := createAPITestUser(t, db, "petrov", "secret123", "user", []string{"timesheet"})
	token := issueTestToken(t, &user, "timesheet")

	w := getJSON(router, "/api/timesheet/entries?month=6&year=2024", token)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []models.TimesheetEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Data)
}

// Записи видны только их владельцу
func TestWorkActivitiesScopedToOwner(t *testing.T) {
	db := setupAPITest(t)
	router := setupTestRouter(db)

	owner := createAPITestUser(t, db, "owner", "secret123", "user", []string{"timesheet"})
	ownerToken := issueTestToken(t, &owner, "timesheet")

	other := createAPITestUser(t, db, "other", "secret123", "user", []string{"timesheet"})
	otherToken := issueTestToken(t, &other, "timesheet")

	w := postJSON(router, "/api/timesheet/work-activities", gin.H{
		"date": "2024-06-03", "workTime": 2.0, "activityType": "Setup",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.WorkActivity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Чужая запись не находится ни чтением, ни удалением
	path := fmt.Sprintf("/api/timesheet/work-activities/%d", created.Data.ID)
	assert.Equal(t, http.StatusNotFound, getJSON(router, path, otherToken).Code)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotFound, w2.Code)

	assert.Equal(t, http.StatusOK, getJSON(router, path, ownerToken).Code)
}

func TestExportEntriesEndpoint(t *testing.T) {
	db := setupAPITest(t)
	router := setupTestRouter(db)

	user := createAPITestUser(t, db, "petrov", "secret123", "user", []string{"timesheet"})
	token := issueTestToken(t, &user, "timesheet")

	w := postJSON(router, "/api/timesheet/work-activities", gin.H{
		"date": "2024-06-03", "workTime": 2.0, "activityType": "Setup",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(router, "/api/timesheet/generate", gin.H{"month": 6, "year": 2024}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = getJSON(router, "/api/timesheet/entries/export?month=6&year=2024&format=csv", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(w.Header().Get("Content-Disposition"), "attachment; filename=timesheet_petrov_06_2024_"))
	assert.Contains(t, w.Body.String(), "03.06.2024")

	w = getJSON(router, "/api/timesheet/entries/export?month=6&year=2024", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))

	w = getJSON(router, "/api/timesheet/entries/export?month=6&year=2024&format=docx", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
