package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pocket-planner/internal/model"
	"pocket-planner/internal/notify"
	"pocket-planner/internal/repository"
	"pocket-planner/internal/service"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Category{}, &model.Item{}, &model.Medication{}))

	events := repository.NewEvents()
	userRepo := repository.NewUserRepository(db, events)
	categoryRepo := repository.NewCategoryRepository(db, events)
	itemRepo := repository.NewItemRepository(db, events)
	medRepo := repository.NewMedicationRepository(db, events)

	scheduler := service.NewReminderScheduler(time.Local, notify.NewLogNotifier())
	t.Cleanup(scheduler.Watch(events, medRepo))

	return New(":0",
		service.NewAuthService(userRepo, "test-secret", time.Hour),
		service.NewTaskService(itemRepo, categoryRepo),
		service.NewCategoryService(categoryRepo, itemRepo),
		service.NewMedicationService(medRepo, scheduler),
	)
}

func doJSON(t *testing.T, api *API, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, api *API) string {
	t.Helper()
	rec := doJSON(t, api, http.MethodPost, "/auth/register", "", gin.H{
		"email": "a@x.com", "password": "secret1", "confirm_password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, api, http.MethodPost, "/auth/login", "", gin.H{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/auth/register", "", gin.H{
		"email": "a@x.com", "password": "secret1", "confirm_password": "secret1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, api, http.MethodPost, "/auth/register", "", gin.H{
		"email": "a@x.com", "password": "other22", "confirm_password": "other22",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, api, http.MethodPost, "/auth/login", "", gin.H{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, api, http.MethodPost, "/auth/login", "", gin.H{
		"email": "a@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"password": "secret1", "confirm_password": "secret1"}},
		{"bad email", gin.H{"email": "nope", "password": "secret1", "confirm_password": "secret1"}},
		{"short password", gin.H{"email": "a@x.com", "password": "pw", "confirm_password": "pw"}},
		{"missing confirmation", gin.H{"email": "a@x.com", "password": "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, api, http.MethodPost, "/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAPIRequiresSession(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/api/tasks", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskLifecycle(t *testing.T) {
	api := newTestAPI(t)
	token := loginToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/tasks", token, gin.H{
		"title": "buy milk", "tags": []string{"errand"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 0, created.SortOrder)

	rec = doJSON(t, api, http.MethodPost, fmt.Sprintf("/api/tasks/%s/toggle", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var toggled model.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.True(t, toggled.IsCompleted)

	rec = doJSON(t, api, http.MethodPut, fmt.Sprintf("/api/tasks/%s/tags/urgent", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, []string{"errand", "urgent"}, items[0].Tags)

	rec = doJSON(t, api, http.MethodDelete, "/api/tasks/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/api/tasks/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReorderRejectsPartialSequence(t *testing.T) {
	api := newTestAPI(t)
	token := loginToken(t, api)

	var ids []string
	for i := 0; i < 3; i++ {
		rec := doJSON(t, api, http.MethodPost, "/api/tasks", token, gin.H{"title": fmt.Sprintf("task %d", i)})
		require.Equal(t, http.StatusCreated, rec.Code)
		var item model.Item
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
		ids = append(ids, item.ID)
	}

	rec := doJSON(t, api, http.MethodPost, "/api/tasks/reorder", token, gin.H{"ids": ids[:2]})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, api, http.MethodPost, "/api/tasks/reorder", token, gin.H{
		"ids": []string{ids[2], ids[1], ids[0]},
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCategoryDeleteDetaches(t *testing.T) {
	api := newTestAPI(t)
	token := loginToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/categories", token, gin.H{
		"name": "Work", "color": "#FF0000",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var category model.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &category))
	assert.Equal(t, "#FF0000", category.Color)

	rec = doJSON(t, api, http.MethodPost, "/api/tasks", token, gin.H{
		"title": "report", "category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var item model.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = doJSON(t, api, http.MethodDelete, "/api/categories/"+category.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/api/tasks/"+item.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Nil(t, got.CategoryID)
}

func TestMedicationEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := loginToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/medications", token, gin.H{
		"name":        "Aspirin",
		"dosage":      "100mg",
		"frequency":   "Daily",
		"start_date":  time.Now().Format(time.RFC3339),
		"reminder":    true,
		"time_of_day": []string{"morning", "evening"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var med model.Medication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &med))
	assert.True(t, med.IsActive)

	rec = doJSON(t, api, http.MethodPost, "/api/medications", token, gin.H{
		"name":        "Bad",
		"start_date":  time.Now().Format(time.RFC3339),
		"time_of_day": []string{"noon"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, api, http.MethodDelete, "/api/medications/"+med.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
