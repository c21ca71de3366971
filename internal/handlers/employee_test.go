package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/onboarding/internal/events"
	"github.com/jonesrussell/onboarding/internal/importer"
	"github.com/jonesrussell/onboarding/internal/logger"
	"github.com/jonesrussell/onboarding/internal/models"
	"github.com/jonesrussell/onboarding/internal/repository"
)

func newEmployeeRouter(store *mockEmployeeStore, publisher *recordingPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewEmployeeHandler(store, publisher, logger.NewNop())

	router := gin.New()
	router.POST("/employees", handler.Create)
	router.GET("/employees", handler.List)
	router.GET("/employees/:id", handler.GetByID)
	router.PUT("/employees/:id", handler.Update)
	router.DELETE("/employees/:id", handler.Delete)
	return router
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("creates and publishes", func(t *testing.T) {
		store := &mockEmployeeStore{}
		publisher := &recordingPublisher{}
		router := newEmployeeRouter(store, publisher)

		store.On("Create", mock.Anything, mock.AnythingOfType("*models.Employee")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Employee).ID = uuid.New()
			}).
			Return(nil)

		body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, publisher.published(), 1)
		assert.Equal(t, events.EmployeeCreated, publisher.published()[0].EventType)
		store.AssertExpectations(t)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		store := &mockEmployeeStore{}
		router := newEmployeeRouter(store, &recordingPublisher{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"first_name":"Ada"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		store := &mockEmployeeStore{}
		router := newEmployeeRouter(store, &recordingPublisher{})

		body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","status":"paused"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure maps to 500", func(t *testing.T) {
		store := &mockEmployeeStore{}
		publisher := &recordingPublisher{}
		router := newEmployeeRouter(store, publisher)

		store.On("Create", mock.Anything, mock.Anything).Return(errors.New("boom"))

		body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, publisher.published())
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store := &mockEmployeeStore{}
		router := newEmployeeRouter(store, &recordingPublisher{})

		id := uuid.New()
		store.On("GetByID", mock.Anything, id).Return(&models.Employee{
			ID: id, FirstName: "Ada", LastName: "Lovelace",
			Email: "ada@example.com", Status: models.StatusPending,
		}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+id.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var got models.Employee
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, id, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		store := &mockEmployeeStore{}
		router := newEmployeeRouter(store, &recordingPublisher{})

		id := uuid.New()
		store.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		store := &mockEmployeeStore{}
		router := newEmployeeRouter(store, &recordingPublisher{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "GetByID")
	})
}

func TestEmployeeHandler_List(t *testing.T) {
	store := &mockEmployeeStore{}
	router := newEmployeeRouter(store, &recordingPublisher{})

	store.On("List", mock.Anything).Return([]models.Employee{
		{ID: uuid.New(), Email: "ada@example.com", Status: models.StatusPending},
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("status change publishes both events", func(t *testing.T) {
		store := &mockEmployeeStore{}
		publisher := &recordingPublisher{}
		router := newEmployeeRouter(store, publisher)

		id := uuid.New()
		store.On("GetByID", mock.Anything, id).Return(&models.Employee{
			ID: id, FirstName: "Ada", LastName: "Lovelace",
			Email: "ada@example.com", Status: models.StatusPending,
			CreatedAt: time.Now().UTC(),
		}, nil)
		store.On("Update", mock.Anything, mock.Anything).Return(nil)

		body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","status":"in_progress"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/employees/"+id.String(), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		published := publisher.published()
		require.Len(t, published, 2)
		assert.Equal(t, events.EmployeeUpdated, published[0].EventType)
		assert.Equal(t, events.StatusChanged, published[1].EventType)

		payload, ok := published[1].Payload.(events.StatusChangedPayload)
		require.True(t, ok)
		assert.Equal(t, "pending", payload.Previous)
		assert.Equal(t, "in_progress", payload.Current)
	})

	t.Run("unchanged status publishes only the update event", func(t *testing.T) {
		store := &mockEmployeeStore{}
		publisher := &recordingPublisher{}
		router := newEmployeeRouter(store, publisher)

		id := uuid.New()
		store.On("GetByID", mock.Anything, id).Return(&models.Employee{
			ID: id, Email: "ada@example.com", Status: models.StatusPending,
		}, nil)
		store.On("Update", mock.Anything, mock.Anything).Return(nil)

		body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/employees/"+id.String(), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, publisher.published(), 1)
		assert.Equal(t, events.EmployeeUpdated, publisher.published()[0].EventType)
	})

	t.Run("not found", func(t *testing.T) {
		store := &mockEmployeeStore{}
		router := newEmployeeRouter(store, &recordingPublisher{})

		id := uuid.New()
		store.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

		body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/employees/"+id.String(), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	store := &mockEmployeeStore{}
	publisher := &recordingPublisher{}
	router := newEmployeeRouter(store, publisher)

	id := uuid.New()
	store.On("Delete", mock.Anything, id).Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+id.String(), nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, publisher.published(), 1)
	assert.Equal(t, events.EmployeeDeleted, publisher.published()[0].EventType)
}

func newImportRouter(store *mockEmployeeStore, publisher *recordingPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewEmployeeHandler(store, publisher, logger.NewNop())
	router := gin.New()
	router.POST("/employees/import", handler.Import)
	return router
}

func rosterUpload(t *testing.T, rows [][]string) (*bytes.Buffer, string) {
	t.Helper()

	workbook := excelize.NewFile()
	defer workbook.Close()

	header := []string{"First Name", "Last Name", "Email", "Department", "Start Date"}
	for r, row := range append([][]string{header}, rows...) {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, workbook.SetCellValue("Sheet1", cell, value))
		}
	}

	var sheet bytes.Buffer
	require.NoError(t, workbook.Write(&sheet))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "roster.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sheet.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestEmployeeHandler_Import(t *testing.T) {
	t.Run("missing file field", func(t *testing.T) {
		router := newImportRouter(&mockEmployeeStore{}, &recordingPublisher{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees/import", bytes.NewReader(nil))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("save failure names the source row even after invalid rows", func(t *testing.T) {
		store := &mockEmployeeStore{}
		router := newImportRouter(store, &recordingPublisher{})

		store.On("Create", mock.Anything, mock.Anything).Return(errors.New("duplicate email"))

		// sheet row 2 fails validation, sheet row 3 fails at save time
		body, contentType := rosterUpload(t, [][]string{
			{"Ada", "Lovelace", "", "", ""},
			{"Grace", "Hopper", "grace@example.com", "", ""},
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees/import", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Count  int                 `json:"count"`
			Errors []importer.RowError `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Count)
		require.Len(t, resp.Errors, 2)
		assert.Equal(t, 2, resp.Errors[0].Row)
		assert.Contains(t, resp.Errors[0].Reason, "email")
		assert.Equal(t, 3, resp.Errors[1].Row)
		assert.Equal(t, "could not save employee", resp.Errors[1].Reason)
	})
}
