package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storekeeper/db"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestRouter wires the lifecycle handlers onto a bare engine against an
// in-memory store. Auth middleware is exercised separately; here we check
// that repo errors come out as the right status codes.
func setupTestRouter(t *testing.T) (*gin.Engine, *db.Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(conn))

	s := &Srv{Repo: db.NewRepo(conn)}
	empCtl := NewEmployeeController(s)
	matCtl := NewMaterialController(s)
	borCtl := NewBorrowingController(s)

	r := gin.New()
	r.POST("/api/employees", empCtl.Register)
	r.POST("/api/employees/:id/leave", empCtl.ApproveLeave)
	r.POST("/api/employees/:id/return-all", empCtl.ReturnAll)
	r.POST("/api/materials", matCtl.Register)
	r.PUT("/api/materials/:id/status", matCtl.SetStatus)
	r.POST("/api/borrowings", borCtl.Issue)
	r.POST("/api/borrowings/return", borCtl.ReturnSelected)
	return r, s.Repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLifecycleStatusMapping(t *testing.T) {
	r, repo := setupTestRouter(t)
	ctx := t.Context()

	w := doJSON(t, r, http.MethodPost, "/api/employees", gin.H{
		"name": "Abeba", "fatherName": "Kassa", "grandFatherName": "Girma",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var emp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &emp))

	w = doJSON(t, r, http.MethodPost, "/api/materials", gin.H{"name": "drill", "serialNumber": "SN-H1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var mat struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mat))

	// Duplicate serial -> 409
	w = doJSON(t, r, http.MethodPost, "/api/materials", gin.H{"name": "drill", "serialNumber": "SN-H1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Missing required field -> 400
	w = doJSON(t, r, http.MethodPost, "/api/employees", gin.H{"name": "only"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Issue -> 201
	w = doJSON(t, r, http.MethodPost, "/api/borrowings", gin.H{
		"employeeId": emp.ID, "materialIds": []string{mat.ID}, "purpose": "demo",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Double issue -> 409
	w = doJSON(t, r, http.MethodPost, "/api/borrowings", gin.H{
		"employeeId": emp.ID, "materialIds": []string{mat.ID},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Leave with open borrowing -> 412
	w = doJSON(t, r, http.MethodPost, "/api/employees/"+emp.ID+"/leave", nil)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	// Override a borrowed unit -> 409
	w = doJSON(t, r, http.MethodPut, "/api/materials/"+mat.ID+"/status", gin.H{"status": "lost"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Return all, then leave goes through.
	w = doJSON(t, r, http.MethodPost, "/api/employees/"+emp.ID+"/return-all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/employees/"+emp.ID+"/leave", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unknown employee -> 404
	w = doJSON(t, r, http.MethodPost, "/api/employees/9e9c9b8a-0000-0000-0000-000000000000/leave", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	got, err := repo.FindEmployeeByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "left", got.Status)
}
