package db

import (
	"testing"

	"storekeeper/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestRepo builds a Repo on an in-memory sqlite store with the real
// migration applied. A single connection keeps sqlite's locking out of the
// way; transactions still serialize exactly like they would under Postgres.
func setupTestRepo(t *testing.T) *Repo {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func createTestEmployee(t *testing.T, r *Repo, name string) *models.Employee {
	t.Helper()
	e, err := r.RegisterEmployee(t.Context(), RegisterEmployeeInput{
		Name:            name,
		FatherName:      name + "-father",
		GrandFatherName: name + "-grandfather",
		Position:        "surveyor",
		Project:         "north-site",
	})
	require.NoError(t, err)
	return e
}

func createTestMaterial(t *testing.T, r *Repo, serial string) *models.Material {
	t.Helper()
	m, err := r.RegisterMaterial(t.Context(), RegisterMaterialInput{
		Name:         "tool " + serial,
		SerialNumber: serial,
	})
	require.NoError(t, err)
	return m
}

func materialStatus(t *testing.T, r *Repo, id string) string {
	t.Helper()
	m, err := r.FindMaterialByID(t.Context(), id)
	require.NoError(t, err)
	return m.Status
}

// checkCustodyInvariants asserts the two store-wide invariants: a material
// is borrowed exactly when an open borrowing references it, and no left
// employee holds an open borrowing.
func checkCustodyInvariants(t *testing.T, r *Repo) {
	t.Helper()

	var materials []models.Material
	require.NoError(t, r.DB.Find(&materials).Error)
	for _, m := range materials {
		var open int64
		require.NoError(t, r.DB.Model(&models.Borrowing{}).
			Where("material_id = ? AND NOT is_returned", m.ID).
			Count(&open).Error)
		if m.Status == models.MaterialBorrowed {
			require.Equal(t, int64(1), open, "borrowed material %s has no open borrowing", m.SerialNumber)
		} else {
			require.Zero(t, open, "material %s has status %s but an open borrowing", m.SerialNumber, m.Status)
		}
	}

	var leaked int64
	require.NoError(t, r.DB.
		Table(models.BorrowingTable+" b").
		Joins("JOIN "+models.EmployeeTable+" e ON e.id = b.employee_id").
		Where("NOT b.is_returned AND e.status = ?", models.EmployeeLeft).
		Count(&leaked).Error)
	require.Zero(t, leaked, "left employee still holds an open borrowing")
}

func newID() string { return uuid.NewString() }
