package db

import (
	"testing"

	"storekeeper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportEmployeesDedup(t *testing.T) {
	r := setupTestRepo(t)
	ctx := t.Context()

	existing := createTestEmployee(t, r, "Almaz")

	batch := []EmployeeRow{
		{
			// Same natural key as the registered employee, different details:
			// must be skipped and must not touch the stored row.
			Name:            existing.Name,
			FatherName:      existing.FatherName,
			GrandFatherName: existing.GrandFatherName,
			Position:        "driver",
		},
		{
			Name:            "Genet",
			FatherName:      "Tesfaye",
			GrandFatherName: "Bekele",
			Position:        "storekeeper",
			PhoneNumber:     "0911-000000",
		},
	}

	res, err := r.ImportEmployees(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, RowSkipped, res.Outcomes[0].Kind)
	assert.Equal(t, RowAdded, res.Outcomes[1].Kind)

	kept, err := r.FindEmployeeByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.Position, kept.Position, "importer never updates existing rows")

	// Rerunning the identical batch is idempotent: everything skips.
	res, err = r.ImportEmployees(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 2, res.Skipped)

	var total int64
	require.NoError(t, r.DB.Model(&models.Employee{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestImportEmployeesRejectsIncompleteRows(t *testing.T) {
	r := setupTestRepo(t)

	res, err := r.ImportEmployees(t.Context(), []EmployeeRow{
		{Name: "OnlyName"},
		{Name: "  ", FatherName: "X", GrandFatherName: "Y"},
		{Name: "Fikir", FatherName: "Abel", GrandFatherName: "Worku"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Outcomes, 3)
	assert.Equal(t, RowRejected, res.Outcomes[0].Kind)
	assert.Equal(t, RowRejected, res.Outcomes[1].Kind)
	assert.Equal(t, RowAdded, res.Outcomes[2].Kind)
}

func TestImportMaterialsDedup(t *testing.T) {
	r := setupTestRepo(t)
	ctx := t.Context()

	createTestMaterial(t, r, "SN-IMP-1")

	batch := []MaterialRow{
		{Name: "theodolite", SerialNumber: "SN-IMP-1"},
		{Name: "GPS unit", SerialNumber: "SN-IMP-2"},
		{Name: "no serial", SerialNumber: ""},
	}

	res, err := r.ImportMaterials(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, RowRejected, res.Outcomes[2].Kind)

	imported, err := r.InventoryByStatus(ctx, models.MaterialAvailable)
	require.NoError(t, err)
	assert.Len(t, imported, 2)

	res, err = r.ImportMaterials(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 2, res.Skipped)
}
