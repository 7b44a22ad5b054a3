// db/repo_registry.go
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storekeeper/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Direct registration of employees and materials. Unlike the bulk importer,
// a malformed registration is an error, not a skip.

type RegisterEmployeeInput struct {
	Name             string
	FatherName       string
	GrandFatherName  string
	Sex              string
	Position         string
	EmploymentStatus string
	PhoneNumber      string
	Project          string
}

func (r *Repo) RegisterEmployee(ctx context.Context, in RegisterEmployeeInput) (*models.Employee, error) {
	name := strings.TrimSpace(in.Name)
	father := strings.TrimSpace(in.FatherName)
	grand := strings.TrimSpace(in.GrandFatherName)
	if name == "" || father == "" || grand == "" {
		return nil, fmt.Errorf("employee needs all three name fields: %w", ErrInvalidInput)
	}

	e := &models.Employee{
		ID:               uuid.NewString(),
		Name:             name,
		FatherName:       father,
		GrandFatherName:  grand,
		Sex:              strings.TrimSpace(in.Sex),
		Position:         strings.TrimSpace(in.Position),
		EmploymentStatus: strings.TrimSpace(in.EmploymentStatus),
		PhoneNumber:      strings.TrimSpace(in.PhoneNumber),
		Project:          strings.TrimSpace(in.Project),
		Status:           models.EmployeeActive,
	}
	if err := r.DB.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("employee %s %s %s already registered: %w", name, father, grand, ErrConflict)
		}
		return nil, err
	}
	return e, nil
}

type RegisterMaterialInput struct {
	Name         string
	SerialNumber string
}

func (r *Repo) RegisterMaterial(ctx context.Context, in RegisterMaterialInput) (*models.Material, error) {
	name := strings.TrimSpace(in.Name)
	serial := strings.TrimSpace(in.SerialNumber)
	if name == "" || serial == "" {
		return nil, fmt.Errorf("material needs name and serial number: %w", ErrInvalidInput)
	}

	m := &models.Material{
		ID:           uuid.NewString(),
		SerialNumber: serial,
		Name:         name,
		Status:       models.MaterialAvailable,
	}
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("serial number %q already registered: %w", serial, ErrConflict)
		}
		return nil, err
	}
	return m, nil
}

func (r *Repo) FindEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	var e models.Employee
	if err := r.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "employee %s", id)
	}
	return &e, nil
}

func (r *Repo) FindMaterialByID(ctx context.Context, id string) (*models.Material, error) {
	var m models.Material
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "material %s", id)
	}
	return &m, nil
}

func (r *Repo) GetOpenBorrowingsFor(ctx context.Context, employeeID string) ([]models.Borrowing, error) {
	var bs []models.Borrowing
	err := r.DB.WithContext(ctx).
		Where("employee_id = ? AND NOT is_returned", employeeID).
		Order("borrow_date DESC").
		Find(&bs).Error
	return bs, err
}

type ListEmployeesQuery struct {
	Q    string // matches any of the three name fields
	Page int
	Size int
}

type PagedEmployees struct {
	Total     int64             `json:"total"`
	Employees []models.Employee `json:"employees"`
}

func (r *Repo) ListEmployees(ctx context.Context, q ListEmployeesQuery) (*PagedEmployees, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Employee{})
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(father_name) LIKE ? OR LOWER(grand_father_name) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var es []models.Employee
	if err := tx.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&es).Error; err != nil {
		return nil, err
	}
	return &PagedEmployees{Total: total, Employees: es}, nil
}
