// db/repo_query.go
package db

import (
	"context"
	"fmt"
	"time"

	"storekeeper/models"
)

// Read-only projections for the reporting/export layer. No side effects,
// no formatting; flat rows assembled with explicit joins.

// HoldingRow is one open borrowing with the material it references.
type HoldingRow struct {
	BorrowingID  string    `json:"borrowingId"`
	EmployeeID   string    `json:"employeeId"`
	MaterialID   string    `json:"materialId"`
	MaterialName string    `json:"materialName"`
	SerialNumber string    `json:"serialNumber"`
	Purpose      string    `json:"purpose,omitempty"`
	BorrowDate   time.Time `json:"borrowDate"`
}

type ActiveRosterEntry struct {
	Employee models.Employee `json:"employee"`
	Holdings []HoldingRow    `json:"holdings"`
}

// ActiveRoster lists every employee not marked left, each annotated with its
// open borrowings and the materials they reference.
func (r *Repo) ActiveRoster(ctx context.Context) ([]ActiveRosterEntry, error) {
	var emps []models.Employee
	if err := r.DB.WithContext(ctx).
		Where("status <> ?", models.EmployeeLeft).
		Order("name, father_name, grand_father_name").
		Find(&emps).Error; err != nil {
		return nil, err
	}

	var holdings []HoldingRow
	if err := r.DB.WithContext(ctx).
		Table(models.BorrowingTable+" b").
		Select(`
			b.id          AS borrowing_id,
			b.employee_id,
			b.purpose,
			b.borrow_date,
			m.id          AS material_id,
			m.name        AS material_name,
			m.serial_number
		`).
		Joins("JOIN "+models.MaterialTable+" m ON m.id = b.material_id").
		Where("NOT b.is_returned").
		Order("b.borrow_date DESC").
		Scan(&holdings).Error; err != nil {
		return nil, err
	}

	byEmployee := make(map[string][]HoldingRow, len(holdings))
	for _, h := range holdings {
		byEmployee[h.EmployeeID] = append(byEmployee[h.EmployeeID], h)
	}

	entries := make([]ActiveRosterEntry, 0, len(emps))
	for _, e := range emps {
		entries = append(entries, ActiveRosterEntry{Employee: e, Holdings: byEmployee[e.ID]})
	}
	return entries, nil
}

// LeaveRosterRow is a left employee with its leave record.
type LeaveRosterRow struct {
	EmployeeID      string    `json:"employeeId"`
	Name            string    `json:"name"`
	FatherName      string    `json:"fatherName"`
	GrandFatherName string    `json:"grandFatherName"`
	Position        string    `json:"position,omitempty"`
	Project         string    `json:"project,omitempty"`
	LeaveDate       time.Time `json:"leaveDate"`
}

func (r *Repo) LeaveRoster(ctx context.Context) ([]LeaveRosterRow, error) {
	var rows []LeaveRosterRow
	err := r.DB.WithContext(ctx).
		Table(models.EmployeeTable+" e").
		Select(`
			e.id   AS employee_id,
			e.name, e.father_name, e.grand_father_name,
			e.position, e.project,
			l.leave_date
		`).
		Joins("JOIN "+models.LeaveTable+" l ON l.employee_id = e.id").
		Where("e.status = ?", models.EmployeeLeft).
		Order("l.leave_date DESC").
		Scan(&rows).Error
	return rows, err
}

// WaitingRosterRow is a queued employee with when it was queued.
type WaitingRosterRow struct {
	EmployeeID      string    `json:"employeeId"`
	Name            string    `json:"name"`
	FatherName      string    `json:"fatherName"`
	GrandFatherName string    `json:"grandFatherName"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	Project         string    `json:"project,omitempty"`
	QueuedAt        time.Time `json:"queuedAt"`
}

func (r *Repo) WaitingRoster(ctx context.Context) ([]WaitingRosterRow, error) {
	var rows []WaitingRosterRow
	err := r.DB.WithContext(ctx).
		Table(models.WaitingTable+" w").
		Select(`
			e.id   AS employee_id,
			e.name, e.father_name, e.grand_father_name,
			e.phone_number, e.project,
			w.created_at AS queued_at
		`).
		Joins("JOIN "+models.EmployeeTable+" e ON e.id = w.employee_id").
		Order("w.created_at").
		Scan(&rows).Error
	return rows, err
}

// InventoryByStatus lists materials, optionally filtered by status.
// Empty string or "all" means everything.
func (r *Repo) InventoryByStatus(ctx context.Context, status string) ([]models.Material, error) {
	q := r.DB.WithContext(ctx).Order("created_at DESC")
	switch status {
	case "", "all":
	case models.MaterialAvailable, models.MaterialBorrowed, models.MaterialMaintenance, models.MaterialLost:
		q = q.Where("status = ?", status)
	default:
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrInvalidInput)
	}
	var ms []models.Material
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}
