// db/repo_lifecycle.go
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storekeeper/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Lifecycle operations. Every read-check-write sequence runs as one
// transaction; invariant transitions are conditional UPDATEs whose
// RowsAffected decides the outcome, so two racing writers cannot both
// pass the same guard. The partial unique index on open borrowings
// backstops double-issue at the schema level.
//
// Employee-scoped guards (leave approval, waiting enqueue, issue-to-active)
// cannot be expressed as a single conditional write, so every operation that
// reads or changes an employee's custody first writes that employee's row.
// Under read committed the second writer blocks on the row until the first
// commits, and its own guard then sees the committed state; plain reads give
// no such ordering.

// touchEmployee write-locks the employee row for the rest of the
// transaction. RowsAffected 0 means the employee does not exist.
func touchEmployee(tx *gorm.DB, employeeID string) error {
	res := tx.Model(&models.Employee{}).
		Where("id = ?", employeeID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("employee %s: %w", employeeID, ErrNotFound)
	}
	return nil
}

// IssueMaterials creates one open borrowing per material and flips each
// material available -> borrowed. All-or-nothing: any missing or already
// borrowed material aborts the whole batch.
func (r *Repo) IssueMaterials(ctx context.Context, employeeID string, materialIDs []string, purpose string) ([]models.Borrowing, error) {
	ids := dedup(materialIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no materials requested: %w", ErrInvalidInput)
	}

	var created []models.Borrowing
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional write on the employee row: only an active employee may
		// receive materials, and the row lock orders this issue against any
		// concurrent leave approval.
		res := tx.Model(&models.Employee{}).
			Where("id = ? AND status = ?", employeeID, models.EmployeeActive).
			Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&models.Employee{}).Where("id = ?", employeeID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("employee %s: %w", employeeID, ErrNotFound)
			}
			return fmt.Errorf("employee %s has left: %w", employeeID, ErrPreconditionFailed)
		}

		now := time.Now().UTC()
		rows := make([]models.Borrowing, 0, len(ids))
		for _, mid := range ids {
			res := tx.Model(&models.Material{}).
				Where("id = ? AND status = ?", mid, models.MaterialAvailable).
				Update("status", models.MaterialBorrowed)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var n int64
				if err := tx.Model(&models.Material{}).Where("id = ?", mid).Count(&n).Error; err != nil {
					return err
				}
				if n == 0 {
					return fmt.Errorf("material %s: %w", mid, ErrNotFound)
				}
				return fmt.Errorf("material %s not available: %w", mid, ErrConflict)
			}
			rows = append(rows, models.Borrowing{
				ID:         uuid.NewString(),
				EmployeeID: employeeID,
				MaterialID: mid,
				Purpose:    purpose,
				BorrowDate: now,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("concurrent issue detected: %w", ErrConflict)
			}
			return err
		}
		created = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReturnAll closes every open borrowing for the employee and releases the
// materials. Returns the borrowings that were closed; none is not an error.
func (r *Repo) ReturnAll(ctx context.Context, employeeID string) ([]models.Borrowing, error) {
	var closed []models.Borrowing
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := touchEmployee(tx, employeeID); err != nil {
			return err
		}

		var open []models.Borrowing
		if err := tx.
			Where("employee_id = ? AND NOT is_returned", employeeID).
			Find(&open).Error; err != nil {
			return err
		}
		if len(open) == 0 {
			return nil
		}

		borrowingIDs := make([]string, len(open))
		materialIDs := make([]string, len(open))
		for i, b := range open {
			borrowingIDs[i] = b.ID
			materialIDs[i] = b.MaterialID
		}

		if err := tx.Model(&models.Borrowing{}).
			Where("id IN ? AND NOT is_returned", borrowingIDs).
			Update("is_returned", true).Error; err != nil {
			return err
		}
		// Release only materials still marked borrowed; an administrative
		// lost/maintenance override survives the return.
		if err := tx.Model(&models.Material{}).
			Where("id IN ? AND status = ?", materialIDs, models.MaterialBorrowed).
			Update("status", models.MaterialAvailable).Error; err != nil {
			return err
		}

		for i := range open {
			open[i].IsReturned = true
		}
		closed = open
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// ReturnSelected closes exactly the named open borrowings, skipping any that
// are unknown or already closed, and reports the IDs actually closed.
func (r *Repo) ReturnSelected(ctx context.Context, borrowingIDs []string) ([]string, error) {
	ids := dedup(borrowingIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no borrowings named: %w", ErrInvalidInput)
	}

	var returned []string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		touched := map[string]bool{}
		for _, id := range ids {
			var b models.Borrowing
			err := tx.Where("id = ? AND NOT is_returned", id).First(&b).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			// Order this return against any concurrent guard counting the
			// holder's open borrowings.
			if !touched[b.EmployeeID] {
				if err := touchEmployee(tx, b.EmployeeID); err != nil {
					return err
				}
				touched[b.EmployeeID] = true
			}
			res := tx.Model(&models.Borrowing{}).
				Where("id = ? AND NOT is_returned", id).
				Update("is_returned", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			if err := tx.Model(&models.Material{}).
				Where("id = ? AND status = ?", b.MaterialID, models.MaterialBorrowed).
				Update("status", models.MaterialAvailable).Error; err != nil {
				return err
			}
			returned = append(returned, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return returned, nil
}

// EnqueueWaiting queues the employee for a return follow-up. Requires at
// least one open borrowing; enqueueing an already queued employee is a no-op.
func (r *Repo) EnqueueWaiting(ctx context.Context, employeeID string) (*models.WaitingEntry, error) {
	var entry models.WaitingEntry
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := touchEmployee(tx, employeeID); err != nil {
			return err
		}

		n, err := countOpenBorrowings(tx, employeeID)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("employee %s holds nothing to return: %w", employeeID, ErrPreconditionFailed)
		}

		if err := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "employee_id"}},
				DoNothing: true,
			}).
			Create(&models.WaitingEntry{ID: uuid.NewString(), EmployeeID: employeeID}).Error; err != nil {
			return err
		}
		return tx.Where("employee_id = ?", employeeID).First(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DequeueWaiting removes the employee from the waiting queue. Idempotent.
func (r *Repo) DequeueWaiting(ctx context.Context, employeeID string) error {
	return r.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&models.WaitingEntry{}).Error
}

// ApproveLeave marks the employee as left. Blocked while any open borrowing
// exists; idempotent once the employee is already out.
func (r *Repo) ApproveLeave(ctx context.Context, employeeID string) (*models.LeaveRecord, error) {
	var rec models.LeaveRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Write status=left before counting: the row write orders this
		// approval against a concurrent issue, which would otherwise pass
		// its own guard on the not-yet-committed active status. Rollback
		// restores the status if the count fails.
		res := tx.Model(&models.Employee{}).
			Where("id = ?", employeeID).
			Update("status", models.EmployeeLeft)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("employee %s: %w", employeeID, ErrNotFound)
		}

		n, err := countOpenBorrowings(tx, employeeID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("employee %s still holds %d item(s): %w", employeeID, n, ErrPreconditionFailed)
		}

		// A return racing this approval could strand a stale queue entry.
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.WaitingEntry{}).Error; err != nil {
			return err
		}

		if err := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "employee_id"}},
				DoNothing: true,
			}).
			Create(&models.LeaveRecord{
				ID:         uuid.NewString(),
				EmployeeID: employeeID,
				LeaveDate:  time.Now().UTC(),
			}).Error; err != nil {
			return err
		}
		return tx.Where("employee_id = ?", employeeID).First(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ReinstateFromLeave puts the employee back on the active roster. Idempotent.
func (r *Repo) ReinstateFromLeave(ctx context.Context, employeeID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var emp models.Employee
		if err := tx.First(&emp, "id = ?", employeeID).Error; err != nil {
			return notFoundOr(err, "employee %s", employeeID)
		}
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.LeaveRecord{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Employee{}).
			Where("id = ?", employeeID).
			Update("status", models.EmployeeActive).Error
	})
}

// SetMaterialStatus applies an administrative override (available,
// maintenance or lost). borrowed is derived from open borrowings and is
// never settable directly; a material with an open borrowing cannot be
// overridden at all.
func (r *Repo) SetMaterialStatus(ctx context.Context, materialID, status string) (*models.Material, error) {
	switch status {
	case models.MaterialAvailable, models.MaterialMaintenance, models.MaterialLost:
	default:
		return nil, fmt.Errorf("status %q not settable: %w", status, ErrInvalidInput)
	}

	var m models.Material
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Material{}).
			Where("id = ? AND status <> ?", materialID, models.MaterialBorrowed).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&models.Material{}).Where("id = ?", materialID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("material %s: %w", materialID, ErrNotFound)
			}
			return fmt.Errorf("material %s is borrowed: %w", materialID, ErrConflict)
		}
		return tx.First(&m, "id = ?", materialID).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func countOpenBorrowings(tx *gorm.DB, employeeID string) (int64, error) {
	var n int64
	err := tx.Model(&models.Borrowing{}).
		Where("employee_id = ? AND NOT is_returned", employeeID).
		Count(&n).Error
	return n, err
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
