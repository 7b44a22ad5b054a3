// models/material.go
package models

import "time"

const MaterialTable = "ast_materials"
const BorrowingTable = "ast_borrowings"

// Material lifecycle status. available/borrowed are derived from borrowing
// records; maintenance/lost are administrative overrides.
const (
	MaterialAvailable   = "available"
	MaterialBorrowed    = "borrowed"
	MaterialMaintenance = "maintenance"
	MaterialLost        = "lost"
)

type Material struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	SerialNumber string    `gorm:"size:120;uniqueIndex;not null" json:"serialNumber"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Status       string    `gorm:"size:20;not null;default:'available';index" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Borrowing records a single issuance. It is never deleted; a return only
// flips IsReturned, so the table is the custody ledger.
type Borrowing struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID string    `gorm:"type:uuid;index;not null" json:"employeeId"`
	MaterialID string    `gorm:"type:uuid;index;not null" json:"materialId"`
	Purpose    string    `gorm:"size:255" json:"purpose,omitempty"`
	BorrowDate time.Time `gorm:"index;not null" json:"borrowDate"`
	IsReturned bool      `gorm:"not null;default:false;index" json:"isReturned"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Material) TableName() string  { return MaterialTable }
func (Borrowing) TableName() string { return BorrowingTable }
