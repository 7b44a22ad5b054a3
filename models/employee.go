// models/employee.go
package models

import "time"

const EmployeeTable = "ast_employees"

// Employee lifecycle status.
const (
	EmployeeActive = "active"
	EmployeeLeft   = "left"
)

// Employee is identified by a generated UUID; the three name fields form the
// natural key the importer uses for duplicate detection.
type Employee struct {
	ID              string `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string `gorm:"size:120;not null;uniqueIndex:ast_employees_natural_key" json:"name"`
	FatherName      string `gorm:"size:120;not null;uniqueIndex:ast_employees_natural_key" json:"fatherName"`
	GrandFatherName string `gorm:"size:120;not null;uniqueIndex:ast_employees_natural_key" json:"grandFatherName"`

	Sex              string `gorm:"size:20" json:"sex,omitempty"`
	Position         string `gorm:"size:120" json:"position,omitempty"`
	EmploymentStatus string `gorm:"size:60" json:"employmentStatus,omitempty"`
	PhoneNumber      string `gorm:"size:45" json:"phoneNumber,omitempty"`
	Project          string `gorm:"size:120" json:"project,omitempty"`

	Status    string    `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Employee) TableName() string { return EmployeeTable }
