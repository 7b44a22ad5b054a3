// models/roster.go
package models

import "time"

const WaitingTable = "ast_waiting_entries"
const LeaveTable = "ast_leave_records"

// WaitingEntry marks an employee as queued for a return follow-up.
// At most one per employee; a transient marker, not a ledger.
type WaitingEntry struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID string    `gorm:"type:uuid;uniqueIndex;not null" json:"employeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LeaveRecord marks an employee as having exited the workforce.
// Deleted again on reinstatement.
type LeaveRecord struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID string    `gorm:"type:uuid;uniqueIndex;not null" json:"employeeId"`
	LeaveDate  time.Time `gorm:"index;not null" json:"leaveDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (WaitingEntry) TableName() string { return WaitingTable }
func (LeaveRecord) TableName() string  { return LeaveTable }
