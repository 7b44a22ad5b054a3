// db/repo_import.go
package db

import (
	"context"
	"strings"

	"storekeeper/models"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// Reconciling importer. Rows arrive already parsed from the upload format;
// each row is matched on its natural key and inserted only when no match
// exists. Inserts use single-statement ON CONFLICT DO NOTHING upserts, so
// concurrent imports of overlapping files cannot create duplicates, and
// rerunning a file turns every row into a skip. Existing rows are never
// updated.

const (
	RowAdded    = "added"
	RowSkipped  = "skipped"
	RowRejected = "rejected"
)

// RowOutcome reports what happened to one input row. Rejected rows (missing
// required fields) are counted neither as added nor as skipped.
type RowOutcome struct {
	Index  int    `json:"index"`
	Kind   string `json:"kind"`
	Reason string `json:"reason,omitempty"`
}

type ImportResult struct {
	Added    int          `json:"added"`
	Skipped  int          `json:"skipped"`
	Outcomes []RowOutcome `json:"outcomes"`
}

type EmployeeRow struct {
	Name             string `json:"name"`
	FatherName       string `json:"fatherName"`
	GrandFatherName  string `json:"grandFatherName"`
	Sex              string `json:"sex"`
	Position         string `json:"position"`
	EmploymentStatus string `json:"employmentStatus"`
	PhoneNumber      string `json:"phoneNumber"`
	Project          string `json:"project"`
}

func (r *Repo) ImportEmployees(ctx context.Context, rows []EmployeeRow) (*ImportResult, error) {
	res := &ImportResult{}
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		father := strings.TrimSpace(row.FatherName)
		grand := strings.TrimSpace(row.GrandFatherName)
		if name == "" || father == "" || grand == "" {
			res.Outcomes = append(res.Outcomes, RowOutcome{Index: i, Kind: RowRejected, Reason: "missing name field"})
			continue
		}

		e := models.Employee{
			ID:               uuid.NewString(),
			Name:             name,
			FatherName:       father,
			GrandFatherName:  grand,
			Sex:              strings.TrimSpace(row.Sex),
			Position:         strings.TrimSpace(row.Position),
			EmploymentStatus: strings.TrimSpace(row.EmploymentStatus),
			PhoneNumber:      strings.TrimSpace(row.PhoneNumber),
			Project:          strings.TrimSpace(row.Project),
			Status:           models.EmployeeActive,
		}
		out := r.DB.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "name"}, {Name: "father_name"}, {Name: "grand_father_name"},
				},
				DoNothing: true,
			}).
			Create(&e)
		if out.Error != nil {
			return nil, out.Error
		}
		if out.RowsAffected > 0 {
			res.Added++
			res.Outcomes = append(res.Outcomes, RowOutcome{Index: i, Kind: RowAdded})
		} else {
			res.Skipped++
			res.Outcomes = append(res.Outcomes, RowOutcome{Index: i, Kind: RowSkipped, Reason: "duplicate natural key"})
		}
	}
	return res, nil
}

type MaterialRow struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
}

func (r *Repo) ImportMaterials(ctx context.Context, rows []MaterialRow) (*ImportResult, error) {
	res := &ImportResult{}
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		serial := strings.TrimSpace(row.SerialNumber)
		if name == "" || serial == "" {
			res.Outcomes = append(res.Outcomes, RowOutcome{Index: i, Kind: RowRejected, Reason: "missing name or serial"})
			continue
		}

		m := models.Material{
			ID:           uuid.NewString(),
			SerialNumber: serial,
			Name:         name,
			Status:       models.MaterialAvailable,
		}
		out := r.DB.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "serial_number"}},
				DoNothing: true,
			}).
			Create(&m)
		if out.Error != nil {
			return nil, out.Error
		}
		if out.RowsAffected > 0 {
			res.Added++
			res.Outcomes = append(res.Outcomes, RowOutcome{Index: i, Kind: RowAdded})
		} else {
			res.Skipped++
			res.Outcomes = append(res.Outcomes, RowOutcome{Index: i, Kind: RowSkipped, Reason: "duplicate serial number"})
		}
	}
	return res, nil
}
