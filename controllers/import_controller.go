// controllers/import_controller.go
package controllers

import (
	"encoding/csv"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"storekeeper/app"
	"storekeeper/db"

	"github.com/gin-gonic/gin"
)

// ImportController is the boundary adapter in front of the reconciling
// importer. It accepts either a JSON row array or a multipart CSV upload
// ("file" field, header row required) and hands typed rows to the repo.
type ImportController struct{ *Srv }

func NewImportController(s *Srv) *ImportController { return &ImportController{Srv: s} }

// POST /api/import/employees (admin)
func (ic *ImportController) ImportEmployees(c *gin.Context) {
	rows, err := ic.employeeRows(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	res, err := ic.Repo.ImportEmployees(c.Request.Context(), rows)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/import/materials (admin)
func (ic *ImportController) ImportMaterials(c *gin.Context) {
	rows, err := ic.materialRows(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	res, err := ic.Repo.ImportMaterials(c.Request.Context(), rows)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ic *ImportController) employeeRows(c *gin.Context) ([]db.EmployeeRow, error) {
	if fh, err := c.FormFile("file"); err == nil {
		records, err := readCSV(fh)
		if err != nil {
			return nil, err
		}
		rows := make([]db.EmployeeRow, 0, len(records))
		for _, rec := range records {
			rows = append(rows, db.EmployeeRow{
				Name:             rec["name"],
				FatherName:       rec["father_name"],
				GrandFatherName:  rec["grand_father_name"],
				Sex:              rec["sex"],
				Position:         rec["position"],
				EmploymentStatus: rec["employment_status"],
				PhoneNumber:      rec["phone_number"],
				Project:          rec["project"],
			})
		}
		return rows, nil
	}

	var in struct {
		Rows []db.EmployeeRow `json:"rows" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		return nil, err
	}
	return in.Rows, nil
}

func (ic *ImportController) materialRows(c *gin.Context) ([]db.MaterialRow, error) {
	if fh, err := c.FormFile("file"); err == nil {
		records, err := readCSV(fh)
		if err != nil {
			return nil, err
		}
		rows := make([]db.MaterialRow, 0, len(records))
		for _, rec := range records {
			rows = append(rows, db.MaterialRow{
				Name:         rec["name"],
				SerialNumber: rec["serial_number"],
			})
		}
		return rows, nil
	}

	var in struct {
		Rows []db.MaterialRow `json:"rows" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		return nil, err
	}
	return in.Rows, nil
}

// readCSV maps each data line onto the header row. Header names are
// normalized to snake_case-ish lowercase so "Father Name" and
// "father_name" both match.
func readCSV(fh *multipart.FileHeader) ([]map[string]string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1 // short rows become rejected rows downstream

	header, err := rd.Read()
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		header[i] = normalizeHeader(h)
	}

	var out []map[string]string
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(header))
		for i, v := range rec {
			if i < len(header) {
				m[header[i]] = strings.TrimSpace(v)
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}
