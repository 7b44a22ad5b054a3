// controllers/borrowing_controller.go
package controllers

import (
	"net/http"

	"storekeeper/app"

	"github.com/gin-gonic/gin"
)

type BorrowingController struct{ *Srv }

func NewBorrowingController(s *Srv) *BorrowingController { return &BorrowingController{Srv: s} }

// POST /api/borrowings — issue a batch of materials to one employee
func (bc *BorrowingController) Issue(c *gin.Context) {
	var in struct {
		EmployeeID  string   `json:"employeeId" binding:"required"`
		MaterialIDs []string `json:"materialIds" binding:"required"`
		Purpose     string   `json:"purpose"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	rows, err := bc.Repo.IssueMaterials(c.Request.Context(), in.EmployeeID, in.MaterialIDs, in.Purpose)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"borrowings": rows})
}

// POST /api/borrowings/return — close the named borrowings
func (bc *BorrowingController) ReturnSelected(c *gin.Context) {
	var in struct {
		BorrowingIDs []string `json:"borrowingIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	returned, err := bc.Repo.ReturnSelected(c.Request.Context(), in.BorrowingIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"returned": returned})
}
