// controllers/employee_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"storekeeper/app"
	"storekeeper/db"

	"github.com/gin-gonic/gin"
)

type EmployeeController struct{ *Srv }

func NewEmployeeController(s *Srv) *EmployeeController { return &EmployeeController{Srv: s} }

// POST /api/employees
func (ec *EmployeeController) Register(c *gin.Context) {
	var in struct {
		Name             string `json:"name" binding:"required"`
		FatherName       string `json:"fatherName" binding:"required"`
		GrandFatherName  string `json:"grandFatherName" binding:"required"`
		Sex              string `json:"sex"`
		Position         string `json:"position"`
		EmploymentStatus string `json:"employmentStatus"`
		PhoneNumber      string `json:"phoneNumber"`
		Project          string `json:"project"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	e, err := ec.Repo.RegisterEmployee(c.Request.Context(), db.RegisterEmployeeInput{
		Name:             in.Name,
		FatherName:       in.FatherName,
		GrandFatherName:  in.GrandFatherName,
		Sex:              in.Sex,
		Position:         in.Position,
		EmploymentStatus: in.EmploymentStatus,
		PhoneNumber:      in.PhoneNumber,
		Project:          in.Project,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// GET /api/employees?q=&page=&size=
func (ec *EmployeeController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := ec.Repo.ListEmployees(c.Request.Context(), db.ListEmployeesQuery{
		Q:    c.Query("q"),
		Page: page,
		Size: size,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/employees/:id
func (ec *EmployeeController) Get(c *gin.Context) {
	id := c.Param("id")
	e, err := ec.Repo.FindEmployeeByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	open, err := ec.Repo.GetOpenBorrowingsFor(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"employee": e, "openBorrowings": open})
}

// POST /api/employees/:id/return-all
func (ec *EmployeeController) ReturnAll(c *gin.Context) {
	closed, err := ec.Repo.ReturnAll(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"returned": closed})
}

// POST /api/employees/:id/waiting
func (ec *EmployeeController) EnqueueWaiting(c *gin.Context) {
	entry, err := ec.Repo.EnqueueWaiting(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DELETE /api/employees/:id/waiting
func (ec *EmployeeController) DequeueWaiting(c *gin.Context) {
	if err := ec.Repo.DequeueWaiting(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/employees/:id/leave
func (ec *EmployeeController) ApproveLeave(c *gin.Context) {
	rec, err := ec.Repo.ApproveLeave(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /api/employees/:id/reinstate
func (ec *EmployeeController) Reinstate(c *gin.Context) {
	if err := ec.Repo.ReinstateFromLeave(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
