// controllers/material_controller.go
package controllers

import (
	"net/http"

	"storekeeper/app"
	"storekeeper/db"

	"github.com/gin-gonic/gin"
)

type MaterialController struct{ *Srv }

func NewMaterialController(s *Srv) *MaterialController { return &MaterialController{Srv: s} }

// POST /api/materials (admin)
func (mc *MaterialController) Register(c *gin.Context) {
	var in struct {
		Name         string `json:"name" binding:"required"`
		SerialNumber string `json:"serialNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	m, err := mc.Repo.RegisterMaterial(c.Request.Context(), db.RegisterMaterialInput{
		Name:         in.Name,
		SerialNumber: in.SerialNumber,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /api/materials?status=available|borrowed|maintenance|lost|all
func (mc *MaterialController) List(c *gin.Context) {
	ms, err := mc.Repo.InventoryByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"materials": ms})
}

// GET /api/materials/:id
func (mc *MaterialController) Get(c *gin.Context) {
	m, err := mc.Repo.FindMaterialByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// PUT /api/materials/:id/status (admin override; borrowed is not settable)
func (mc *MaterialController) SetStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	m, err := mc.Repo.SetMaterialStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
