package routes

import (
	"time"

	"storekeeper/app"
	"storekeeper/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	empCtl := controllers.NewEmployeeController(s)
	matCtl := controllers.NewMaterialController(s)
	borCtl := controllers.NewBorrowingController(s)
	impCtl := controllers.NewImportController(s)
	repCtl := controllers.NewReportController(s)
	userCtl := controllers.NewUserController(s)

	authMW := app.AuthRequired(a.AppSessions(), s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// Auth (public + protected)
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.GET("/whoami", authCtl.WhoAmI)
		authed.POST("/logout", authCtl.Logout)
	}

	// ------------------------------
	// User administration
	// ------------------------------
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.POST("", userCtl.CreateUser)
		users.GET("", userCtl.ListUsers) // ?q=&page=&size=
		users.GET("/:id", userCtl.GetUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}

	// ------------------------------
	// Employees + lifecycle
	// ------------------------------
	emps := r.Group("/api/employees", authMW, seenMW)
	{
		emps.POST("", empCtl.Register)
		emps.GET("", empCtl.List) // ?q=&page=&size=
		emps.GET("/:id", empCtl.Get)
		emps.POST("/:id/return-all", empCtl.ReturnAll)
		emps.POST("/:id/waiting", empCtl.EnqueueWaiting)
		emps.DELETE("/:id/waiting", empCtl.DequeueWaiting)
		emps.POST("/:id/leave", empCtl.ApproveLeave)
		emps.POST("/:id/reinstate", empCtl.Reinstate)
	}

	// ------------------------------
	// Materials (registration and override are admin-only)
	// ------------------------------
	matsAdmin := r.Group("/api/materials", authMW, adminMW)
	{
		matsAdmin.POST("", matCtl.Register)
		matsAdmin.PUT("/:id/status", matCtl.SetStatus)
	}
	mats := r.Group("/api/materials", authMW, seenMW)
	{
		mats.GET("", matCtl.List) // ?status=available|borrowed|maintenance|lost|all
		mats.GET("/:id", matCtl.Get)
	}

	// ------------------------------
	// Borrow / return
	// ------------------------------
	bors := r.Group("/api/borrowings", authMW, seenMW)
	{
		bors.POST("", borCtl.Issue)
		bors.POST("/return", borCtl.ReturnSelected)
	}

	// ------------------------------
	// Bulk import (admin)
	// ------------------------------
	imp := r.Group("/api/import", authMW, adminMW)
	{
		imp.POST("/employees", impCtl.ImportEmployees)
		imp.POST("/materials", impCtl.ImportMaterials)
	}

	// ------------------------------
	// Reports for the export side
	// ------------------------------
	reports := r.Group("/api/reports", authMW, seenMW)
	{
		reports.GET("/active-roster", repCtl.ActiveRoster)
		reports.GET("/leave-roster", repCtl.LeaveRoster)
		reports.GET("/waiting-roster", repCtl.WaitingRoster)
	}
}
