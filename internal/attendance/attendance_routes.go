package attendance

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.POST("/time-in", middleware.RBACAuthorize(rbacService, "attendance", "punch"), handler.TimeIn)
		attendance.POST("/time-out", middleware.RBACAuthorize(rbacService, "attendance", "punch"), handler.TimeOut)
		attendance.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetAll)
		attendance.DELETE("/:id", middleware.RBACAuthorize(rbacService, "attendance", "remove"), handler.Remove)
		attendance.GET("/weeks", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.Weeks)
		attendance.GET("/hours", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.WeekHours)
		attendance.GET("/lates", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.WeekLates)
		attendance.GET("/stats", middleware.RBACAuthorize(rbacService, "attendance", "stats"), handler.Stats)
	}
}
