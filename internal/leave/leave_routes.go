package leave

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Create)
		requests.POST("/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.Cancel)
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListMine)
		requests.GET("/all", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.ListAll)
		requests.POST("/approve", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.Approve)
		requests.POST("/reject", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.Reject)
		requests.GET("/pending-count", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.PendingCount)
	}
}
