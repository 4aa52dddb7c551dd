package payroll

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.GET("/preview", middleware.RBACAuthorize(rbacService, "payroll", "run"), handler.Preview)
		payroll.POST("/run",
			middleware.RBACAuthorize(rbacService, "payroll", "run"),
			middleware.Idempotency(rdb),
			handler.Run,
		)
		payroll.GET("/payslips", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.ListPayslips)
		payroll.POST("/payslips/approve", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.Approve)
		payroll.POST("/payslips/reject", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.Reject)
		payroll.GET("/pending-count", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.PendingCount)
	}
}
