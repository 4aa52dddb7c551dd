package performance

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
	performance := r.Group("/performance")
	performance.Use(middleware.AuthMiddleware())
	{
		performance.GET("", middleware.RBACAuthorize(rbacService, "performance", "read_all"), handler.WeekMetrics)
		performance.GET("/:id", middleware.RBACAuthorize(rbacService, "performance", "read"), handler.EmployeeWeek)
	}
}
