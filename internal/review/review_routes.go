package review

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.GET("", middleware.RBACAuthorize(rbacService, "review", "read"), handler.GetAll)
		reviews.GET("/:id", middleware.RBACAuthorize(rbacService, "review", "read"), handler.GetById)
		reviews.POST("", middleware.RBACAuthorize(rbacService, "review", "manage"), handler.Create)
		reviews.PUT("/:id", middleware.RBACAuthorize(rbacService, "review", "manage"), handler.Update)
		reviews.DELETE("/:id", middleware.RBACAuthorize(rbacService, "review", "manage"), handler.Delete)
		reviews.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "review", "manage"), handler.Submit)
		reviews.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "review", "manage"), handler.Approve)
		reviews.POST("/:id/reopen", middleware.RBACAuthorize(rbacService, "review", "manage"), handler.Reopen)

		// Subjek review melaporkan progres goalnya sendiri, jadi cukup
		// policy read; pembatasan per-record ada di service.
		reviews.PUT("/goals/:goalId", middleware.RBACAuthorize(rbacService, "review", "read"), handler.UpdateGoal)
	}
}
