package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/gradebook/internal/app/controllers"
	"github.com/yigit/gradebook/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Student *controllers.StudentController
	Grade   *controllers.GradeController
	Health  *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	// --- Public routes ---
	router.GET("/healthz", c.Health.Health)
	router.POST("/token", c.Auth.Login)
	router.POST("/users", c.User.Register)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	students := authenticated.Group("/students")
	{
		students.POST("", c.Student.CreateStudent)
		students.GET("", c.Student.ListStudents)
		students.GET("/:id", c.Student.GetStudent)
		students.POST("/:id/grades", c.Grade.AddGrade)
		students.GET("/:id/grades", c.Grade.ListGrades)
	}
}
