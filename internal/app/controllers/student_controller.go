package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
	"github.com/yigit/gradebook/internal/pkg/helpers"
)

// StudentController handles student records
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// CreateStudent godoc
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Failure 409 {object} dto.ErrorResponse "Student ID already registered"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStudentResponse(student))
}

// ListStudents godoc
// @Summary List students
// @Description Students ordered by id. limit is capped at 100.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	skip, limit, err := helpers.ParseSkipLimit(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.studentService.ListStudents(ctx.Request.Context(), skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentListResponse(students))
}

// GetStudent godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student primary key"
// @Success 200 {object} dto.StudentResponse
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentResponse(student))
}
