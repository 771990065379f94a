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

// GradeController handles grades of a student
type GradeController struct {
	gradeService *services.GradeService
	logger       zerolog.Logger
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService, logger zerolog.Logger) *GradeController {
	return &GradeController{
		gradeService: gradeService,
		logger:       logger,
	}
}

// AddGrade godoc
// @Summary Add a grade to a student
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student primary key"
// @Param request body dto.CreateGradeRequest true "Grade"
// @Success 201 {object} dto.GradeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/grades [post]
func (c *GradeController) AddGrade(ctx *gin.Context) {
	studentID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	grade, err := c.gradeService.AddGrade(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewGradeResponse(grade))
}

// ListGrades godoc
// @Summary List the grades of a student
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student primary key"
// @Success 200 {array} dto.GradeResponse
// @Failure 401 {object} dto.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/grades [get]
func (c *GradeController) ListGrades(ctx *gin.Context) {
	studentID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	grades, err := c.gradeService.ListGrades(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewGradeListResponse(grades))
}
