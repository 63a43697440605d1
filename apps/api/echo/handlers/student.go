package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/earlysignal/earlysignal/core/prediction"
	"github.com/earlysignal/earlysignal/core/student"
)

type studentApi struct {
	service  *student.Service
	validate *validator.Validate
}

func RegisterStudentAPI(g *echo.Group, svc *student.Service, validate *validator.Validate) {
	api := studentApi{service: svc, validate: validate}

	sg := g.Group("/students")
	sg.GET("", api.studentQuery)
	sg.GET("/:student_id", api.studentRetrieve)
}

func (api *studentApi) studentQuery(ctx echo.Context) error {
	var filter student.QueryFilter

	filter.Department = ctx.QueryParam("department")
	if raw := ctx.QueryParam("semester"); raw != "" {
		sem, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "semester must be an integer")
		}
		filter.Semester = sem
	}
	if raw := ctx.QueryParam("risk_level"); raw != "" {
		level, err := prediction.ParseRiskLevel(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "risk_level must be one of low, medium, high")
		}
		filter.RiskLevel = level
	}

	students, err := api.service.Filter(filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

// StudentDetail carries the record plus trend placeholders; trends fill in
// once historic attendance/marks snapshots are collected.
type StudentDetail struct {
	student.Student
	AttendanceTrend []float64 `json:"attendance_trend"`
	MarksTrend      []float64 `json:"marks_trend"`
}

func (api *studentApi) studentRetrieve(ctx echo.Context) error {
	s, err := api.service.GetByStudentID(ctx.Param("student_id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, StudentDetail{
		Student:         s,
		AttendanceTrend: []float64{},
		MarksTrend:      []float64{},
	})
}
