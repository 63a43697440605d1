package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/earlysignal/earlysignal/core/prediction"
	"github.com/earlysignal/earlysignal/core/student"
)

type predictionApi struct {
	service  *student.Service
	validate *validator.Validate
}

func RegisterPredictionAPI(g *echo.Group, svc *student.Service, validate *validator.Validate) {
	api := predictionApi{service: svc, validate: validate}

	pg := g.Group("/predict")
	pg.POST("", api.predict)
	pg.POST("/batch", api.predictBatch)
}

// PredictionRequest is one inline scoring request. Only attendance is
// required; the remaining attributes take the documented defaults.
type PredictionRequest struct {
	StudentID        string   `json:"student_id,omitempty"`
	Attendance       *float64 `json:"attendance" validate:"required,min=0,max=100"`
	InternalMarks    *float64 `json:"internal_marks,omitempty" validate:"omitempty,min=0,max=100"`
	Backlogs         *int     `json:"backlogs,omitempty" validate:"omitempty,min=0"`
	StudyHours       *float64 `json:"study_hours,omitempty" validate:"omitempty,min=0,max=24"`
	PreviousFailures *int     `json:"previous_failures,omitempty" validate:"omitempty,min=0"`
}

// Features applies the attribute defaults for any field the request omitted.
func (r PredictionRequest) Features() prediction.StudentFeatures {
	f := prediction.StudentFeatures{
		Attendance:       *r.Attendance,
		InternalMarks:    student.DefaultInternalMarks,
		StudyHours:       student.DefaultStudyHours,
		Backlogs:         student.DefaultBacklogs,
		PreviousFailures: student.DefaultPreviousFailures,
	}
	if r.InternalMarks != nil {
		f.InternalMarks = *r.InternalMarks
	}
	if r.Backlogs != nil {
		f.Backlogs = *r.Backlogs
	}
	if r.StudyHours != nil {
		f.StudyHours = *r.StudyHours
	}
	if r.PreviousFailures != nil {
		f.PreviousFailures = *r.PreviousFailures
	}
	return f
}

func (api *predictionApi) predict(ctx echo.Context) error {
	data := new(PredictionRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	res, err := api.service.Predict(data.Features(), data.StudentID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

// BatchPredictionResponse reports partial success: items that fail to score
// or persist are counted, never abort the batch.
type BatchPredictionResponse struct {
	Total       int                 `json:"total"`
	Failed      int                 `json:"failed"`
	Predictions []prediction.Result `json:"predictions"`
}

func (api *predictionApi) predictBatch(ctx echo.Context) error {
	var data []PredictionRequest
	if err := ctx.Bind(&data); err != nil {
		return err
	}

	resp := BatchPredictionResponse{
		Total:       len(data),
		Predictions: make([]prediction.Result, 0, len(data)),
	}
	for _, req := range data {
		if err := api.validate.Struct(req); err != nil {
			resp.Failed++
			continue
		}
		res, err := api.service.Predict(req.Features(), req.StudentID)
		if err != nil {
			resp.Failed++
			continue
		}
		resp.Predictions = append(resp.Predictions, res)
	}
	return ctx.JSON(http.StatusOK, resp)
}
