package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/earlysignal/earlysignal/core/prediction"
	"github.com/earlysignal/earlysignal/core/student"
)

type alertApi struct {
	service  *student.Service
	validate *validator.Validate
}

func RegisterAlertAPI(g *echo.Group, svc *student.Service, validate *validator.Validate) {
	api := alertApi{service: svc, validate: validate}

	g.POST("/alerts/send", api.sendAlerts)
}

type (
	AlertRequest struct {
		RiskLevel string `json:"risk_level" validate:"omitempty,oneof=low medium high"`
		Recipient string `json:"recipient" validate:"omitempty,email"`
	}

	AlertResponse struct {
		Total   int                   `json:"total"`
		Sent    int                   `json:"sent"`
		Skipped int                   `json:"skipped"`
		Failed  int                   `json:"failed"`
		Results []student.AlertResult `json:"results"`
	}
)

func (api *alertApi) sendAlerts(ctx echo.Context) error {
	data := new(AlertRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	if data.RiskLevel == "" {
		data.RiskLevel = string(prediction.RiskHigh)
	}

	results, err := api.service.SendAlerts(prediction.RiskLevel(data.RiskLevel), data.Recipient)
	if err != nil {
		return err
	}

	resp := AlertResponse{Total: len(results), Results: results}
	for _, res := range results {
		switch res.Status {
		case student.AlertSent:
			resp.Sent++
		case student.AlertSkipped:
			resp.Skipped++
		default:
			resp.Failed++
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}
