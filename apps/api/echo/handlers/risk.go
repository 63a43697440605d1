package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/earlysignal/earlysignal/core/student"
)

type riskApi struct {
	service *student.Service
}

func RegisterRiskAPI(g *echo.Group, svc *student.Service) {
	api := riskApi{service: svc}

	g.POST("/analyze-risk", api.analyzeAll)
	g.GET("/risk/stats", api.stats)
}

func (api *riskApi) analyzeAll(ctx echo.Context) error {
	report, err := api.service.AnalyzeAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *riskApi) stats(ctx echo.Context) error {
	stats, err := api.service.Stats()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}
