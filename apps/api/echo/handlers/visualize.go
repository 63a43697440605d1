package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/earlysignal/earlysignal/core/prediction"
)

type visualizeApi struct {
	engine *prediction.Engine
}

func RegisterVisualizeAPI(g *echo.Group, engine *prediction.Engine) {
	api := visualizeApi{engine: engine}

	vg := g.Group("/visualize")
	vg.GET("/feature-importance", api.featureImportance)
	vg.GET("/model", api.modelInfo)
}

func (api *visualizeApi) featureImportance(ctx echo.Context) error {
	importances, err := api.engine.FeatureImportance()
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "feature importance unavailable: "+err.Error())
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"importances":  importances,
		"num_features": len(importances),
	})
}

func (api *visualizeApi) modelInfo(ctx echo.Context) error {
	order := api.engine.FeatureOrder()
	return ctx.JSON(http.StatusOK, echo.Map{
		"feature_names": order,
		"num_features":  len(order),
	})
}
