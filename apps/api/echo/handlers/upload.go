package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/earlysignal/earlysignal/core/student"
)

type uploadApi struct {
	service *student.Service
}

func RegisterUploadAPI(g *echo.Group, svc *student.Service) {
	api := uploadApi{service: svc}

	g.POST("/upload", api.uploadCSV)
}

func (api *uploadApi) uploadCSV(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "a CSV file is required in the `file` field")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	report, err := api.service.IngestCSV(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not parse CSV: "+err.Error())
	}
	return ctx.JSON(http.StatusOK, report)
}
