package controllers

import (
	"log/slog"
	"net/http"

	"eventregistration/internal/domain"
)

type ReportController struct {
	Logger  *slog.Logger
	Service domain.ReportService
	Views   Renderer
}

func NewReportController(logger *slog.Logger, svc domain.ReportService, v Renderer) *ReportController {
	return &ReportController{Logger: logger, Service: svc, Views: v}
}

type reportData struct {
	Report *domain.Report
}

func (c *ReportController) Show(w http.ResponseWriter, r *http.Request) {
	report, err := c.Service.Summary(r.Context())
	if err != nil {
		serverError(c.Logger, c.Views, w, r, err)
		return
	}
	render(c.Logger, c.Views, w, r, http.StatusOK, "report", "Report", reportData{Report: report})
}
