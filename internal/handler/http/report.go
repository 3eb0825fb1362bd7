package http

import (
	"net/http"

	"github.com/jornada-app/jornada-backend-go/internal/domain/report"
	"github.com/jornada-app/jornada-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Query(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Query implements ReportHandler.
func (h *reportHandlerImpl) Query(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := report.QueryRequest{
		UserID:    query.Get("userId"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.reportService.Query(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}
