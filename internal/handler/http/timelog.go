package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jornada-app/jornada-backend-go/internal/domain/timelog"
	"github.com/jornada-app/jornada-backend-go/internal/handler/http/response"
)

type TimeLogHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type timeLogHandlerImpl struct {
	timeLogService timelog.TimeLogService
}

func NewTimeLogHandler(timeLogService timelog.TimeLogService) TimeLogHandler {
	return &timeLogHandlerImpl{
		timeLogService: timeLogService,
	}
}

// Submit implements TimeLogHandler.
func (h *timeLogHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req timelog.SubmitRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeLogService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift event recorded", result)
}

// Status implements TimeLogHandler.
func (h *timeLogHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeLogService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
