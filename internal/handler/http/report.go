package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nilehr/attendance-backend-go/internal/domain/summary"
	"github.com/nilehr/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
	GetMyMonthlyReport(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	SetBonus(w http.ResponseWriter, r *http.Request)
	GetFullReport(w http.ResponseWriter, r *http.Request)
	GetMyFullReport(w http.ResponseWriter, r *http.Request)
	GetAllEmployeesReport(w http.ResponseWriter, r *http.Request)
	GetEditWindow(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService summary.ReportService
}

func NewReportHandler(reportService summary.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func periodFromURL(r *http.Request) (year, month int) {
	year, _ = strconv.Atoi(chi.URLParam(r, "year"))
	month, _ = strconv.Atoi(chi.URLParam(r, "month"))
	return year, month
}

// GetMonthlyReport implements ReportHandler.
func (h *ReportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, month := periodFromURL(r)

	result, err := h.reportService.GetMonthlyReport(r.Context(), employeeID, year, month)
	if err != nil {
		slog.Error("GetMonthlyReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyMonthlyReport implements ReportHandler. Same as GetMonthlyReport but
// scoped to the authenticated employee.
func (h *ReportHandlerImpl) GetMyMonthlyReport(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	year, month := periodFromURL(r)

	result, err := h.reportService.GetMonthlyReport(r.Context(), employeeID, year, month)
	if err != nil {
		slog.Error("GetMyMonthlyReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Recalculate implements ReportHandler.
func (h *ReportHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, month := periodFromURL(r)

	result, err := h.reportService.Recalculate(r.Context(), employeeID, year, month)
	if err != nil {
		slog.Error("Recalculate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summary recalculated", result)
}

// SetBonus implements ReportHandler.
func (h *ReportHandlerImpl) SetBonus(w http.ResponseWriter, r *http.Request) {
	var bonusReq summary.SetBonusRequest

	if err := json.NewDecoder(r.Body).Decode(&bonusReq); err != nil {
		slog.Error("SetBonus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	bonusReq.EmployeeID = chi.URLParam(r, "employeeID")
	bonusReq.Year, bonusReq.Month = periodFromURL(r)

	result, err := h.reportService.SetBonus(r.Context(), bonusReq)
	if err != nil {
		slog.Error("SetBonus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus updated", result)
}

// GetFullReport implements ReportHandler.
func (h *ReportHandlerImpl) GetFullReport(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.reportService.GetFullReport(r.Context(), employeeID)
	if err != nil {
		slog.Error("GetFullReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyFullReport implements ReportHandler.
func (h *ReportHandlerImpl) GetMyFullReport(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GetFullReport(r.Context(), employeeID)
	if err != nil {
		slog.Error("GetMyFullReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAllEmployeesReport implements ReportHandler.
func (h *ReportHandlerImpl) GetAllEmployeesReport(w http.ResponseWriter, r *http.Request) {
	year, month := periodFromURL(r)

	result, err := h.reportService.GetAllEmployeesReport(r.Context(), year, month)
	if err != nil {
		slog.Error("GetAllEmployeesReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEditWindow implements ReportHandler.
func (h *ReportHandlerImpl) GetEditWindow(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetEditWindow(r.Context())
	if err != nil {
		slog.Error("GetEditWindow service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
