package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/nilehr/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
	UpdateComments(w http.ResponseWriter, r *http.Request)
	UpdateExpenses(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var checkInReq attendance.CheckInRequest
	// An empty body is a plain check-in at the current time.
	if err := json.NewDecoder(r.Body).Decode(&checkInReq); err != nil && err != io.EOF {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	checkInReq.EmployeeID = employeeID

	result, err := h.attendanceService.CheckIn(r.Context(), checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked in", "employee_id", employeeID)
	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var checkOutReq attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&checkOutReq); err != nil && err != io.EOF {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	checkOutReq.EmployeeID = employeeID

	result, err := h.attendanceService.CheckOut(r.Context(), checkOutReq)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked out", "employee_id", employeeID)
	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// TodayStatus implements AttendanceHandler.
func (h *AttendanceHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.TodayStatus(r.Context(), employeeID)
	if err != nil {
		slog.Error("TodayStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateComments implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdateComments(w http.ResponseWriter, r *http.Request) {
	var commentsReq attendance.UpdateCommentsRequest

	if err := json.NewDecoder(r.Body).Decode(&commentsReq); err != nil {
		slog.Error("UpdateComments decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	commentsReq.AttendanceID = chi.URLParam(r, "attendanceID")

	result, err := h.attendanceService.UpdateComments(r.Context(), commentsReq)
	if err != nil {
		slog.Error("UpdateComments service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Comments updated", result)
}

// UpdateExpenses implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdateExpenses(w http.ResponseWriter, r *http.Request) {
	var expensesReq attendance.UpdateExpensesRequest

	if err := json.NewDecoder(r.Body).Decode(&expensesReq); err != nil {
		slog.Error("UpdateExpenses decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	expensesReq.AttendanceID = chi.URLParam(r, "attendanceID")

	result, err := h.attendanceService.UpdateExpenses(r.Context(), expensesReq)
	if err != nil {
		slog.Error("UpdateExpenses service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expenses updated", result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.MyAttendanceFilter{EmployeeID: employeeID}

	query := r.URL.Query()
	if v := query.Get("year"); v != "" {
		filter.Year, _ = strconv.Atoi(v)
	}
	if v := query.Get("month"); v != "" {
		filter.Month, _ = strconv.Atoi(v)
	}
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	result, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
