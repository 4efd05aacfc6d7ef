package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/nilehr/attendance-backend-go/internal/domain/employee"
	"github.com/nilehr/attendance-backend-go/internal/domain/holiday"
	"github.com/nilehr/attendance-backend-go/internal/handler/http/response"
)

type AdminHandler interface {
	SetOvertime(w http.ResponseWriter, r *http.Request)
	ChangeDayType(w http.ResponseWriter, r *http.Request)
	UpdateCheckTimes(w http.ResponseWriter, r *http.Request)
	CreateAttendance(w http.ResponseWriter, r *http.Request)
	DeleteAttendance(w http.ResponseWriter, r *http.Request)

	CreateEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	UpdateMinuteCost(w http.ResponseWriter, r *http.Request)
	UpdateVacationAllowance(w http.ResponseWriter, r *http.Request)
	SetActive(w http.ResponseWriter, r *http.Request)

	AddHoliday(w http.ResponseWriter, r *http.Request)
	RemoveHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type AdminHandlerImpl struct {
	adminAttendanceService attendance.AdminAttendanceService
	employeeService        employee.EmployeeService
	holidayService         holiday.HolidayService
}

func NewAdminHandler(
	adminAttendanceService attendance.AdminAttendanceService,
	employeeService employee.EmployeeService,
	holidayService holiday.HolidayService,
) AdminHandler {
	return &AdminHandlerImpl{
		adminAttendanceService: adminAttendanceService,
		employeeService:        employeeService,
		holidayService:         holidayService,
	}
}

// SetOvertime implements AdminHandler.
func (h *AdminHandlerImpl) SetOvertime(w http.ResponseWriter, r *http.Request) {
	var overtimeReq attendance.SetOvertimeRequest

	if err := json.NewDecoder(r.Body).Decode(&overtimeReq); err != nil {
		slog.Error("SetOvertime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	overtimeReq.AttendanceID = chi.URLParam(r, "attendanceID")

	result, err := h.adminAttendanceService.SetOvertime(r.Context(), overtimeReq)
	if err != nil {
		slog.Error("SetOvertime service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime updated", result)
}

// ChangeDayType implements AdminHandler.
func (h *AdminHandlerImpl) ChangeDayType(w http.ResponseWriter, r *http.Request) {
	var dayTypeReq attendance.ChangeDayTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&dayTypeReq); err != nil {
		slog.Error("ChangeDayType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	dayTypeReq.AttendanceID = chi.URLParam(r, "attendanceID")

	result, err := h.adminAttendanceService.ChangeDayType(r.Context(), dayTypeReq)
	if err != nil {
		slog.Error("ChangeDayType service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day type updated", result)
}

// UpdateCheckTimes implements AdminHandler.
func (h *AdminHandlerImpl) UpdateCheckTimes(w http.ResponseWriter, r *http.Request) {
	var checkTimesReq attendance.UpdateCheckTimesRequest

	if err := json.NewDecoder(r.Body).Decode(&checkTimesReq); err != nil {
		slog.Error("UpdateCheckTimes decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	checkTimesReq.AttendanceID = chi.URLParam(r, "attendanceID")

	result, err := h.adminAttendanceService.UpdateCheckTimes(r.Context(), checkTimesReq)
	if err != nil {
		slog.Error("UpdateCheckTimes service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check times updated", result)
}

// CreateAttendance implements AdminHandler.
func (h *AdminHandlerImpl) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var createReq attendance.CreateAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.adminAttendanceService.CreateAttendance(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance record created", result)
}

// DeleteAttendance implements AdminHandler.
func (h *AdminHandlerImpl) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	attendanceID := chi.URLParam(r, "attendanceID")

	if err := h.adminAttendanceService.DeleteAttendance(r.Context(), attendanceID); err != nil {
		slog.Error("DeleteAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}

// CreateEmployee implements AdminHandler.
func (h *AdminHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var createReq employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee created", "employee_id", result.ID)
	response.Created(w, "Employee created", result)
}

// GetEmployee implements AdminHandler.
func (h *AdminHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.employeeService.GetEmployee(r.Context(), employeeID)
	if err != nil {
		slog.Error("GetEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEmployees implements AdminHandler.
func (h *AdminHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListEmployees(r.Context())
	if err != nil {
		slog.Error("ListEmployees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMinuteCost implements AdminHandler.
func (h *AdminHandlerImpl) UpdateMinuteCost(w http.ResponseWriter, r *http.Request) {
	var costReq employee.UpdateMinuteCostRequest

	if err := json.NewDecoder(r.Body).Decode(&costReq); err != nil {
		slog.Error("UpdateMinuteCost decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	costReq.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.employeeService.UpdateMinuteCost(r.Context(), costReq)
	if err != nil {
		slog.Error("UpdateMinuteCost service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Minute cost updated", result)
}

// UpdateVacationAllowance implements AdminHandler.
func (h *AdminHandlerImpl) UpdateVacationAllowance(w http.ResponseWriter, r *http.Request) {
	var vacationReq employee.UpdateVacationAllowanceRequest

	if err := json.NewDecoder(r.Body).Decode(&vacationReq); err != nil {
		slog.Error("UpdateVacationAllowance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	vacationReq.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.employeeService.UpdateVacationAllowance(r.Context(), vacationReq)
	if err != nil {
		slog.Error("UpdateVacationAllowance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation allowance updated", result)
}

// SetActive implements AdminHandler.
func (h *AdminHandlerImpl) SetActive(w http.ResponseWriter, r *http.Request) {
	var activeReq employee.SetActiveRequest

	if err := json.NewDecoder(r.Body).Decode(&activeReq); err != nil {
		slog.Error("SetActive decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	activeReq.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.employeeService.SetActive(r.Context(), activeReq)
	if err != nil {
		slog.Error("SetActive service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee status updated", result)
}

// AddHoliday implements AdminHandler.
func (h *AdminHandlerImpl) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var holidayReq holiday.AddHolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&holidayReq); err != nil {
		slog.Error("AddHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.holidayService.AddHoliday(r.Context(), holidayReq)
	if err != nil {
		slog.Error("AddHoliday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday added", result)
}

// RemoveHoliday implements AdminHandler.
func (h *AdminHandlerImpl) RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	if err := h.holidayService.RemoveHoliday(r.Context(), date); err != nil {
		slog.Error("RemoveHoliday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday removed", nil)
}

// ListHolidays implements AdminHandler.
func (h *AdminHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	result, err := h.holidayService.ListHolidays(r.Context(), year)
	if err != nil {
		slog.Error("ListHolidays service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
