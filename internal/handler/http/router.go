package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/nilehr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/nilehr/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	adminHandler AdminHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/today", attendanceHandler.TodayStatus)
				r.Get("/me", attendanceHandler.GetMyAttendance)
				r.Patch("/{attendanceID}/comments", attendanceHandler.UpdateComments)
				r.Patch("/{attendanceID}/expenses", attendanceHandler.UpdateExpenses)

				// Admin corrections
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", adminHandler.CreateAttendance)
					r.Delete("/{attendanceID}", adminHandler.DeleteAttendance)
					r.Patch("/{attendanceID}/overtime", adminHandler.SetOvertime)
					r.Patch("/{attendanceID}/day-type", adminHandler.ChangeDayType)
					r.Patch("/{attendanceID}/check-times", adminHandler.UpdateCheckTimes)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/edit-window", reportHandler.GetEditWindow)
				r.Get("/me", reportHandler.GetMyFullReport)
				r.Get("/me/{year}/{month}", reportHandler.GetMyMonthlyReport)
				r.Get("/{employeeID}", reportHandler.GetFullReport)
				r.Get("/{employeeID}/{year}/{month}", reportHandler.GetMonthlyReport)
				r.Post("/{employeeID}/{year}/{month}/recalculate", reportHandler.Recalculate)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/{employeeID}/{year}/{month}/bonus", reportHandler.SetBonus)
					r.Get("/all/{year}/{month}", reportHandler.GetAllEmployeesReport)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", adminHandler.ListHolidays)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", adminHandler.AddHoliday)
					r.Delete("/{date}", adminHandler.RemoveHoliday)
				})
			})

			// Admin only
			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", adminHandler.ListEmployees)
				r.Post("/", adminHandler.CreateEmployee)
				r.Get("/{employeeID}", adminHandler.GetEmployee)
				r.Patch("/{employeeID}/minute-cost", adminHandler.UpdateMinuteCost)
				r.Patch("/{employeeID}/vacation-allowance", adminHandler.UpdateVacationAllowance)
				r.Patch("/{employeeID}/active", adminHandler.SetActive)
			})
		})
	})
	return r
}
