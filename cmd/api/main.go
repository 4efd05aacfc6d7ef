package main

import (
	"fmt"
	"net/http"

	"github.com/nilehr/attendance-backend-go/internal/config"
	appHTTP "github.com/nilehr/attendance-backend-go/internal/handler/http"
	"github.com/nilehr/attendance-backend-go/internal/pkg/database"
	"github.com/nilehr/attendance-backend-go/internal/pkg/jwt"
	"github.com/nilehr/attendance-backend-go/internal/repository/postgresql"
	adminService "github.com/nilehr/attendance-backend-go/internal/service/admin"
	authService "github.com/nilehr/attendance-backend-go/internal/service/auth"
	"github.com/nilehr/attendance-backend-go/internal/service/calc"
	checkinService "github.com/nilehr/attendance-backend-go/internal/service/checkin"
	reportService "github.com/nilehr/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	calculator := calc.NewCalculator()

	reportSvc := reportService.NewReportService(db, attendanceRepo, employeeRepo, summaryRepo, holidayRepo, calculator)
	checkinSvc := checkinService.NewCheckinService(db, attendanceRepo, employeeRepo, holidayRepo, reportSvc, calculator)
	adminSvc := adminService.NewAdminService(db, attendanceRepo, employeeRepo, holidayRepo, reportSvc, calculator)
	authSvc := authService.NewAuthService(db, employeeRepo, refreshTokenRepo, JWTService)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(checkinSvc)
	adminHandler := appHTTP.NewAdminHandler(adminSvc, adminSvc, adminSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		attendanceHandler,
		adminHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
