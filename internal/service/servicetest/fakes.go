// Package servicetest provides in-memory repository implementations and JWT
// context helpers for service unit tests.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/nilehr/attendance-backend-go/internal/domain/attendance"
	"github.com/nilehr/attendance-backend-go/internal/domain/employee"
	"github.com/nilehr/attendance-backend-go/internal/domain/holiday"
	"github.com/nilehr/attendance-backend-go/internal/domain/summary"
	"github.com/shopspring/decimal"
)

// ContextWithClaims builds a context carrying a decoded JWT, the same shape
// the jwtauth verifier middleware produces.
func ContextWithClaims(employeeID, role string) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, _ := ja.Encode(map[string]interface{}{
		"user_id": employeeID,
		"role":    role,
		"type":    "access",
	})
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ========================================
// EMPLOYEE
// ========================================

type EmployeeRepo struct {
	mu        sync.Mutex
	Employees map[string]employee.Employee
}

func NewEmployeeRepo() *EmployeeRepo {
	return &EmployeeRepo{Employees: make(map[string]employee.Employee)}
}

func (r *EmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Employees {
		if existing.Username == e.Username {
			return employee.Employee{}, employee.ErrUsernameExists
		}
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.Employees[e.ID] = e
	return e, nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepo) GetByUsername(_ context.Context, username string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Employees {
		if e.Username == username {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []employee.Employee
	for _, e := range r.Employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *EmployeeRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Employees), nil
}

func (r *EmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Employees[e.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	e.UpdatedAt = time.Now()
	r.Employees[e.ID] = e
	return nil
}

func (r *EmployeeRepo) UpdatePassword(_ context.Context, id string, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.PasswordHash = hash
	r.Employees[id] = e
	return nil
}

// ========================================
// ATTENDANCE
// ========================================

type AttendanceRepo struct {
	mu      sync.Mutex
	Records map[string]attendance.Attendance
}

func NewAttendanceRepo() *AttendanceRepo {
	return &AttendanceRepo{Records: make(map[string]attendance.Attendance)}
}

func (r *AttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Records {
		if existing.EmployeeID == a.EmployeeID && existing.Date.Equal(a.Date) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.Records[a.ID] = a
	return a, nil
}

func (r *AttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *AttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.Records {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *AttendanceRepo) ListByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Attendance, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return r.ListByEmployeeAndRange(ctx, employeeID, from, from.AddDate(0, 1, -1))
}

func (r *AttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.Records {
		if a.EmployeeID == employeeID && !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *AttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Records[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.UpdatedAt = time.Now()
	r.Records[a.ID] = a
	return nil
}

func (r *AttendanceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.Records, id)
	return nil
}

// ========================================
// SUMMARY
// ========================================

type summaryKey struct {
	employeeID string
	year       int
	month      int
}

type SummaryRepo struct {
	mu        sync.Mutex
	Summaries map[summaryKey]summary.MonthlySummary
}

func NewSummaryRepo() *SummaryRepo {
	return &SummaryRepo{Summaries: make(map[summaryKey]summary.MonthlySummary)}
}

func (r *SummaryRepo) Get(_ context.Context, employeeID string, year, month int) (*summary.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Summaries[summaryKey{employeeID, year, month}]
	if !ok {
		return nil, nil
	}
	found := s
	return &found, nil
}

func (r *SummaryRepo) Upsert(_ context.Context, s summary.MonthlySummary) (summary.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := summaryKey{s.EmployeeID, s.Year, s.Month}
	if existing, ok := r.Summaries[key]; ok {
		s.ID = existing.ID
		s.Bonus = existing.Bonus // stored bonus wins, like the SQL upsert
		s.CreatedAt = existing.CreatedAt
	} else {
		s.ID = uuid.NewString()
		s.CreatedAt = time.Now()
	}
	s.UpdatedAt = time.Now()
	r.Summaries[key] = s
	return s, nil
}

func (r *SummaryRepo) SetBonus(_ context.Context, employeeID string, year, month int, bonus decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := summaryKey{employeeID, year, month}
	s, ok := r.Summaries[key]
	if !ok {
		s = summary.MonthlySummary{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Year:       year,
			Month:      month,
			Bonus:      decimal.Zero,
			Salary:     decimal.Zero,
			CreatedAt:  time.Now(),
		}
	}
	s.Bonus = bonus
	s.UpdatedAt = time.Now()
	r.Summaries[key] = s
	return nil
}

func (r *SummaryRepo) ListByEmployee(_ context.Context, employeeID string) ([]summary.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []summary.MonthlySummary
	for _, s := range r.Summaries {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (r *SummaryRepo) ListByMonth(_ context.Context, year, month int) ([]summary.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []summary.MonthlySummary
	for _, s := range r.Summaries {
		if s.Year == year && s.Month == month {
			out = append(out, s)
		}
	}
	return out, nil
}

// ========================================
// HOLIDAY
// ========================================

type HolidayRepo struct {
	mu       sync.Mutex
	Holidays map[string]holiday.Holiday // keyed by YYYY-MM-DD
}

func NewHolidayRepo() *HolidayRepo {
	return &HolidayRepo{Holidays: make(map[string]holiday.Holiday)}
}

func (r *HolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := h.Date.Format("2006-01-02")
	if _, ok := r.Holidays[key]; ok {
		return holiday.Holiday{}, holiday.ErrHolidayExists
	}
	h.ID = uuid.NewString()
	h.CreatedAt = time.Now()
	r.Holidays[key] = h
	return h, nil
}

func (r *HolidayRepo) DeleteByDate(_ context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := date.Format("2006-01-02")
	if _, ok := r.Holidays[key]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(r.Holidays, key)
	return nil
}

func (r *HolidayRepo) ListByRange(_ context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []holiday.Holiday
	for _, h := range r.Holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *HolidayRepo) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	return r.ListByRange(ctx, from, to)
}

// ========================================
// REFRESH TOKENS
// ========================================

type tokenRecord struct {
	employeeID string
	expiresAt  int64
	revoked    bool
}

type RefreshTokenRepo struct {
	mu     sync.Mutex
	Tokens map[string]*tokenRecord
}

func NewRefreshTokenRepo() *RefreshTokenRepo {
	return &RefreshTokenRepo{Tokens: make(map[string]*tokenRecord)}
}

func (r *RefreshTokenRepo) Store(_ context.Context, employeeID, token string, expiresAt int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tokens[token] = &tokenRecord{employeeID: employeeID, expiresAt: expiresAt}
	return nil
}

func (r *RefreshTokenRepo) IsValid(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.Tokens[token]
	if !ok || rec.revoked || rec.expiresAt <= time.Now().Unix() {
		return false, nil
	}
	return true, nil
}

func (r *RefreshTokenRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.Tokens[token]; ok {
		rec.revoked = true
	}
	return nil
}

func (r *RefreshTokenRepo) RevokeAllForEmployee(_ context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.Tokens {
		if rec.employeeID == employeeID {
			rec.revoked = true
		}
	}
	return nil
}
