package services

import (
	"context"
	"errors"
	"time"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/adapters/persistence/repositories"
)

// Report errors
var (
	ErrInvalidDateRange = errors.New("invalid date range")
)

const reportDateLayout = "2006-01-02"

// ReportService builds payment reports over a date range
type ReportService struct {
	paymentRepo *repositories.PaymentRepository
}

// NewReportService creates a new report service
func NewReportService(paymentRepo *repositories.PaymentRepository) *ReportService {
	return &ReportService{paymentRepo: paymentRepo}
}

// ReportRow represents one payment row in a report
type ReportRow struct {
	PaymentID  uint      `json:"payment_id"`
	TenantName string    `json:"tenant_name"`
	RoomNumber string    `json:"room_number"`
	RentalType string    `json:"rental_type"`
	Method     string    `json:"method"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	Date       time.Time `json:"date"`
}

// Report represents an income report over a date range
type Report struct {
	StartDate          string      `json:"start_date,omitempty"`
	EndDate            string      `json:"end_date,omitempty"`
	TotalIncome        float64     `json:"total_income"`
	TotalPayments      int         `json:"total_payments"`
	SuccessfulPayments int         `json:"successful_payments"`
	PendingPayments    int         `json:"pending_payments"`
	Payments           []ReportRow `json:"payments"`
}

// GetReport builds the income report for [startDate, endDate]. Dates
// use the YYYY-MM-DD form; either bound may be empty. The end bound is
// extended to the last instant of that day so the range covers it fully.
func (s *ReportService) GetReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	var start, end *time.Time

	if startDate != "" {
		t, err := time.ParseInLocation(reportDateLayout, startDate, time.Local)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.ParseInLocation(reportDateLayout, endDate, time.Local)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		t = t.Add(24*time.Hour - time.Millisecond)
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, ErrInvalidDateRange
	}

	payments, err := s.paymentRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &Report{
		StartDate: startDate,
		EndDate:   endDate,
		Payments:  make([]ReportRow, 0, len(payments)),
	}

	for _, p := range payments {
		row := ReportRow{
			PaymentID:  p.ID,
			RentalType: p.RentalType,
			Method:     p.Method,
			Amount:     p.Amount,
			Status:     p.Status,
			Date:       p.CreatedAt,
		}
		if p.Tenant != nil {
			row.TenantName = p.Tenant.Name
		}
		if p.Room != nil {
			row.RoomNumber = p.Room.RoomNumber
		}

		report.TotalPayments++
		if p.IsSuccessful() {
			report.SuccessfulPayments++
			report.TotalIncome += p.Amount
		} else if p.Status == models.PaymentPending {
			report.PendingPayments++
		}

		report.Payments = append(report.Payments, row)
	}

	return report, nil
}
