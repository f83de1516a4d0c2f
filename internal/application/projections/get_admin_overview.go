package projections

import (
	"context"
	"fmt"
	"time"
)

// Counter is satisfied by every store that can report its row count.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// RevenueStore reports the collected fees for a billing period.
type RevenueStore interface {
	RevenueForMonth(ctx context.Context, year, month int) (float64, error)
}

// GetAdminOverviewDeps holds dependencies for the admin dashboard projection.
type GetAdminOverviewDeps struct {
	StudentStore    Counter
	TeacherStore    Counter
	ClassStore      Counter
	EnrollmentStore Counter
	PaymentStore    RevenueStore
	Now             func() time.Time
}

// AdminOverview is the dashboard summary.
type AdminOverview struct {
	Students       int     `json:"Students"`
	Teachers       int     `json:"Teachers"`
	Classes        int     `json:"Classes"`
	Enrollments    int     `json:"Enrollments"`
	MonthlyRevenue float64 `json:"MonthlyRevenue"`
}

// QueryGetAdminOverview aggregates headcounts and the current month's
// collected fees.
func QueryGetAdminOverview(ctx context.Context, deps GetAdminOverviewDeps) (AdminOverview, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	at := now()

	var (
		overview AdminOverview
		err      error
	)
	if overview.Students, err = deps.StudentStore.Count(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("count students: %w", err)
	}
	if overview.Teachers, err = deps.TeacherStore.Count(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("count teachers: %w", err)
	}
	if overview.Classes, err = deps.ClassStore.Count(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("count classes: %w", err)
	}
	if overview.Enrollments, err = deps.EnrollmentStore.Count(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("count enrollments: %w", err)
	}
	if overview.MonthlyRevenue, err = deps.PaymentStore.RevenueForMonth(ctx, at.Year(), int(at.Month())); err != nil {
		return AdminOverview{}, fmt.Errorf("month revenue: %w", err)
	}
	return overview, nil
}
