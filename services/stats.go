package services

import (
	"context"
	"io"
	"time"

	"hostelhub/models"
	"hostelhub/reports"

	"golang.org/x/sync/errgroup"
)

const trendMonths = 6

// PaymentStats runs its three aggregates concurrently; they are not read from one snapshot.
func (s *Service) PaymentStats(ctx context.Context, sess *Session) (*models.PaymentStats, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return s.paymentStats(ctx)
}

func (s *Service) paymentStats(ctx context.Context) (*models.PaymentStats, error) {
	var stats models.PaymentStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Payment{}).
			Where("status = ? AND amount = ?", models.PaymentPaid, s.fees.MonthlyFee).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&stats.TotalRevenue).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Payment{}).
			Where("status = ?", models.PaymentPending).
			Count(&stats.PendingPayments).Error
	})
	g.Go(func() error {
		trend, err := s.revenueTrend(gctx)
		stats.RevenueTrend = trend
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, s.unexpected("payment_stats", err)
	}
	return &stats, nil
}

// revenueTrend buckets paid amounts into the last six calendar months, current month last.
func (s *Service) revenueTrend(ctx context.Context) ([]models.MonthRevenue, error) {
	now := s.now()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	first := current.AddDate(0, -(trendMonths - 1), 0)

	trend := make([]models.MonthRevenue, trendMonths)
	for i := range trend {
		start := first.AddDate(0, i, 0)
		trend[i] = models.MonthRevenue{
			Year:  start.Year(),
			Month: int(start.Month()),
			Label: start.Format("Jan"),
		}
	}

	var paid []models.Payment
	err := s.db.WithContext(ctx).
		Select("amount", "created_at").
		Where("status = ? AND created_at >= ?", models.PaymentPaid, first).
		Find(&paid).Error
	if err != nil {
		return nil, err
	}

	for _, p := range paid {
		at := p.CreatedAt.In(now.Location())
		idx := (at.Year()-first.Year())*12 + int(at.Month()) - int(first.Month())
		if idx < 0 || idx >= trendMonths {
			continue
		}
		trend[idx].Revenue += p.Amount
	}
	return trend, nil
}

func (s *Service) Overview(ctx context.Context, sess *Session) (*models.Overview, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	students, err := s.studentsWithStatus(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.complaintCounts(ctx)
	if err != nil {
		return nil, err
	}

	out := &models.Overview{TotalStudents: len(students), Complaints: counts}
	for _, st := range students {
		if st.Status == StatusPaid {
			out.PaidStudents++
		} else {
			out.UnpaidStudents++
		}
	}
	return out, nil
}

// ExportPaymentsReport writes the XLSX payments report to w.
func (s *Service) ExportPaymentsReport(ctx context.Context, sess *Session, w io.Writer) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}

	stats, err := s.paymentStats(ctx)
	if err != nil {
		return err
	}
	students, err := s.studentsWithStatus(ctx)
	if err != nil {
		return err
	}

	rep := reports.PaymentsReport{
		GeneratedAt: s.now(),
		Stats:       *stats,
		Students:    students,
	}
	if err := reports.WritePaymentsWorkbook(w, rep); err != nil {
		return s.unexpected("export_payments_report", err)
	}
	return nil
}
