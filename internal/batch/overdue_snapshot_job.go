package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loan-office/internal/domain/loan"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/infrastructure/monitoring"
)

// OverdueSnapshotJob walks every loan and derives its installment statuses,
// publishing the aggregate counts as gauges. It never writes anything:
// overdue is a derived state, so the job only observes.
type OverdueSnapshotJob struct {
	loanRepo loan.Repository
	logger   *slog.Logger
}

func NewOverdueSnapshotJob(loanRepo loan.Repository, logger *slog.Logger) *OverdueSnapshotJob {
	if loanRepo == nil || logger == nil {
		panic("OverdueSnapshotJob dependencies cannot be nil")
	}
	return &OverdueSnapshotJob{
		loanRepo: loanRepo,
		logger:   logger.With("job", "OverdueSnapshot"),
	}
}

func (j *OverdueSnapshotJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting overdue snapshot job.")

	admin := modmin.Actor{Role: modmin.RoleAdmin}
	loans, err := j.loanRepo.ListWithInstallments(ctx, admin)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load loans, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to load loans: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched loans for snapshot.", slog.Int("count", len(loans)))

	now := time.Now()
	var overdueInstallments, ongoingLoans, completedLoans int
	for _, l := range loans {
		if l.Status() == loan.StatusCompleted {
			completedLoans++
		} else {
			ongoingLoans++
		}
		for i := range l.Installments {
			if l.Installments[i].StatusAt(now) == loan.InstallmentOverdue {
				overdueInstallments++
			}
		}
	}

	monitoring.RecordOverdueSnapshot(overdueInstallments, ongoingLoans, completedLoans)

	j.logger.InfoContext(ctx, "Overdue snapshot job finished.",
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("loans", len(loans)),
		slog.Int("overdue_installments", overdueInstallments),
		slog.Int("ongoing_loans", ongoingLoans),
		slog.Int("completed_loans", completedLoans),
	)
	return nil
}
