package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"loan-office/internal/domain/loan"
	"loan-office/internal/domain/modmin"
)

const dateLayout = "2006-01-02"

// Exporter writes the loan book as CSV, one row per installment, with
// statuses derived at export time.
type Exporter struct {
	loanRepo loan.Repository
	logger   *slog.Logger
}

func NewExporter(loanRepo loan.Repository, logger *slog.Logger) *Exporter {
	if loanRepo == nil {
		panic("loan repository cannot be nil")
	}
	return &Exporter{
		loanRepo: loanRepo,
		logger:   logger.With(slog.String("component", "reportExporter")),
	}
}

var csvHeader = []string{
	"loan_id", "customer_id", "loan_type", "loan_amount", "interest_rate",
	"loan_tenure", "disbursed_date", "loan_status",
	"installment_no", "installment_amount", "interest", "monthly_repayment",
	"payback_date", "installment_status",
}

// WriteCSV streams every loan visible to the actor. Loans without
// installments still produce one row so they stay visible in the report.
func (e *Exporter) WriteCSV(ctx context.Context, w io.Writer, actor modmin.Actor) error {
	e.logger.InfoContext(ctx, "Exporting loan report")

	loans, err := e.loanRepo.ListWithInstallments(ctx, actor)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to load loans for report", slog.Any("error", err))
		return fmt.Errorf("failed to load loans for report: %w", err)
	}

	now := time.Now()
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, l := range loans {
		if err := writeLoanRows(cw, l, now); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		e.logger.ErrorContext(ctx, "Failed flushing report", slog.Any("error", err))
		return fmt.Errorf("failed to flush report: %w", err)
	}

	e.logger.InfoContext(ctx, "Loan report exported", slog.Int("loans", len(loans)))
	return nil
}

// WriteLoanCSV streams a single loan with its full schedule. The actor scope
// applies, so a moderator exporting another moderator's loan gets not-found.
func (e *Exporter) WriteLoanCSV(ctx context.Context, w io.Writer, loanID string, actor modmin.Actor) error {
	e.logger.InfoContext(ctx, "Exporting single loan report", slog.String("loan_id", loanID))

	l, err := e.loanRepo.GetLoanByID(ctx, loanID, actor)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to load loan for report", slog.String("loan_id", loanID), slog.Any("error", err))
		return err
	}

	installments, err := e.loanRepo.GetInstallments(ctx, l.ID)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to load schedule for report", slog.String("loan_id", loanID), slog.Any("error", err))
		return err
	}
	l.Installments = installments

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	if err := writeLoanRows(cw, l, time.Now()); err != nil {
		return err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		e.logger.ErrorContext(ctx, "Failed flushing report", slog.Any("error", err))
		return fmt.Errorf("failed to flush report: %w", err)
	}

	e.logger.InfoContext(ctx, "Single loan report exported", slog.String("loan_id", loanID), slog.Int("installments", len(installments)))
	return nil
}

func writeLoanRows(cw *csv.Writer, l *loan.LoanApplication, now time.Time) error {
	base := []string{
		l.ID, l.CustomerID, l.LoanType, l.LoanAmount.StringFixed(2), l.InterestRate.String(),
		strconv.Itoa(l.LoanTenure), l.DisbursedDate.Format(dateLayout), string(l.Status()),
	}

	if len(l.Installments) == 0 {
		row := append(append([]string{}, base...), "", "", "", "", "", "")
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
		return nil
	}

	for i := range l.Installments {
		pm := &l.Installments[i]
		row := append(append([]string{}, base...),
			strconv.Itoa(i+1),
			pm.Amount.StringFixed(2),
			pm.Interest.StringFixed(2),
			pm.MonthlyRepayment.StringFixed(2),
			pm.PaybackDate.Format(dateLayout),
			string(pm.StatusAt(now)),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	return nil
}
