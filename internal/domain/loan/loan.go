package loan

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"loan-office/internal/pkg/apperrors"
)

const (
	MinTenureMonths = 1
	MaxTenureMonths = 12

	// DefaultInterestRate is the percentage applied when an application does
	// not name a rate.
	DefaultInterestRate = 5
)

type InstallmentStatus string

const (
	InstallmentPaid     InstallmentStatus = "PAID"
	InstallmentOverdue  InstallmentStatus = "OVERDUE"
	InstallmentUpcoming InstallmentStatus = "UPCOMING"
)

type LoanStatus string

const (
	StatusOngoing   LoanStatus = "ONGOING"
	StatusCompleted LoanStatus = "COMPLETED"
)

// PaybackMonth is one scheduled monthly repayment of a loan. Only the paid
// flag ever changes after creation.
type PaybackMonth struct {
	ID               string          `json:"id"`
	LoanID           string          `json:"loanId"`
	Amount           decimal.Decimal `json:"amount"`
	Rate             decimal.Decimal `json:"rate"`
	Interest         decimal.Decimal `json:"interest"`
	MonthlyRepayment decimal.Decimal `json:"monthlyRepayment"`
	PaybackDate      time.Time       `json:"paybackDate"`
	Paid             bool            `json:"paid"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// StatusAt classifies the installment against a reference time. The OVERDUE
// transition is purely derived; nothing is stored.
func (p *PaybackMonth) StatusAt(now time.Time) InstallmentStatus {
	if p.Paid {
		return InstallmentPaid
	}
	if now.After(p.PaybackDate) {
		return InstallmentOverdue
	}
	return InstallmentUpcoming
}

type LoanApplication struct {
	ID               string           `json:"id"`
	CustomerID       string           `json:"customerId"`
	ModminID         string           `json:"modminId"`
	LoanType         string           `json:"loanType"`
	LoanAmount       decimal.Decimal  `json:"loanAmount"`
	ManagementFee    decimal.Decimal  `json:"managementFee"`
	ApplicationFee   decimal.Decimal  `json:"applicationFee"`
	Equity           decimal.Decimal  `json:"equity"`
	InterestRate     decimal.Decimal  `json:"interestRate"`
	LoanTenure       int              `json:"loanTenure"`
	DisbursedDate    time.Time        `json:"disbursedDate"`
	PreLoanAmount    *decimal.Decimal `json:"preLoanAmount,omitempty"`
	PreLoanTenure    *int             `json:"preLoanTenure,omitempty"`
	OfficeAddress    string           `json:"officeAddress"`
	SalaryDate       *time.Time       `json:"salaryDate,omitempty"`
	SalaryAmount     *decimal.Decimal `json:"salaryAmount,omitempty"`
	BankName         string           `json:"bankName"`
	BankAccNumber    string           `json:"bankAccNumber"`
	OutstandingLoans string           `json:"outstandingLoans"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	Installments     []PaybackMonth   `json:"installments,omitempty"`
}

// Completed reports whether every installment has been paid. A loan with no
// installments is vacuously completed; ApplyLoan always generates at least
// one, so that state is unreachable through the service.
func (l *LoanApplication) Completed() bool {
	for i := range l.Installments {
		if !l.Installments[i].Paid {
			return false
		}
	}
	return true
}

func (l *LoanApplication) Status() LoanStatus {
	if l.Completed() {
		return StatusCompleted
	}
	return StatusOngoing
}

// GenerateSchedule amortizes a principal into one installment per tenure
// month. Each installment carries an equal principal slice (no declining
// balance), simple interest at the given percentage rate, and a due date
// anchored to the end of its calendar month.
//
// The end-of-month anchor follows the back-office convention: in a leap year
// the anchor day is 29 for every month of that year, otherwise it is the true
// last day of the due month. Month arithmetic is anchored on the first of the
// month so a disbursement on e.g. Jan 31 still lands its first installment in
// February.
func GenerateSchedule(principal decimal.Decimal, tenureMonths int, disbursedDate time.Time, rate decimal.Decimal) ([]PaybackMonth, error) {
	if tenureMonths < MinTenureMonths || tenureMonths > MaxTenureMonths {
		return nil, fmt.Errorf("%w: tenure must be between %d and %d months, got %d",
			apperrors.ErrInvalidArgument, MinTenureMonths, MaxTenureMonths, tenureMonths)
	}
	if disbursedDate.IsZero() {
		return nil, fmt.Errorf("%w: disbursed date is required", apperrors.ErrInvalidArgument)
	}

	amount := principal.DivRound(decimal.NewFromInt(int64(tenureMonths)), 2)
	interest := amount.Mul(rate).DivRound(decimal.NewFromInt(100), 2)
	monthlyRepayment := amount.Add(interest)

	firstOfDisbursedMonth := time.Date(disbursedDate.Year(), disbursedDate.Month(), 1, 0, 0, 0, 0, time.UTC)

	schedule := make([]PaybackMonth, 0, tenureMonths)
	now := time.Now()
	for i := 1; i <= tenureMonths; i++ {
		dueMonth := firstOfDisbursedMonth.AddDate(0, i, 0)
		year, month := dueMonth.Year(), dueMonth.Month()

		// Day zero of the following month is the last day of this one.
		lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
		day := lastDay
		if isLeapYear(year) {
			day = 29
		}

		schedule = append(schedule, PaybackMonth{
			ID:               uuid.NewString(),
			Amount:           amount,
			Rate:             rate,
			Interest:         interest,
			MonthlyRepayment: monthlyRepayment,
			PaybackDate:      time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
			Paid:             false,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	return schedule, nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
