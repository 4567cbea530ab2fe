package loan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"loan-office/internal/pkg/apperrors"
)

func TestGenerateSchedule(t *testing.T) {
	t.Run("should generate one installment per tenure month", func(t *testing.T) {
		principal := decimal.NewFromInt(60000)
		disbursed := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

		schedule, err := GenerateSchedule(principal, 6, disbursed, decimal.NewFromInt(5))
		assert.NoError(t, err)
		assert.Len(t, schedule, 6)

		for _, pm := range schedule {
			assert.Equal(t, "10000", pm.Amount.String())
			assert.Equal(t, "500", pm.Interest.String())
			assert.Equal(t, "10500", pm.MonthlyRepayment.String())
			assert.Equal(t, pm.Amount.Add(pm.Interest), pm.MonthlyRepayment)
			assert.False(t, pm.Paid)
			assert.NotEmpty(t, pm.ID)
		}
	})

	t.Run("should anchor due dates to day 29 in a leap year", func(t *testing.T) {
		disbursed := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

		schedule, err := GenerateSchedule(decimal.NewFromInt(60000), 6, disbursed, decimal.NewFromInt(5))
		assert.NoError(t, err)

		assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), schedule[0].PaybackDate)
		assert.Equal(t, time.Date(2024, time.March, 29, 0, 0, 0, 0, time.UTC), schedule[1].PaybackDate)
		assert.Equal(t, time.Date(2024, time.April, 29, 0, 0, 0, 0, time.UTC), schedule[2].PaybackDate)
		assert.Equal(t, time.Date(2024, time.July, 29, 0, 0, 0, 0, time.UTC), schedule[5].PaybackDate)
	})

	t.Run("should anchor due dates to true month end outside a leap year", func(t *testing.T) {
		disbursed := time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC)

		schedule, err := GenerateSchedule(decimal.NewFromInt(12000), 4, disbursed, decimal.NewFromInt(5))
		assert.NoError(t, err)

		assert.Equal(t, time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC), schedule[0].PaybackDate)
		assert.Equal(t, time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC), schedule[1].PaybackDate)
		assert.Equal(t, time.Date(2023, time.April, 30, 0, 0, 0, 0, time.UTC), schedule[2].PaybackDate)
		assert.Equal(t, time.Date(2023, time.May, 31, 0, 0, 0, 0, time.UTC), schedule[3].PaybackDate)
	})

	t.Run("should land the first installment in the following month for a month-end disbursement", func(t *testing.T) {
		disbursed := time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)

		schedule, err := GenerateSchedule(decimal.NewFromInt(5000), 2, disbursed, decimal.NewFromInt(5))
		assert.NoError(t, err)

		assert.Equal(t, time.February, schedule[0].PaybackDate.Month())
		assert.Equal(t, time.March, schedule[1].PaybackDate.Month())
	})

	t.Run("should keep due dates strictly increasing across a year boundary", func(t *testing.T) {
		disbursed := time.Date(2023, time.October, 5, 0, 0, 0, 0, time.UTC)

		schedule, err := GenerateSchedule(decimal.NewFromInt(120000), 12, disbursed, decimal.NewFromInt(5))
		assert.NoError(t, err)
		assert.Len(t, schedule, 12)

		for i := 1; i < len(schedule); i++ {
			assert.True(t, schedule[i].PaybackDate.After(schedule[i-1].PaybackDate))
		}
		// Installments falling in 2024 pick up the leap-year anchor.
		assert.Equal(t, time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC), schedule[2].PaybackDate)
	})

	t.Run("should round the principal slice to two decimal places", func(t *testing.T) {
		principal := decimal.NewFromInt(10000)

		schedule, err := GenerateSchedule(principal, 3, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(5))
		assert.NoError(t, err)

		assert.Equal(t, "3333.33", schedule[0].Amount.StringFixed(2))

		sum := decimal.Zero
		for _, pm := range schedule {
			sum = sum.Add(pm.Amount)
		}
		assert.True(t, sum.Sub(principal).Abs().LessThanOrEqual(decimal.NewFromFloat(0.03)),
			"installment principals should sum to within a few cents of the loan amount, got %s", sum)
	})

	t.Run("should reject a tenure outside the allowed range", func(t *testing.T) {
		disbursed := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

		_, err := GenerateSchedule(decimal.NewFromInt(1000), 0, disbursed, decimal.NewFromInt(5))
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		_, err = GenerateSchedule(decimal.NewFromInt(1000), 13, disbursed, decimal.NewFromInt(5))
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("should reject a zero disbursed date", func(t *testing.T) {
		_, err := GenerateSchedule(decimal.NewFromInt(1000), 6, time.Time{}, decimal.NewFromInt(5))
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("should carry a zero interest rate through to repayment", func(t *testing.T) {
		schedule, err := GenerateSchedule(decimal.NewFromInt(6000), 6, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), decimal.Zero)
		assert.NoError(t, err)

		for _, pm := range schedule {
			assert.True(t, pm.Interest.IsZero())
			assert.Equal(t, pm.Amount, pm.MonthlyRepayment)
		}
	})
}

func TestPaybackMonthStatusAt(t *testing.T) {
	due := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)

	t.Run("paid installments are PAID regardless of the clock", func(t *testing.T) {
		pm := PaybackMonth{PaybackDate: due, Paid: true}
		assert.Equal(t, InstallmentPaid, pm.StatusAt(due.AddDate(0, 2, 0)))
	})

	t.Run("unpaid installments past due are OVERDUE", func(t *testing.T) {
		pm := PaybackMonth{PaybackDate: due}
		assert.Equal(t, InstallmentOverdue, pm.StatusAt(due.Add(time.Hour)))
	})

	t.Run("unpaid installments on or before the due date are UPCOMING", func(t *testing.T) {
		pm := PaybackMonth{PaybackDate: due}
		assert.Equal(t, InstallmentUpcoming, pm.StatusAt(due))
		assert.Equal(t, InstallmentUpcoming, pm.StatusAt(due.AddDate(0, 0, -10)))
	})
}

func TestLoanApplicationCompleted(t *testing.T) {
	t.Run("completed only when every installment is paid", func(t *testing.T) {
		app := &LoanApplication{Installments: []PaybackMonth{
			{Paid: true},
			{Paid: false},
		}}
		assert.False(t, app.Completed())
		assert.Equal(t, StatusOngoing, app.Status())

		app.Installments[1].Paid = true
		assert.True(t, app.Completed())
		assert.Equal(t, StatusCompleted, app.Status())
	})

	t.Run("a loan with no installments reads as completed", func(t *testing.T) {
		app := &LoanApplication{}
		assert.True(t, app.Completed())
	})
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, isLeapYear(2024))
	assert.True(t, isLeapYear(2000))
	assert.False(t, isLeapYear(2023))
	assert.False(t, isLeapYear(1900))
}

func TestListFilterNormalized(t *testing.T) {
	f := ListFilter{}.Normalized()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 0, f.Offset())

	f = ListFilter{Page: 3, Limit: 10}.Normalized()
	assert.Equal(t, 20, f.Offset())
}
