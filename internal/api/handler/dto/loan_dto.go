package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"loan-office/internal/domain/loan"
)

const dateLayout = "2006-01-02"

type ApplyLoanRequest struct {
	CustomerID       string  `json:"customerId"`
	LoanType         string  `json:"loanType"`
	LoanAmount       string  `json:"loanAmount"`
	ManagementFee    string  `json:"managementFee"`
	ApplicationFee   string  `json:"applicationFee"`
	Equity           string  `json:"equity"`
	InterestRate     *string `json:"interestRate,omitempty"`
	LoanTenure       int     `json:"loanTenure"`
	DisbursedDate    string  `json:"disbursedDate"`
	PreLoanAmount    *string `json:"preLoanAmount,omitempty"`
	PreLoanTenure    *int    `json:"preLoanTenure,omitempty"`
	OfficeAddress    string  `json:"officeAddress"`
	SalaryDate       *string `json:"salaryDate,omitempty"`
	SalaryAmount     *string `json:"salaryAmount,omitempty"`
	BankName         string  `json:"bankName"`
	BankAccNumber    string  `json:"bankAccNumber"`
	OutstandingLoans string  `json:"outstandingLoans"`
}

func (r *ApplyLoanRequest) Validate() error {
	if r.CustomerID == "" {
		return fmt.Errorf("customerId cannot be empty")
	}
	amount, err := decimal.NewFromString(r.LoanAmount)
	if err != nil {
		return fmt.Errorf("invalid loanAmount: %w", err)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("loanAmount must be greater than zero")
	}
	if r.LoanTenure < loan.MinTenureMonths || r.LoanTenure > loan.MaxTenureMonths {
		return fmt.Errorf("loanTenure must be between %d and %d months", loan.MinTenureMonths, loan.MaxTenureMonths)
	}
	if _, err := time.Parse(dateLayout, r.DisbursedDate); err != nil || r.DisbursedDate == "" {
		return fmt.Errorf("invalid disbursedDate format (use YYYY-MM-DD): %w", err)
	}
	if r.InterestRate != nil {
		rate, err := decimal.NewFromString(*r.InterestRate)
		if err != nil {
			return fmt.Errorf("invalid interestRate: %w", err)
		}
		if rate.IsNegative() {
			return fmt.Errorf("interestRate cannot be negative")
		}
	}
	for name, val := range map[string]string{
		"managementFee":  r.ManagementFee,
		"applicationFee": r.ApplicationFee,
		"equity":         r.Equity,
	} {
		if val == "" {
			continue
		}
		if _, err := decimal.NewFromString(val); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if r.SalaryDate != nil {
		if _, err := time.Parse(dateLayout, *r.SalaryDate); err != nil {
			return fmt.Errorf("invalid salaryDate format (use YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

// ToInput converts the validated request to the service input. Call Validate
// first; conversion assumes the fields parse.
func (r *ApplyLoanRequest) ToInput() loan.ApplicationInput {
	parseOr := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}

	input := loan.ApplicationInput{
		LoanType:         r.LoanType,
		LoanAmount:       parseOr(r.LoanAmount),
		ManagementFee:    parseOr(r.ManagementFee),
		ApplicationFee:   parseOr(r.ApplicationFee),
		Equity:           parseOr(r.Equity),
		LoanTenure:       r.LoanTenure,
		OfficeAddress:    r.OfficeAddress,
		BankName:         r.BankName,
		BankAccNumber:    r.BankAccNumber,
		OutstandingLoans: r.OutstandingLoans,
		PreLoanTenure:    r.PreLoanTenure,
	}
	input.DisbursedDate, _ = time.Parse(dateLayout, r.DisbursedDate)
	if r.InterestRate != nil {
		rate := parseOr(*r.InterestRate)
		input.InterestRate = &rate
	}
	if r.PreLoanAmount != nil {
		amt := parseOr(*r.PreLoanAmount)
		input.PreLoanAmount = &amt
	}
	if r.SalaryAmount != nil {
		amt := parseOr(*r.SalaryAmount)
		input.SalaryAmount = &amt
	}
	if r.SalaryDate != nil {
		d, _ := time.Parse(dateLayout, *r.SalaryDate)
		input.SalaryDate = &d
	}
	return input
}

type LoanResponse struct {
	ID               string                `json:"id"`
	CustomerID       string                `json:"customerId"`
	ModminID         string                `json:"modminId"`
	LoanType         string                `json:"loanType"`
	LoanAmount       string                `json:"loanAmount"`
	ManagementFee    string                `json:"managementFee"`
	ApplicationFee   string                `json:"applicationFee"`
	Equity           string                `json:"equity"`
	InterestRate     string                `json:"interestRate"`
	LoanTenure       int                   `json:"loanTenure"`
	DisbursedDate    string                `json:"disbursedDate"`
	PreLoanAmount    *string               `json:"preLoanAmount,omitempty"`
	PreLoanTenure    *int                  `json:"preLoanTenure,omitempty"`
	OfficeAddress    string                `json:"officeAddress"`
	SalaryDate       *string               `json:"salaryDate,omitempty"`
	SalaryAmount     *string               `json:"salaryAmount,omitempty"`
	BankName         string                `json:"bankName"`
	BankAccNumber    string                `json:"bankAccNumber"`
	OutstandingLoans string                `json:"outstandingLoans"`
	Status           string                `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	Installments     []InstallmentResponse `json:"installments,omitempty"`
}

type InstallmentResponse struct {
	ID               string `json:"id"`
	Amount           string `json:"amount"`
	Rate             string `json:"rate"`
	Interest         string `json:"interest"`
	MonthlyRepayment string `json:"monthlyRepayment"`
	PaybackDate      string `json:"paybackDate"`
	Paid             bool   `json:"paid"`
	Status           string `json:"status"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type LoanListResponse struct {
	Loans []LoanResponse `json:"loans"`
	Meta  PageMeta       `json:"meta"`
}

func NewLoanResponse(domainLoan *loan.LoanApplication, includeInstallments bool) LoanResponse {
	formatDecimalMoney := func(d decimal.Decimal) string {
		return d.StringFixed(2)
	}

	resp := LoanResponse{
		ID:               domainLoan.ID,
		CustomerID:       domainLoan.CustomerID,
		ModminID:         domainLoan.ModminID,
		LoanType:         domainLoan.LoanType,
		LoanAmount:       formatDecimalMoney(domainLoan.LoanAmount),
		ManagementFee:    formatDecimalMoney(domainLoan.ManagementFee),
		ApplicationFee:   formatDecimalMoney(domainLoan.ApplicationFee),
		Equity:           formatDecimalMoney(domainLoan.Equity),
		InterestRate:     domainLoan.InterestRate.String(),
		LoanTenure:       domainLoan.LoanTenure,
		DisbursedDate:    domainLoan.DisbursedDate.Format(dateLayout),
		PreLoanTenure:    domainLoan.PreLoanTenure,
		OfficeAddress:    domainLoan.OfficeAddress,
		BankName:         domainLoan.BankName,
		BankAccNumber:    domainLoan.BankAccNumber,
		OutstandingLoans: domainLoan.OutstandingLoans,
		Status:           string(domainLoan.Status()),
		CreatedAt:        domainLoan.CreatedAt,
		UpdatedAt:        domainLoan.UpdatedAt,
	}

	if domainLoan.PreLoanAmount != nil {
		s := formatDecimalMoney(*domainLoan.PreLoanAmount)
		resp.PreLoanAmount = &s
	}
	if domainLoan.SalaryAmount != nil {
		s := formatDecimalMoney(*domainLoan.SalaryAmount)
		resp.SalaryAmount = &s
	}
	if domainLoan.SalaryDate != nil {
		s := domainLoan.SalaryDate.Format(dateLayout)
		resp.SalaryDate = &s
	}

	if includeInstallments && domainLoan.Installments != nil {
		now := time.Now()
		resp.Installments = make([]InstallmentResponse, len(domainLoan.Installments))
		for i := range domainLoan.Installments {
			resp.Installments[i] = NewInstallmentResponse(&domainLoan.Installments[i], now)
		}
	}

	return resp
}

func NewInstallmentResponse(pm *loan.PaybackMonth, now time.Time) InstallmentResponse {
	formatDecimalMoney := func(d decimal.Decimal) string {
		return d.StringFixed(2)
	}

	return InstallmentResponse{
		ID:               pm.ID,
		Amount:           formatDecimalMoney(pm.Amount),
		Rate:             pm.Rate.String(),
		Interest:         formatDecimalMoney(pm.Interest),
		MonthlyRepayment: formatDecimalMoney(pm.MonthlyRepayment),
		PaybackDate:      pm.PaybackDate.Format(dateLayout),
		Paid:             pm.Paid,
		Status:           string(pm.StatusAt(now)),
	}
}
