package event

import "time"

// LoanAppliedEvent is emitted after a loan application and its schedule are
// committed.
type LoanAppliedEvent struct {
	LoanID        string    `json:"loanId"`
	CustomerID    string    `json:"customerId"`
	ModminID      string    `json:"modminId"`
	LoanAmount    string    `json:"loanAmount"`
	LoanTenure    int       `json:"loanTenure"`
	InterestRate  string    `json:"interestRate"`
	DisbursedDate time.Time `json:"disbursedDate"`
	Timestamp     time.Time `json:"timestamp"`
}

// InstallmentToggledEvent is emitted after an installment's paid flag flips.
type InstallmentToggledEvent struct {
	LoanID        string    `json:"loanId"`
	InstallmentID string    `json:"installmentId"`
	Paid          bool      `json:"paid"`
	LoanCompleted bool      `json:"loanCompleted"`
	Timestamp     time.Time `json:"timestamp"`
}
