package domain

import "time"

type LoanInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interestRate"`
	TermMonths   int     `json:"termMonths"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

type ScheduleEntry struct {
	Period           int       `json:"period"`
	DueDate          time.Time `json:"dueDate"`
	Payment          float64   `json:"payment"`
	Interest         float64   `json:"interest"`
	Principal        float64   `json:"principal"`
	RemainingBalance float64   `json:"remainingBalance"`
}

type LoanSchedule struct {
	Loan    LoanResult      `json:"loan"`
	Entries []ScheduleEntry `json:"entries"`
}
