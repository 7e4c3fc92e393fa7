package models

// FinancingMode is how the purchase is paid for
type FinancingMode string

const (
	FinancingSelfPaid FinancingMode = "self_paid"
	FinancingMortgage FinancingMode = "mortgage"
)

// Usage is what the owner does with the property
type Usage string

const (
	UsageRental  Usage = "rental"
	UsageSelfUse Usage = "self_use"
)

const (
	// DefaultDownPaymentRatio is the share of the price paid in cash on a mortgage
	DefaultDownPaymentRatio = 0.4
	// DefaultMortgageInterestRate is the annual mortgage interest in percent
	DefaultMortgageInterestRate = 3.99
)

// Financing describes the cash/loan split of an investment
type Financing struct {
	Mode             FinancingMode `json:"mode"`
	DownPaymentRatio float64       `json:"down_payment_ratio"`
	InterestRate     float64       `json:"interest_rate"` // annual, percent
}

// SelfPaid returns a cash purchase
func SelfPaid() Financing {
	return Financing{Mode: FinancingSelfPaid}
}

// Mortgage returns a mortgage with the default down payment and interest rate
func Mortgage() Financing {
	return Financing{
		Mode:             FinancingMortgage,
		DownPaymentRatio: DefaultDownPaymentRatio,
		InterestRate:     DefaultMortgageInterestRate,
	}
}

// IsMortgage reports whether part of the price is borrowed
func (f Financing) IsMortgage() bool {
	return f.Mode == FinancingMortgage
}

// CashInvested is the cash actually put in by the buyer
func (f Financing) CashInvested(principal float64) float64 {
	if f.IsMortgage() {
		return principal * f.DownPaymentRatio
	}
	return principal
}

// LoanAmount is the borrowed part of the principal
func (f Financing) LoanAmount(principal float64) float64 {
	if !f.IsMortgage() {
		return 0
	}
	return principal - f.CashInvested(principal)
}

// AnnualInterest is the yearly interest paid on the loan
func (f Financing) AnnualInterest(principal float64) float64 {
	return f.LoanAmount(principal) * f.InterestRate / 100
}

// InvestmentParameters is the resolved per-request input to the engine
type InvestmentParameters struct {
	Principal        float64
	PropertyArea     float64
	HorizonYears     int
	Financing        Financing
	Usage            Usage
	HandoverYear     int      // 0 when the property is ready
	ShortTermPremium *float64 // overrides the curve premium value
}

// IsRental reports whether rental income counts towards returns
func (p InvestmentParameters) IsRental() bool {
	return p.Usage == UsageRental
}
