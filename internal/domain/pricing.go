package domain

import "math"

// Amounts itemized booking price breakdown
// TotalAmount всегда производная величина: base + home + urgent + tax - discount
type Amounts struct {
	BaseAmount        float64
	HomeServiceCharge float64
	UrgentFee         float64
	Discount          float64
	TaxAmount         float64
	TotalAmount       float64
}

// Round2 rounds a monetary value to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CheckTotalIdentity returns true if the stored amounts satisfy the total invariant
func (a Amounts) CheckTotalIdentity() bool {
	expected := Round2(a.BaseAmount + a.HomeServiceCharge + a.UrgentFee + a.TaxAmount - a.Discount)
	return a.TotalAmount == expected && a.TotalAmount >= 0
}
