package domain

import "time"

// SalesChannel канал продаж, которому атрибутируются бронирования по реферальному коду
type SalesChannel struct {
	ID             int64
	Code           string
	Name           string
	CommissionRate float64 // Доля от totalAmount, например 0.05
	Active         bool
}

// ReferralLedgerEntry начисление комиссии каналу продаж
// Создаётся не более одного раза на бронирование и после создания неизменяемо
type ReferralLedgerEntry struct {
	ID               int64
	SalesChannelID   int64
	BookingRef       string
	CommissionAmount float64
	CreatedAt        time.Time
}

// Coupon купон с фиксированной скидкой
type Coupon struct {
	Code     string
	Discount float64
	Active   bool
}
