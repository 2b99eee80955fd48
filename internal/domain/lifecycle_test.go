package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		wantErr bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed},
		{name: "confirmed to sample-collected", from: StatusConfirmed, to: StatusSampleCollected},
		{name: "sample-collected to processing", from: StatusSampleCollected, to: StatusProcessing},
		{name: "processing to completed", from: StatusProcessing, to: StatusCompleted},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled},

		{name: "skip to completed", from: StatusPending, to: StatusCompleted, wantErr: true},
		{name: "skip sample collection", from: StatusConfirmed, to: StatusProcessing, wantErr: true},
		{name: "cancel after sample collected", from: StatusSampleCollected, to: StatusCancelled, wantErr: true},
		{name: "cancel after processing", from: StatusProcessing, to: StatusCancelled, wantErr: true},
		{name: "leave completed", from: StatusCompleted, to: StatusPending, wantErr: true},
		{name: "leave cancelled", from: StatusCancelled, to: StatusConfirmed, wantErr: true},
		{name: "regress", from: StatusProcessing, to: StatusConfirmed, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTransition))

			var transitionErr *InvalidTransitionError
			require.True(t, errors.As(err, &transitionErr))
			assert.Equal(t, tt.from, transitionErr.From)
			assert.Equal(t, tt.to, transitionErr.To)
		})
	}
}

// Никакая последовательность операций не выводит бронирование из терминального статуса
func TestTerminalStatusesAreFinal(t *testing.T) {
	for _, terminal := range []BookingStatus{StatusCompleted, StatusCancelled} {
		for _, to := range ValidStatuses {
			err := ValidateTransition(terminal, to)
			assert.Error(t, err, "transition %s -> %s must be rejected", terminal, to)
		}

		_, err := NextStatus(terminal)
		assert.Error(t, err)
	}
}

func TestNextStatus(t *testing.T) {
	next, err := NextStatus(StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusSampleCollected, next)

	next, err = NextStatus(StatusSampleCollected)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, next)

	next, err = NextStatus(StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, next)

	_, err = NextStatus(StatusPending)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	// Сообщение называет статус, а не фиктивный переход "pending -> pending"
	var notAdvanceable *NotAdvanceableError
	require.True(t, errors.As(err, &notAdvanceable))
	assert.Equal(t, StatusPending, notAdvanceable.From)
	assert.NotContains(t, err.Error(), "->")
}

func TestValidatePaymentTransition(t *testing.T) {
	tests := []struct {
		name          string
		from, to      PaymentStatus
		bookingStatus BookingStatus
		wantErr       bool
	}{
		{name: "pending to paid", from: PaymentPending, to: PaymentPaid, bookingStatus: StatusPending},
		{name: "pending to failed", from: PaymentPending, to: PaymentFailed, bookingStatus: StatusPending},
		{name: "failed retry", from: PaymentFailed, to: PaymentPaid, bookingStatus: StatusPending},
		{name: "refund after cancel", from: PaymentPaid, to: PaymentRefunded, bookingStatus: StatusCancelled},

		{name: "refund without cancel", from: PaymentPaid, to: PaymentRefunded, bookingStatus: StatusConfirmed, wantErr: true},
		{name: "refund from pending", from: PaymentPending, to: PaymentRefunded, bookingStatus: StatusCancelled, wantErr: true},
		{name: "unpay", from: PaymentPaid, to: PaymentPending, bookingStatus: StatusConfirmed, wantErr: true},
		{name: "refund to paid", from: PaymentRefunded, to: PaymentPaid, bookingStatus: StatusCancelled, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentTransition(tt.from, tt.to, tt.bookingStatus)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPaymentTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAmounts_CheckTotalIdentity(t *testing.T) {
	amounts := Amounts{
		BaseAmount: 899,
		Discount:   50,
		TaxAmount:  152.82,
	}
	amounts.TotalAmount = 1001.82
	assert.True(t, amounts.CheckTotalIdentity())

	amounts.TotalAmount = 1001.83
	assert.False(t, amounts.CheckTotalIdentity())
}

func TestSlotUniverse_Slots(t *testing.T) {
	universe := SlotUniverse{OpenTime: "09:00", CloseTime: "18:00", DurationMinutes: 60}

	slots, err := universe.Slots()
	require.NoError(t, err)
	require.Len(t, slots, 9)
	assert.Equal(t, "09:00-10:00", slots[0].String())
	assert.Equal(t, "17:00-18:00", slots[8].String())

	ok, err := universe.Contains("13:00-14:00")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = universe.Contains("13:30-14:30")
	require.NoError(t, err)
	assert.False(t, ok)
}
