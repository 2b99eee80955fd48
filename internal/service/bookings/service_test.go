package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/ptr"
)

// In-memory фейки, реализующие контракты сервиса

type fakeBookingRepo struct {
	byID   map[int64]*domain.Booking
	nextID int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[int64]*domain.Booking), nextID: 1}
}

func (f *fakeBookingRepo) add(b *domain.Booking) *domain.Booking {
	b.ID = f.nextID
	f.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.byID[b.ID] = b
	return b
}

func (f *fakeBookingRepo) GetByRef(_ context.Context, ref string) (*domain.Booking, error) {
	for _, b := range f.byID {
		if b.BookingRef == ref {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByPatientEmail(_ context.Context, email string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.byID {
		if b.PatientEmail != email {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeBookingRepo) ListStalePending(_ context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.byID {
		if b.Status == domain.StatusPending && b.PaymentStatus == domain.PaymentPending && b.CreatedAt.Before(cutoff) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatusFrom(_ context.Context, id int64, from, to domain.BookingStatus) error {
	b, ok := f.byID[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStaleStatus
	}
	b.Status = to
	return nil
}

func (f *fakeBookingRepo) UpdatePaymentStatusFrom(_ context.Context, id int64, from, to domain.PaymentStatus, method *domain.PaymentMethod) error {
	b, ok := f.byID[id]
	if !ok || b.PaymentStatus != from {
		return bookingRepo.ErrStaleStatus
	}
	b.PaymentStatus = to
	if method != nil {
		b.PaymentMethod = *method
	}
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string, from []domain.BookingStatus) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingRepo.ErrStaleStatus
	}
	allowed := false
	for _, s := range from {
		if b.Status == s {
			allowed = true
		}
	}
	if !allowed {
		return bookingRepo.ErrStaleStatus
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	return nil
}

type fakeSlotRepo struct {
	reserved map[string]bool
	released []string
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{reserved: make(map[string]bool)}
}

func (f *fakeSlotRepo) ReleaseByBookingRef(_ context.Context, ref string) error {
	if !f.reserved[ref] {
		return slotRepo.ErrReservationNotFound
	}
	delete(f.reserved, ref)
	f.released = append(f.released, ref)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestBooking(ref string, status domain.BookingStatus, payment domain.PaymentStatus) *domain.Booking {
	return &domain.Booking{
		BookingRef:      ref,
		PatientName:     "Asha Rao",
		PatientAge:      34,
		PatientGender:   "female",
		PatientEmail:    "asha@example.com",
		PatientPhone:    "9876543210",
		ServiceID:       1,
		ServiceName:     "Blood Test",
		ServiceCategory: "blood-test",
		CenterID:        10,
		CenterName:      "Central Lab",
		CenterAddress:   "12 MG Road",
		AppointmentType: domain.AppointmentLabVisit,
		AppointmentDate: time.Now().AddDate(0, 0, 3),
		TimeSlot:        "09:00-10:00",
		TotalAmount:     1001.82,
		Status:          status,
		PaymentStatus:   payment,
		PaymentMethod:   domain.PaymentMethodOnline,
	}
}

func newTestService(repo *fakeBookingRepo, slots *fakeSlotRepo) *Service {
	return NewService(repo, slots, passthroughTxManager{}, nopLogger{})
}

func TestConfirm(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := repo.add(newTestBooking("DGB-1", domain.StatusPending, domain.PaymentPaid))

	svc := newTestService(repo, newFakeSlotRepo())

	resp, err := svc.Confirm(context.Background(), "DGB-1")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.byID[booking.ID].Status)
}

func TestConfirm_FailedPaymentRejected(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(newTestBooking("DGB-1", domain.StatusPending, domain.PaymentFailed))

	svc := newTestService(repo, newFakeSlotRepo())

	_, err := svc.Confirm(context.Background(), "DGB-1")
	assert.ErrorIs(t, err, ErrPaymentFailed)
}

func TestConfirm_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), newFakeSlotRepo())

	_, err := svc.Confirm(context.Background(), "DGB-404")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ReleasesSlotAndMarksRefund(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := repo.add(newTestBooking("DGB-1", domain.StatusConfirmed, domain.PaymentPaid))

	slots := newFakeSlotRepo()
	slots.reserved["DGB-1"] = true

	svc := newTestService(repo, slots)

	resp, err := svc.Cancel(context.Background(), "DGB-1", &models.CancelBookingRequest{CancellationReason: "changed plans"})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "refunded", resp.PaymentStatus)
	assert.Equal(t, domain.StatusCancelled, repo.byID[booking.ID].Status)
	assert.Equal(t, domain.PaymentRefunded, repo.byID[booking.ID].PaymentStatus)
	assert.Equal(t, []string{"DGB-1"}, slots.released)
}

func TestCancel_AfterSampleCollectionRejected(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(newTestBooking("DGB-1", domain.StatusSampleCollected, domain.PaymentPaid))

	svc := newTestService(repo, newFakeSlotRepo())

	_, err := svc.Cancel(context.Background(), "DGB-1", &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAdvance_OneStepAtATime(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := repo.add(newTestBooking("DGB-1", domain.StatusConfirmed, domain.PaymentPaid))

	svc := newTestService(repo, newFakeSlotRepo())
	ctx := context.Background()

	for _, want := range []domain.BookingStatus{domain.StatusSampleCollected, domain.StatusProcessing, domain.StatusCompleted} {
		resp, err := svc.Advance(ctx, "DGB-1", nil)
		require.NoError(t, err)
		assert.Equal(t, string(want), resp.Status)
		assert.Equal(t, want, repo.byID[booking.ID].Status)
	}

	// Из completed дальше пути нет
	_, err := svc.Advance(ctx, "DGB-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Запрос "сразу completed" для pending-бронирования отклоняется с парой (from, to)
func TestAdvance_SkippingStatesRejected(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(newTestBooking("DGB-1", domain.StatusPending, domain.PaymentPending))

	svc := newTestService(repo, newFakeSlotRepo())

	_, err := svc.Advance(context.Background(), "DGB-1", ptr.Ptr("completed"))
	require.Error(t, err)

	var transitionErr *domain.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, domain.StatusPending, transitionErr.From)
	assert.Equal(t, domain.StatusCompleted, transitionErr.To)
}

func TestRecordPayment(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := repo.add(newTestBooking("DGB-1", domain.StatusPending, domain.PaymentPending))

	svc := newTestService(repo, newFakeSlotRepo())

	resp, err := svc.RecordPayment(context.Background(), "DGB-1", &models.RecordPaymentRequest{
		PaymentStatus: "paid",
		PaymentMethod: ptr.Ptr("wallet"),
	})
	require.NoError(t, err)

	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, domain.PaymentMethodWallet, repo.byID[booking.ID].PaymentMethod)
}

func TestRecordPayment_RefundRequiresCancelled(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(newTestBooking("DGB-1", domain.StatusConfirmed, domain.PaymentPaid))

	svc := newTestService(repo, newFakeSlotRepo())

	_, err := svc.RecordPayment(context.Background(), "DGB-1", &models.RecordPaymentRequest{PaymentStatus: "refunded"})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentTransition)
}

func TestCancelStalePending(t *testing.T) {
	repo := newFakeBookingRepo()

	stale := repo.add(newTestBooking("DGB-OLD", domain.StatusPending, domain.PaymentPending))
	stale.CreatedAt = time.Now().Add(-3 * time.Hour)

	fresh := repo.add(newTestBooking("DGB-NEW", domain.StatusPending, domain.PaymentPending))
	paid := repo.add(newTestBooking("DGB-PAID", domain.StatusPending, domain.PaymentPaid))
	paid.CreatedAt = time.Now().Add(-3 * time.Hour)

	slots := newFakeSlotRepo()
	slots.reserved["DGB-OLD"] = true

	svc := newTestService(repo, slots)

	cancelled, err := svc.CancelStalePending(context.Background(), 2*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, cancelled)
	assert.Equal(t, domain.StatusCancelled, repo.byID[stale.ID].Status)
	assert.Equal(t, domain.StatusPending, repo.byID[fresh.ID].Status)
	assert.Equal(t, domain.StatusPending, repo.byID[paid.ID].Status)
	assert.Equal(t, []string{"DGB-OLD"}, slots.released)
}
