package reaper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeBookingService struct {
	gotTTL    time.Duration
	cancelled int
	err       error
}

func (f *fakeBookingService) CancelStalePending(_ context.Context, ttl time.Duration) (int, error) {
	f.gotTTL = ttl
	return f.cancelled, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSweep_PassesTTL(t *testing.T) {
	svc := &fakeBookingService{cancelled: 3}
	r := New(svc, "*/10 * * * *", 2*time.Hour, nopLogger{})

	r.sweep()

	assert.Equal(t, 2*time.Hour, svc.gotTTL)
}

func TestSweep_ErrorDoesNotPanic(t *testing.T) {
	svc := &fakeBookingService{err: errors.New("db down")}
	r := New(svc, "*/10 * * * *", 2*time.Hour, nopLogger{})

	assert.NotPanics(t, r.sweep)
}

func TestStart_InvalidSchedule(t *testing.T) {
	r := New(&fakeBookingService{}, "not a schedule", time.Hour, nopLogger{})

	err := r.Start()
	assert.Error(t, err)
}
