package referral

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	referralRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/referral"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/ptr"
)

type fakeChannelRepo struct {
	channels map[string]*domain.SalesChannel
	ledger   map[string]*domain.ReferralLedgerEntry
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{
		channels: map[string]*domain.SalesChannel{
			"AGENT7": {ID: 7, Code: "AGENT7", Name: "Field Agent 7", CommissionRate: 0.05, Active: true},
		},
		ledger: make(map[string]*domain.ReferralLedgerEntry),
	}
}

func (f *fakeChannelRepo) GetChannelByCode(_ context.Context, code string) (*domain.SalesChannel, error) {
	channel, ok := f.channels[code]
	if !ok {
		return nil, referralRepo.ErrChannelNotFound
	}
	return channel, nil
}

func (f *fakeChannelRepo) CreateLedgerEntry(_ context.Context, entry *domain.ReferralLedgerEntry) (*domain.ReferralLedgerEntry, error) {
	if _, exists := f.ledger[entry.BookingRef]; exists {
		return nil, nil
	}
	entry.ID = int64(len(f.ledger) + 1)
	f.ledger[entry.BookingRef] = entry
	return entry, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestAttribute_KnownChannel(t *testing.T) {
	repo := newFakeChannelRepo()
	svc := NewService(repo, nopLogger{})

	entry, err := svc.Attribute(context.Background(), ptr.Ptr("AGENT7"), "DGB-20260901-deadbeef", 1001.82)
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, int64(7), entry.SalesChannelID)
	assert.Equal(t, domain.Round2(1001.82*0.05), entry.CommissionAmount)
}

func TestAttribute_UnknownCodeIgnored(t *testing.T) {
	svc := NewService(newFakeChannelRepo(), nopLogger{})

	entry, err := svc.Attribute(context.Background(), ptr.Ptr("WHO"), "DGB-20260901-deadbeef", 500)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestAttribute_NoCode(t *testing.T) {
	svc := NewService(newFakeChannelRepo(), nopLogger{})

	entry, err := svc.Attribute(context.Background(), nil, "DGB-20260901-deadbeef", 500)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

// Повторная атрибуция того же бронирования не создаёт вторую запись
func TestAttribute_IdempotentPerBooking(t *testing.T) {
	repo := newFakeChannelRepo()
	svc := NewService(repo, nopLogger{})

	first, err := svc.Attribute(context.Background(), ptr.Ptr("AGENT7"), "DGB-20260901-cafebabe", 1000)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.Attribute(context.Background(), ptr.Ptr("AGENT7"), "DGB-20260901-cafebabe", 1000)
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Len(t, repo.ledger, 1)
}
