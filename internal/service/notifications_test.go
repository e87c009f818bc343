package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
	"github.com/CodeDreamers777/Assettone/internal/notify"
)

// recordingSender captures sent messages and fails for flagged recipients.
type recordingSender struct {
	mu      sync.Mutex
	sent    []notify.Message
	failFor map[string]bool
}

func (s *recordingSender) Send(ctx context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[msg.Recipient] {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestEmailTenantsSkipsMissingEmails(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	withEmail := seedTenant(t, svc.DB(), "has@example.com")
	withoutEmail := seedTenant(t, svc.DB(), "")

	sender := &recordingSender{}
	result, err := svc.EmailTenants(context.Background(), sender,
		[]uuid.UUID{withEmail.ID, withoutEmail.ID}, "Notice", "Water off on Friday", owner)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Empty(t, result.Failures)
	assert.Equal(t, "SUCCESS", result.Status())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "has@example.com", sender.sent[0].Recipient)
}

func TestEmailTenantsPartialFailure(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	good := seedTenant(t, svc.DB(), "good@example.com")
	bad := seedTenant(t, svc.DB(), "bad@example.com")

	sender := &recordingSender{failFor: map[string]bool{"bad@example.com": true}}
	result, err := svc.EmailTenants(context.Background(), sender,
		[]uuid.UUID{good.ID, bad.ID}, "Notice", "Body", owner)
	require.NoError(t, err)

	assert.Equal(t, "PARTIAL", result.Status())
	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "bad@example.com", result.Failures[0].Recipient)
}

func TestEmailTenantsValidation(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	tenantActor := seedProfile(t, svc.DB(), model.RoleTenant)
	tenant := seedTenant(t, svc.DB(), "t@example.com")

	_, err := svc.EmailTenants(context.Background(), &recordingSender{},
		[]uuid.UUID{tenant.ID}, "", "Body", owner)
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.EmailTenants(context.Background(), &recordingSender{},
		[]uuid.UUID{tenant.ID}, "Subject", "Body", tenantActor)
	assert.True(t, apperr.Is(err, apperr.Permission))

	_, err = svc.EmailTenants(context.Background(), &recordingSender{},
		[]uuid.UUID{uuid.New()}, "Subject", "Body", owner)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestSendRentalNoticeWhenBalanceOutstanding(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "500", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	_, err := svc.RecordPayment(RecordPaymentInput{
		LeaseID: lease.ID, Amount: money("200"), PaymentDate: today(),
	}, owner)
	require.NoError(t, err)

	sender := &recordingSender{}
	result, err := svc.SendRentalNotice(context.Background(), sender, unit.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "SUCCESS", result.Status())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "tina@example.com", sender.sent[0].Recipient)
	assert.Contains(t, sender.sent[0].Body, "300.00")
}

func TestSendRentalNoticeSkipsPaidInFull(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "500", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	_, err := svc.RecordPayment(RecordPaymentInput{
		LeaseID: lease.ID, Amount: money("500"), PaymentDate: today(),
	}, owner)
	require.NoError(t, err)

	sender := &recordingSender{}
	result, err := svc.SendRentalNotice(context.Background(), sender, unit.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, result, "nothing outstanding means no notice")
	assert.Empty(t, sender.sent)
}

func TestSendRentalNoticeNoActiveLease(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "500", model.PaymentPeriodMonthly)

	_, err := svc.SendRentalNotice(context.Background(), &recordingSender{}, unit.ID, owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
