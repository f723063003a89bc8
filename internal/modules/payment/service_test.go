package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"photodesk/internal/domain"
	"photodesk/internal/repository"
)

type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 77 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockLedgerStore) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockLedgerStore) ListByOwner(ctx context.Context, owner domain.OwnerRef) ([]domain.Payment, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockLedgerStore) MarkCardPaid(ctx context.Context, intentID, chargeID string, paidAt time.Time) (repository.LedgerResult, error) {
	args := m.Called(ctx, intentID, chargeID, paidAt)
	return args.Get(0).(repository.LedgerResult), args.Error(1)
}

func (m *MockLedgerStore) MarkCardFailed(ctx context.Context, intentID, reason string) (repository.LedgerResult, error) {
	args := m.Called(ctx, intentID, reason)
	return args.Get(0).(repository.LedgerResult), args.Error(1)
}

func (m *MockLedgerStore) ApplyCardRefund(ctx context.Context, chargeID string, refunded float64) (repository.LedgerResult, error) {
	args := m.Called(ctx, chargeID, refunded)
	return args.Get(0).(repository.LedgerResult), args.Error(1)
}

func (m *MockLedgerStore) VerifyBankTransfer(ctx context.Context, paymentID int64, approved bool, verifierID int64, notes string, now time.Time) (repository.LedgerResult, error) {
	args := m.Called(ctx, paymentID, approved, verifierID, notes, now)
	return args.Get(0).(repository.LedgerResult), args.Error(1)
}

func (m *MockLedgerStore) RefundBankTransfer(ctx context.Context, paymentID int64, amount float64) (repository.LedgerResult, error) {
	args := m.Called(ctx, paymentID, amount)
	return args.Get(0).(repository.LedgerResult), args.Error(1)
}

type MockOwnerReader struct {
	mock.Mock
}

func (m *MockOwnerReader) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockOwnerReader) GetSelection(ctx context.Context, id int64) (*domain.DownloadSelection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DownloadSelection), args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Intent, error) {
	args := m.Called(ctx, amount, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Intent), args.Error(1)
}

func (m *MockProvider) RetrieveIntent(ctx context.Context, intentID string) (string, error) {
	args := m.Called(ctx, intentID)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) CreateRefund(ctx context.Context, intentID string, amount *float64, reason string) (string, error) {
	args := m.Called(ctx, intentID, amount, reason)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) VerifyWebhook(payload []byte, signature string) (*Event, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Event), args.Error(1)
}

type MockAdvancer struct {
	mock.Mock
}

func (m *MockAdvancer) OnPaid(ctx context.Context, selectionID int64) error {
	args := m.Called(ctx, selectionID)
	return args.Error(0)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Notify(userID int64, kind domain.NotificationKind, title, body string, data map[string]any) {
	m.Called(userID, kind, title, body, data)
}

type testDeps struct {
	payments *MockLedgerStore
	owners   *MockOwnerReader
	provider *MockProvider
	advancer *MockAdvancer
	notifs   *MockNotificationSender
}

func newTestService() (*Service, testDeps) {
	d := testDeps{
		payments: new(MockLedgerStore),
		owners:   new(MockOwnerReader),
		provider: new(MockProvider),
		advancer: new(MockAdvancer),
		notifs:   new(MockNotificationSender),
	}
	return NewService(d.payments, d.owners, d.provider, d.advancer, d.notifs, nil), d
}

func TestCreateCardPayment_ProviderFirstThenLocalInsert(t *testing.T) {
	svc, d := newTestService()

	d.owners.On("GetBooking", mock.Anything, int64(1)).
		Return(&domain.Booking{ID: 1, Currency: "KZT"}, nil)
	d.provider.On("CreateIntent", mock.Anything, 5000.0, "KZT", mock.Anything).
		Return(&Intent{IntentID: "pi_123", ClientSecret: "sec_abc"}, nil)
	d.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, secret, err := svc.CreateCardPayment(context.Background(), domain.BookingOwner(1), 5000, nil)
	require.NoError(t, err)

	assert.Equal(t, "pi_123", p.IntentID)
	assert.Equal(t, "sec_abc", secret)
	assert.Equal(t, domain.PaymentStatePending, p.Status)
	assert.Equal(t, "KZT", p.Currency)
	assert.Equal(t, domain.OwnerBooking, p.OwnerKind)
}

func TestCreateCardPayment_ProviderFailureWritesNothing(t *testing.T) {
	svc, d := newTestService()

	d.owners.On("GetBooking", mock.Anything, int64(1)).
		Return(&domain.Booking{ID: 1, Currency: "KZT"}, nil)
	d.provider.On("CreateIntent", mock.Anything, 5000.0, "KZT", mock.Anything).
		Return(nil, errors.New("provider down"))

	_, _, err := svc.CreateCardPayment(context.Background(), domain.BookingOwner(1), 5000, nil)
	require.Error(t, err)
	d.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCardPayment_NonPositiveAmount(t *testing.T) {
	svc, d := newTestService()

	d.owners.On("GetBooking", mock.Anything, int64(1)).
		Return(&domain.Booking{ID: 1, Currency: "KZT"}, nil)

	_, _, err := svc.CreateCardPayment(context.Background(), domain.BookingOwner(1), 0, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	d.provider.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitBankTransfer_GeneratesReference(t *testing.T) {
	svc, d := newTestService()

	d.owners.On("GetSelection", mock.Anything, int64(4)).
		Return(&domain.DownloadSelection{ID: 4, Currency: "AED"}, nil)
	d.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := svc.SubmitBankTransfer(context.Background(), domain.SelectionOwner(4), 450, "https://proof", "IBAN AE07...")
	require.NoError(t, err)

	assert.Len(t, p.Reference, 20)
	assert.Equal(t, domain.PaymentStatePending, p.Status)
	assert.Equal(t, domain.MethodBankTransfer, p.Method)
	assert.Equal(t, "AED", p.Currency)
}

func TestSubmitBankTransfer_NotifiesBookingClient(t *testing.T) {
	svc, d := newTestService()

	d.owners.On("GetBooking", mock.Anything, int64(1)).
		Return(&domain.Booking{ID: 1, ClientID: 5, Currency: "KZT"}, nil)
	d.payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.notifs.On("Notify", int64(5), domain.NotifBankTransferSubmitted, mock.Anything, mock.Anything, mock.Anything).Return()

	_, err := svc.SubmitBankTransfer(context.Background(), domain.BookingOwner(1), 5000, "https://proof", "KZ86 125K...")
	require.NoError(t, err)
	d.notifs.AssertCalled(t, "Notify", int64(5), domain.NotifBankTransferSubmitted, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyBankTransfer_ApprovalAdvancesPaidSelection(t *testing.T) {
	svc, d := newTestService()

	d.payments.On("VerifyBankTransfer", mock.Anything, int64(77), true, int64(9), "ok", mock.Anything).
		Return(repository.LedgerResult{
			Changed:       true,
			Owner:         domain.SelectionOwner(4),
			AmountPaid:    450,
			PaymentStatus: domain.PaymentPaid,
		}, nil)
	d.advancer.On("OnPaid", mock.Anything, int64(4)).Return(nil)
	d.payments.On("GetByID", mock.Anything, int64(77)).
		Return(&domain.Payment{ID: 77, Status: domain.PaymentStatePaid}, nil)

	p, err := svc.VerifyBankTransfer(context.Background(), 77, true, 9, "ok")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, p.Status)
	d.advancer.AssertCalled(t, "OnPaid", mock.Anything, int64(4))
}

func TestVerifyBankTransfer_PartialPaymentDoesNotAdvance(t *testing.T) {
	svc, d := newTestService()

	d.payments.On("VerifyBankTransfer", mock.Anything, int64(77), true, int64(9), "", mock.Anything).
		Return(repository.LedgerResult{
			Changed:       true,
			Owner:         domain.SelectionOwner(4),
			AmountPaid:    200,
			PaymentStatus: domain.PaymentPartiallyPaid,
		}, nil)
	d.payments.On("GetByID", mock.Anything, int64(77)).
		Return(&domain.Payment{ID: 77, Status: domain.PaymentStatePaid}, nil)

	_, err := svc.VerifyBankTransfer(context.Background(), 77, true, 9, "")
	require.NoError(t, err)
	d.advancer.AssertNotCalled(t, "OnPaid", mock.Anything, mock.Anything)
}

func TestRefund_CardIsAsynchronous(t *testing.T) {
	svc, d := newTestService()

	d.payments.On("GetByID", mock.Anything, int64(77)).
		Return(&domain.Payment{
			ID:       77,
			Method:   domain.MethodCard,
			Status:   domain.PaymentStatePaid,
			IntentID: "pi_123",
			Amount:   5000,
		}, nil)
	d.provider.On("CreateRefund", mock.Anything, "pi_123", (*float64)(nil), "duplicate").
		Return("re_1", nil)

	p, err := svc.Refund(context.Background(), 77, nil, "duplicate")
	require.NoError(t, err)

	// The status moves only when the charge-refunded webhook lands.
	assert.Equal(t, domain.PaymentStatePaid, p.Status)
	d.payments.AssertNotCalled(t, "RefundBankTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefund_BankTransferIsSynchronous(t *testing.T) {
	svc, d := newTestService()

	refunded := &domain.Payment{ID: 77, Method: domain.MethodBankTransfer, Status: domain.PaymentStateRefunded, Amount: 450, RefundedAmount: 450}
	d.payments.On("GetByID", mock.Anything, int64(77)).
		Return(&domain.Payment{ID: 77, Method: domain.MethodBankTransfer, Status: domain.PaymentStatePaid, Amount: 450}, nil).Once()
	d.payments.On("RefundBankTransfer", mock.Anything, int64(77), 450.0).
		Return(repository.LedgerResult{Changed: true, Owner: domain.SelectionOwner(4)}, nil)
	d.payments.On("GetByID", mock.Anything, int64(77)).Return(refunded, nil)

	p, err := svc.Refund(context.Background(), 77, nil, "order cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStateRefunded, p.Status)
}

func TestRefund_PendingPaymentIsInvalid(t *testing.T) {
	svc, d := newTestService()

	d.payments.On("GetByID", mock.Anything, int64(77)).
		Return(&domain.Payment{ID: 77, Method: domain.MethodCard, Status: domain.PaymentStatePending}, nil)

	_, err := svc.Refund(context.Background(), 77, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	d.provider.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefund_BankAmountAboveOriginal(t *testing.T) {
	svc, d := newTestService()

	d.payments.On("GetByID", mock.Anything, int64(77)).
		Return(&domain.Payment{ID: 77, Method: domain.MethodBankTransfer, Status: domain.PaymentStatePaid, Amount: 450}, nil)

	amount := 500.0
	_, err := svc.Refund(context.Background(), 77, &amount, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
